package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/backtension/internal/config"
	"github.com/vango-dev/backtension/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		in    inputFlags
		addr  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a backtension.json",
		Long: `Write a backtension.json with defaults, filled in from the flags.

Examples:
  backtension init --html index.html --regions regions.yaml
  backtension init site --root '#app'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, in, addr, force)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Debug server address")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func runInit(dir string, in inputFlags, addr string, force bool) error {
	if config.Exists(dir) && !force {
		return errors.New("E122").
			WithDetail(filepath.Join(dir, config.ConfigFileName) + " already exists").
			WithSuggestion("Pass --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("E148").WithLocation(dir, 0, 0).Wrap(err)
	}

	cfg := config.New()
	cfg.Document = in.html
	cfg.Regions = in.regions
	if in.root != "" {
		cfg.Root = in.root
	}
	if in.logLevel != "" {
		cfg.LogLevel = in.logLevel
	}
	if addr != "" {
		cfg.Serve.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	success("Wrote %s", path)
	return nil
}
