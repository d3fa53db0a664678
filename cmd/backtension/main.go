package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/backtension/internal/config"
	"github.com/vango-dev/backtension/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "backtension",
		Short: "Inspect view trees, zones and global event bindings",
		Long: `backtension loads an HTML document and a region file into a
view tree and reports what it resolves to.

  • zones   print the resolved zone map
  • serve   run the tree on a loop behind a debug HTTP server
  • init    write a backtension.json
  • explain describe an error code`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		zonesCmd(),
		serveCmd(),
		initCmd(),
		explainCmd(),
		versionCmd(),
	)

	if os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
	}

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(errors.FromError(err, "E149"), errorStyle(jsonOutput, isTerminal(os.Stderr)))
		os.Exit(1)
	}
}

// jsonOutput is set by commands printing JSON so failures are JSON too.
var jsonOutput bool

// errorStyle picks how a failed command reports its error: JSON next to
// JSON output, one line when stderr is not a terminal.
func errorStyle(asJSON, terminal bool) errors.Style {
	switch {
	case asJSON:
		return errors.StyleJSON
	case !terminal:
		return errors.StyleCompact
	default:
		return errors.StylePretty
	}
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// inputFlags are shared by the commands that load a page.
type inputFlags struct {
	html     string
	regions  string
	root     string
	logLevel string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.html, "html", "", "HTML document (default from backtension.json)")
	cmd.Flags().StringVar(&f.regions, "regions", "", "YAML region file (default from backtension.json)")
	cmd.Flags().StringVar(&f.root, "root", "", "Root view selector (default from backtension.json, else body)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
}

// settings loads backtension.json when there is one and applies the flags
// on top.
func (f *inputFlags) settings() (*config.Config, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		if be, ok := err.(*errors.BacktensionError); !ok || be.Code != "E123" {
			return nil, err
		}
		cfg = config.New()
	}

	if f.html != "" {
		cfg.Document = f.html
	}
	if f.regions != "" {
		cfg.Regions = f.regions
	}
	if f.root != "" {
		cfg.Root = f.root
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes text logs to stderr at the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
