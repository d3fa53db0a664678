package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/backtension/internal/inspect"
)

func zonesCmd() *cobra.Command {
	var (
		in      inputFlags
		asJSON  bool
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Print the zone map a region file resolves to",
		Long: `Resolve a region file against a document and print every leaf
with its match count and the tag of the first match.

Regions that match nothing are listed with 0 matches; they are not errors.

Examples:
  backtension zones --html index.html --regions regions.yaml
  backtension zones --root '#app' --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput = asJSON
			return runZones(in, asJSON, compact)
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().BoolVar(&compact, "compact", false, "Only list leaves that matched")

	return cmd
}

func runZones(in inputFlags, asJSON, compact bool) error {
	cfg, err := in.settings()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	doc, err := inspect.LoadDocument(cfg.DocumentPath())
	if err != nil {
		return err
	}
	regions, err := inspect.LoadRegions(cfg.RegionsPath())
	if err != nil {
		return err
	}
	page, err := inspect.Open(doc, inspect.Options{
		Root:    cfg.Root,
		Regions: regions,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	zones := page.Zones()
	if compact {
		kept := zones[:0]
		for _, z := range zones {
			if z.Matches > 0 {
				kept = append(kept, z)
			}
		}
		zones = kept
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(zones)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ZONE\tMATCHES\tTAG")
	for _, z := range zones {
		fmt.Fprintf(w, "%s\t%d\t%s\n", z.Path, z.Matches, z.Tag)
	}
	return w.Flush()
}
