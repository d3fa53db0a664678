package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/backtension/internal/errors"
)

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code]",
		Short: "Describe an error code",
		Long: `Print what an error code means. Without a code, list every code.

Examples:
  backtension explain
  backtension explain E145`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := ""
			if len(args) == 1 {
				code = args[0]
			}
			return runExplain(cmd.OutOrStdout(), code)
		},
	}
}

func runExplain(w io.Writer, code string) error {
	if code == "" {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tCATEGORY\tMESSAGE")
		for _, c := range errors.GetAllCodes() {
			t, _ := errors.GetTemplate(c)
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c, t.Category, t.Message)
		}
		return tw.Flush()
	}

	code = strings.ToUpper(code)
	t, ok := errors.GetTemplate(code)
	if !ok {
		return errors.New("E149").
			WithDetail("Unknown error code " + code).
			WithSuggestion("Run 'backtension explain' to list the codes")
	}
	fmt.Fprintf(w, "%s (%s): %s\n", code, t.Category, t.Message)
	if t.Detail != "" {
		fmt.Fprintf(w, "\n%s\n", t.Detail)
	}
	return nil
}
