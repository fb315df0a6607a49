package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/detect"
	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/report"
)

func newDynamicCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dynamic",
		Short: "Template-literal keys and the defined keys they match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}
			p, snap, err := openProject(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			dynamics, err := p.dynamicKeys(cmd.Context(), snap)
			if err != nil {
				return err
			}
			return reportDynamic(cmd.OutOrStdout(), out, snap, dynamics, format)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

type dynamicReportEntry struct {
	Pattern string   `json:"pattern"`
	Source  string   `json:"source"`
	Matches []string `json:"matches"`
}

func reportDynamic(w io.Writer, out *report.Printer, snap *index.Snapshot, dynamics []detect.DynamicKey, format string) error {
	entries := make([]dynamicReportEntry, 0, len(dynamics))
	keys := snap.Keypaths()
	for _, d := range dynamics {
		matches := []string{}
		for _, k := range keys {
			if d.Match(k) {
				matches = append(matches, k)
			}
		}
		entries = append(entries, dynamicReportEntry{
			Pattern: d.Pattern,
			Source:  fmt.Sprintf("%s:%d", d.Filepath, d.Line),
			Matches: matches,
		})
	}

	if report.Format(format) == report.FormatJSON {
		return out.JSON(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No dynamic key patterns found.")
		return nil
	}

	fmt.Fprintf(w, "Found %d dynamic key patterns:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\n", e.Pattern)
		fmt.Fprintf(w, "    source:  %s\n", e.Source)
		fmt.Fprintf(w, "    matches: %d keys\n", len(e.Matches))
		for _, k := range e.Matches {
			fmt.Fprintf(w, "      %s\n", k)
		}
		fmt.Fprintln(w)
	}
	return nil
}
