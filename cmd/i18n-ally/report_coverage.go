package main

import (
	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/coverage"
	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/report"
)

func newCoverageCmd(opts *globalOptions) *cobra.Command {
	var locale, format string
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Translation progress per locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}
			_, snap, err := openProject(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return reportCoverage(out, snap, locale)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Only report this locale")
	addFormatFlag(cmd, &format)
	return cmd
}

func reportCoverage(out *report.Printer, snap *index.Snapshot, locale string) error {
	if locale != "" {
		return out.Coverage([]coverage.Coverage{snap.Coverage(locale)})
	}
	return out.Coverage(snap.CoverageAll())
}
