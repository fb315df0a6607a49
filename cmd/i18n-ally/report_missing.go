package main

import (
	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/report"
)

func newMissingCmd(opts *globalOptions) *cobra.Command {
	var locale, format string
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "Keys absent from a target locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocale(locale); err != nil {
				return err
			}
			out, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}
			_, snap, err := openProject(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return reportMissing(out, snap, locale)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "Target locale code (required)")
	addFormatFlag(cmd, &format)
	return cmd
}

func reportMissing(out *report.Printer, snap *index.Snapshot, locale string) error {
	return out.Strings(snap.Coverage(locale).MissingKeys, "missing keys in "+locale)
}
