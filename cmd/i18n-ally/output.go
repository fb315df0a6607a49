package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/report"
)

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVar(format, "format", string(report.FormatText), "Output format: text, json")
}

// newPrinter returns a printer on the command's stdout.
func newPrinter(cmd *cobra.Command, format string) (*report.Printer, error) {
	f := report.Format(format)
	if !f.Valid() {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return report.New(cmd.OutOrStdout(), f), nil
}

// requireLocale rejects an empty --locale flag.
func requireLocale(locale string) error {
	if locale == "" {
		return fmt.Errorf("--locale is required")
	}
	return nil
}
