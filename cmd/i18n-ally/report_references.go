package main

import (
	"github.com/spf13/cobra"
)

func newReferencesCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "references",
		Short: "Where each defined key is used (file:line)",
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
			usages, err := p.usages(cmd.Context(), snap)
			if err != nil {
				return err
			}
			return out.Usages(snap.FindUsage(usages).Active, "referenced keys")
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}
