package main

import (
	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

func newUnusedCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "unused",
		Short: "Keys not referenced in source code",
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
			return out.Strings(usage.Keypaths(snap.FindUsage(usages).Idle), "unused keys")
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newUndefinedCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "undefined",
		Short: "Keys referenced in source code but not defined",
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
			return out.Usages(snap.FindUsage(usages).Missing, "undefined keys")
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}
