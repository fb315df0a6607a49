package main

import (
	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/locale"
)

func newStaleCmd(opts *globalOptions) *cobra.Command {
	var loc, format string
	cmd := &cobra.Command{
		Use:   "stale",
		Short: "Keys in a locale that the source locale lacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocale(loc); err != nil {
				return err
			}
			out, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}
			p, snap, err := openProject(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return out.Strings(staleKeys(snap, p.cfg.SourceLocale, loc), "stale keys in "+loc)
		},
	}
	cmd.Flags().StringVar(&loc, "locale", "", "Target locale code (required)")
	addFormatFlag(cmd, &format)
	return cmd
}

// staleKeys lists keys that have a record in loc but none in source.
func staleKeys(snap *index.Snapshot, source, loc string) []string {
	var stale []string
	snap.Root.Walk(func(n *locale.Node) bool {
		if _, ok := n.Record(loc); !ok {
			return true
		}
		if _, ok := n.Record(source); !ok {
			stale = append(stale, n.Keypath)
		}
		return true
	})
	return stale
}

