package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

var errChecksFailed = errors.New("checks failed")

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var loc string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Lint check: unused + stale + missing translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocale(loc); err != nil {
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
			return reportCheck(cmd.OutOrStdout(), snap, usages, p.cfg.SourceLocale, loc)
		},
	}
	cmd.Flags().StringVar(&loc, "locale", "", "Target locale code (required)")
	return cmd
}

func reportCheck(w io.Writer, snap *index.Snapshot, usages []usage.KeyUsage, source, loc string) error {
	unusedCount := len(snap.FindUsage(usages).Idle)
	staleCount := len(staleKeys(snap, source, loc))
	missingCount := snap.Coverage(loc).Missing

	passed := true
	printResult := func(label string, count int) {
		status := "OK"
		if count > 0 {
			status = "FAIL"
			passed = false
		}
		fmt.Fprintf(w, "  %-30s %3d  %s\n", label+":", count, status)
	}

	printResult("unused keys", unusedCount)
	printResult("stale keys in "+loc, staleCount)
	printResult("keys missing from "+loc, missingCount)

	if passed {
		fmt.Fprintln(w, "All checks passed.")
		return nil
	}
	return errChecksFailed
}
