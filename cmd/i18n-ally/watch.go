package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/parser"
	"github.com/Brooooooklyn/i18n-ally/internal/report"
	"github.com/Brooooooklyn/i18n-ally/internal/watch"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild on locale file changes and print coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, snap, err := openProject(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := report.New(cmd.OutOrStdout(), report.FormatText)
			if err := out.Coverage(snap.CoverageAll()); err != nil {
				return err
			}

			dirs, err := p.loader.WatchDirs()
			if err != nil {
				return err
			}
			w := watch.New(dirs, rebuildOnChange(cmd.OutOrStdout(), out, p.index),
				watch.WithDebounce(p.cfg.Debounce.Duration),
				watch.WithFilter(parser.Supported),
				watch.WithLogger(p.logger))
			return w.Run(ctx)
		},
	}
	return cmd
}

// rebuildOnChange rebuilds ix after each burst and prints the keys added
// or removed since the previous snapshot, followed by the coverage.
func rebuildOnChange(w io.Writer, out *report.Printer, ix *index.Index) watch.ChangeFunc {
	return func(ctx context.Context, changed []string) {
		before := ix.Snapshot()
		after, err := ix.Rebuild(ctx)
		if err != nil {
			fmt.Fprintf(w, "Rebuild failed: %v\n", err)
			return
		}
		fmt.Fprintf(w, "\n%d file(s) changed, %d keys\n", len(changed), len(after.Keypaths()))
		for _, fe := range after.Errors {
			fmt.Fprintf(w, "  skipped %s\n", fe)
		}
		out.Diff(report.KeyDiff(before.Keypaths(), after.Keypaths()))
		if err := out.Coverage(after.CoverageAll()); err != nil {
			fmt.Fprintf(w, "Printing coverage failed: %v\n", err)
		}
	}
}
