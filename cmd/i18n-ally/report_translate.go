package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/detect"
	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/locale"
	"github.com/Brooooooklyn/i18n-ally/internal/report"
	"github.com/Brooooooklyn/i18n-ally/internal/usage"
)

func newTranslateCmd(opts *globalOptions) *cobra.Command {
	var (
		loc, format    string
		batch, batches int
	)
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Used keys missing from a locale, with source values",
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
			usages, err := p.usages(cmd.Context(), snap)
			if err != nil {
				return err
			}
			dynamics, err := p.dynamicKeys(cmd.Context(), snap)
			if err != nil {
				return err
			}
			pairs := translatePairs(snap, usages, dynamics, p.cfg.SourceLocale, loc)
			pairs, err = sliceBatch(pairs, batch, batches)
			if err != nil {
				return err
			}
			return reportTranslate(cmd.OutOrStdout(), out, pairs, loc, format, batch, batches)
		},
	}
	cmd.Flags().StringVar(&loc, "locale", "", "Target locale code (required)")
	cmd.Flags().IntVar(&batch, "batch", 0, "Batch number (1-indexed); requires --batches")
	cmd.Flags().IntVar(&batches, "batches", 0, "Total number of batches")
	addFormatFlag(cmd, &format)
	return cmd
}

type translatePair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// translatePairs collects keys that are missing from loc and used by the
// source code, either referenced directly or matched by a dynamic key
// template, paired with their source locale values. This is the input for
// translators: keys nobody uses are left out.
func translatePairs(snap *index.Snapshot, usages []usage.KeyUsage, dynamics []detect.DynamicKey, source, loc string) []translatePair {
	used := make(map[string]bool)
	for _, u := range snap.FindUsage(usages).Active {
		used[u.Keypath] = true
	}

	var pairs []translatePair
	snap.Root.Walk(func(n *locale.Node) bool {
		if _, ok := n.Record(loc); ok {
			return true
		}
		value, ok := n.Value(source)
		if !ok {
			return true
		}
		if used[n.Keypath] || matchesDynamic(n.Keypath, dynamics) {
			pairs = append(pairs, translatePair{n.Keypath, value})
		}
		return true
	})
	return pairs
}

func matchesDynamic(key string, dynamics []detect.DynamicKey) bool {
	for _, d := range dynamics {
		if d.Match(key) {
			return true
		}
	}
	return false
}

// sliceBatch returns batch (1-indexed) of batches roughly equal slices.
// batches <= 0 returns pairs unchanged.
func sliceBatch(pairs []translatePair, batch, batches int) ([]translatePair, error) {
	if batches <= 0 {
		return pairs, nil
	}
	if batch < 1 || batch > batches {
		return nil, fmt.Errorf("--batch must be between 1 and %d", batches)
	}
	total := len(pairs)
	size := (total + batches - 1) / batches
	start := min((batch-1)*size, total)
	end := min(start+size, total)
	return pairs[start:end], nil
}

func reportTranslate(w io.Writer, out *report.Printer, pairs []translatePair, loc, format string, batch, batches int) error {
	if report.Format(format) == report.FormatJSON {
		if pairs == nil {
			pairs = []translatePair{}
		}
		return out.JSON(pairs)
	}

	if len(pairs) == 0 {
		fmt.Fprintf(w, "No used keys missing from %s.\n", loc)
		return nil
	}

	label := fmt.Sprintf("Found %d used keys missing from %s", len(pairs), loc)
	if batches > 0 {
		label += fmt.Sprintf(" (batch %d of %d)", batch, batches)
	}
	fmt.Fprintf(w, "%s:\n\n", label)
	for _, p := range pairs {
		fmt.Fprintf(w, "%s=%s\n", p.Key, p.Value)
	}
	return nil
}
