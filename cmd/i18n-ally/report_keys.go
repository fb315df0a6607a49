package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Brooooooklyn/i18n-ally/internal/index"
	"github.com/Brooooooklyn/i18n-ally/internal/locale"
	"github.com/Brooooooklyn/i18n-ally/internal/report"
)

func newKeysCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Every keypath",
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
			return out.Strings(snap.Keypaths(), "keys")
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newLookupCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "lookup KEYPATH",
		Short: "Values of one key in every locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newPrinter(cmd, format)
			if err != nil {
				return err
			}
			p, snap, err := openProject(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return reportLookup(out, snap, p.cfg.Display(), args[0])
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

// reportLookup prints a node's value per locale, or the keypaths below a
// tree.
func reportLookup(out *report.Printer, snap *index.Snapshot, display locale.Display, path string) error {
	e, ok := snap.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", index.ErrKeyNotFound, path)
	}
	switch e := e.(type) {
	case *locale.Node:
		locales := snap.Locales()
		if len(locales) == 0 {
			locales = []string{display.Locale}
		}
		return out.Values(e.Keypath, locales, e.Value)
	case *locale.Tree:
		var keys []string
		e.Walk(func(n *locale.Node) bool {
			keys = append(keys, n.Keypath)
			return true
		})
		return out.Strings(keys, "keys under "+path)
	}
	return nil
}

func newDefinitionCmd(opts *globalOptions) *cobra.Command {
	var loc string
	cmd := &cobra.Command{
		Use:   "definition KEYPATH",
		Short: "File position of a key's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, snap, err := openProject(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if loc == "" {
				loc = p.cfg.Display().Locale
			}
			return reportDefinition(cmd.OutOrStdout(), snap, args[0], loc)
		},
	}
	cmd.Flags().StringVar(&loc, "locale", "", "Locale whose file to search (default: display locale)")
	return cmd
}

func reportDefinition(w io.Writer, snap *index.Snapshot, path, loc string) error {
	def, err := snap.Definition(path, loc)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, def)
	return nil
}
