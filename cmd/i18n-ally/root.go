package main

import (
	"github.com/spf13/cobra"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "i18n-ally",
		Short: "Translation maintenance reports",
		Long: `i18n-ally loads every locale file of a project into one key tree and
reports on it.

Commands:
  coverage    Translation progress per locale
  missing     Keys absent from a locale
  stale       Keys in a locale that the source locale lacks
  unused      Keys not referenced in source code
  undefined   Keys referenced in source code but not defined
  references  Where each defined key is used (file:line)
  dynamic     Template-literal keys built at run time
  translate   Used keys missing from a locale, with source values
  check       Lint check: unused + stale + missing translations
  keys        Every keypath
  lookup      Values of one key in every locale
  definition  File position of a key's value
  watch       Rebuild on locale file changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: .i18n-ally.toml in the project root)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	root.AddCommand(
		newCoverageCmd(opts),
		newMissingCmd(opts),
		newStaleCmd(opts),
		newUnusedCmd(opts),
		newUndefinedCmd(opts),
		newReferencesCmd(opts),
		newDynamicCmd(opts),
		newTranslateCmd(opts),
		newCheckCmd(opts),
		newKeysCmd(opts),
		newLookupCmd(opts),
		newDefinitionCmd(opts),
		newWatchCmd(opts),
	)
	return root
}
