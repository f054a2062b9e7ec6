package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagAliases maps alternate flag names to their canonical names. Aliases
// don't appear in usage output.
var flagAliases = map[string]string{
	"desc": "description",
	"dir":  "data-dir",
}

func init() {
	setFlagAliases(rootCmd, flagAliases)
}

// setFlagAliases installs aliases on cmd and every command added beneath it.
func setFlagAliases(cmd *cobra.Command, aliases map[string]string) {
	cmd.SetGlobalNormalizationFunc(aliasNormalizer(aliases))
}

func aliasNormalizer(aliases map[string]string) func(*pflag.FlagSet, string) pflag.NormalizedName {
	return func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return pflag.NormalizedName(name)
	}
}
