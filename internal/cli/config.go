package cli

import "github.com/spf13/cobra"

var configCmd = GroupCommand{
	Use:   "config",
	Short: "Show or change eventorbit settings",
	Subcommands: []*cobra.Command{
		configShowCmd,
		configSetCmd,
		configPathCmd,
	},
}.Build()
