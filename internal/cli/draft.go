package cli

import "github.com/spf13/cobra"

var draftCmd = GroupCommand{
	Use:   "draft",
	Short: "Manage event drafts",
	Subcommands: []*cobra.Command{
		draftNewCmd,
		draftListCmd,
		draftRemoveCmd,
	},
}.Build()
