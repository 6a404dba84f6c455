package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/draft"
)

var draftRemoveCmd = LeafCommand{
	Use:     "remove DRAFT",
	Short:   "Remove a draft and its local schedules",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		confirm := NewConfirmFunc(cmd.InOrStdin(), cmd.OutOrStdout())
		if yes {
			confirm = AlwaysYes()
		}

		return runDraftRemove(cmd, homeDir, args[0], confirm)
	},
}.Build()

func init() {
	draftRemoveCmd.ValidArgsFunction = completeDraftKeys
}

func runDraftRemove(cmd *cobra.Command, homeDir, key string, confirm ConfirmFunc) error {
	reg, d, err := draft.Load(homeDir, key)
	if err != nil {
		return err
	}

	// Unpublished schedules exist nowhere else.
	if len(d.Schedules) > 0 && d.EventID == "" {
		ok, err := confirm(fmt.Sprintf("Draft '%s' has %d unpublished schedules. Remove it?", d.Name, len(d.Schedules)))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("aborted")
		}
	}

	removed, err := reg.Remove(d.ID)
	if err != nil {
		return err
	}
	if err := draft.WriteRegistry(homeDir, reg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("draft '%s' removed", Primary(removed.Name))))
	return nil
}
