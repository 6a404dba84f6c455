package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/draft"
)

var draftNewCmd = LeafCommand{
	Use:     "new NAME",
	Short:   "Start a new event draft",
	Args:    cobra.ExactArgs(1),
	Example: `  eventorbit draft new "Jazz Night"`,
	StrFlags: []StringFlag{
		{Name: "event", Usage: "backend event id the draft publishes to"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		eventID, _ := cmd.Flags().GetString("event")
		return runDraftNew(cmd, homeDir, args[0], eventID, time.Now())
	},
}.Build()

func runDraftNew(cmd *cobra.Command, homeDir, name, eventID string, now time.Time) error {
	reg, err := draft.ReadRegistry(homeDir)
	if err != nil {
		return err
	}

	d, err := reg.Add(name, now)
	if err != nil {
		return err
	}
	d.EventID = eventID
	created := *d

	if err := draft.WriteRegistry(homeDir, reg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("draft '%s' created (%s)", Primary(created.Name), Silent(created.ID))))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Silent(fmt.Sprintf("add schedules with 'eventorbit schedule edit %s'", created.Slug)))
	return nil
}
