package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/draft"
	"github.com/eventorbit/eventorbit/internal/schedule"
)

var draftListCmd = LeafCommand{
	Use:     "list",
	Short:   "List drafts with their schedule totals",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		return runDraftList(cmd, homeDir)
	},
}.Build()

func runDraftList(cmd *cobra.Command, homeDir string) error {
	reg, err := draft.ReadRegistry(homeDir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(reg.Drafts) == 0 {
		_, _ = fmt.Fprintln(w, Silent("No drafts found."))
		return nil
	}

	for i := range reg.Drafts {
		d := &reg.Drafts[i]
		rules, _ := d.Rules()
		total := schedule.CountSet(rules)

		_, _ = fmt.Fprintf(w, "%s  %s\n", Silent(d.ID), Primary(d.Name))
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("├── %d schedules, %s", len(rules), quotaLine(total))))
		if d.EventID != "" {
			_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("└── event %s", d.EventID)))
		} else {
			_, _ = fmt.Fprintln(w, Silent("└── (not published)"))
		}
		if schedule.ExceedsCeiling(rules) {
			_, _ = fmt.Fprintf(w, "    %s\n", Warning(quotaWarning()))
		}
		if i < len(reg.Drafts)-1 {
			_, _ = fmt.Fprintln(w)
		}
	}

	return nil
}
