package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/schedule"
)

var scheduleCmd = GroupCommand{
	Use:     "schedule",
	Short:   "Edit and inspect event schedules",
	Aliases: []string{"sched"},
	Subcommands: []*cobra.Command{
		scheduleEditCmd,
		scheduleListCmd,
		scheduleCountCmd,
		scheduleDaysCmd,
		scheduleCalendarCmd,
		scheduleExportCmd,
		schedulePullCmd,
		schedulePushCmd,
	},
}.Build()

// slotCount renders n occurrences the way the editor names them.
func slotCount(n int) string {
	if n == 1 {
		return "1 time slot"
	}
	return fmt.Sprintf("%d time slots", n)
}

// quotaLine renders "<total> of <max> time slots".
func quotaLine(total int) string {
	return fmt.Sprintf("%d of %d time slots", total, schedule.MaxOccurrences)
}

// quotaWarning is shown when total is past the per-event ceiling.
func quotaWarning() string {
	return fmt.Sprintf("This would exceed the maximum of %d time slots.", schedule.MaxOccurrences)
}
