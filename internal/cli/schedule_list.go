package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/draft"
	"github.com/eventorbit/eventorbit/internal/editor"
	"github.com/eventorbit/eventorbit/internal/schedule"
)

var scheduleListCmd = LeafCommand{
	Use:     "list DRAFT",
	Short:   "List a draft's schedules",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		return runScheduleList(cmd, a.homeDir, args[0])
	},
}.Build()

var scheduleCountCmd = LeafCommand{
	Use:   "count DRAFT",
	Short: "Count the time slots a draft's schedules produce",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "check", Usage: "fail when the draft cannot be published"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		check, _ := cmd.Flags().GetBool("check")
		return runScheduleCount(cmd, a.homeDir, args[0], check)
	},
}.Build()

var scheduleDaysCmd = LeafCommand{
	Use:   "days DRAFT",
	Short: "Show every day a draft's schedules produce",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "json", Usage: "print the dd-mm-yyyy keyed map as JSON"},
	},
	StrFlags: []StringFlag{
		{Name: "on", Usage: "only show this day (dd-mm-yyyy)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		on, _ := cmd.Flags().GetString("on")
		return runScheduleDays(cmd, a.homeDir, args[0], asJSON, on)
	},
}.Build()

func init() {
	for _, c := range []*cobra.Command{scheduleListCmd, scheduleCountCmd, scheduleDaysCmd} {
		c.ValidArgsFunction = completeDraftKeys
	}
}

func loadDraftRules(homeDir, key string) (*draft.Draft, schedule.Set, error) {
	_, d, err := draft.Load(homeDir, key)
	if err != nil {
		return nil, nil, err
	}
	rules, _ := d.Rules()
	return d, rules, nil
}

func runScheduleList(cmd *cobra.Command, homeDir, key string) error {
	d, rules, err := loadDraftRules(homeDir, key)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s\n\n", Text(fmt.Sprintf("Schedules for '%s'", Primary(d.Name))))
	if len(rules) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", Silent("(no schedules)"))
		return nil
	}

	for i, r := range rules {
		line := fmt.Sprintf("%d. %s", i+1, schedule.FormatRule(r))
		meta := slotCount(schedule.CountOccurrences(r))
		if id := d.Schedules[i].ID; id != "" {
			meta += ", id " + id
		}
		if sold := d.Schedules[i].Sold; sold > 0 {
			meta += fmt.Sprintf(", %d sold", sold)
		}
		_, _ = fmt.Fprintf(w, "  %s  %s\n", Text(line), Silent("("+meta+")"))
		for _, o := range schedule.FindOverlaps(r) {
			_, _ = fmt.Fprintf(w, "     %s\n", Warning(o.String()))
		}
	}

	total := schedule.CountSet(rules)
	_, _ = fmt.Fprintf(w, "\n  %s %s\n", Info("Total:"), Text(quotaLine(total)))
	return nil
}

func runScheduleCount(cmd *cobra.Command, homeDir, key string, check bool) error {
	_, rules, err := loadDraftRules(homeDir, key)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, r := range rules {
		_, _ = fmt.Fprintf(w, "  %s\n", Text(fmt.Sprintf("#%d  %s", i+1, slotCount(schedule.CountOccurrences(r)))))
	}
	total := schedule.CountSet(rules)
	_, _ = fmt.Fprintf(w, "  %s %s\n", Info("Total:"), Text(quotaLine(total)))
	if schedule.ExceedsCeiling(rules) {
		_, _ = fmt.Fprintf(w, "  %s\n", Warning(quotaWarning()))
	}

	if check {
		return editor.ValidateForAdvance(rules)
	}
	return nil
}

func runScheduleDays(cmd *cobra.Command, homeDir, key string, asJSON bool, on string) error {
	_, rules, err := loadDraftRules(homeDir, key)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if on != "" {
		day, err := schedule.ParseDateKey(on)
		if err != nil {
			return err
		}
		descriptors := schedule.ExpandDaily(rules)[schedule.DateKey(day)]
		if len(descriptors) == 0 {
			_, _ = fmt.Fprintf(w, "  %s\n", Silent(fmt.Sprintf("(nothing on %s)", schedule.FormatDate(day))))
			return nil
		}
		_, _ = fmt.Fprintf(w, "  %s\n", Text(fmt.Sprintf("%s:  %s", schedule.FormatDate(day), strings.Join(descriptors, ", "))))
		return nil
	}

	if asJSON {
		data, err := json.MarshalIndent(schedule.ExpandDaily(rules), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	days := schedule.ExpandDays(rules)
	if len(days) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", Silent("(no days)"))
		return nil
	}
	for _, ds := range days {
		_, _ = fmt.Fprintf(w, "  %s\n", Text(schedule.FormatDaySlots(ds)))
	}
	return nil
}
