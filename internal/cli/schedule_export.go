package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/api"
	"github.com/eventorbit/eventorbit/internal/draft"
	"github.com/eventorbit/eventorbit/internal/ical"
	"github.com/eventorbit/eventorbit/internal/schedule"
)

var exportFormats = []string{"ics", "json", "md", "html", "pdf"}

var scheduleExportCmd = LeafCommand{
	Use:   "export DRAFT",
	Short: "Export a draft's schedules as iCalendar, JSON, Markdown, HTML or PDF",
	Example: `  eventorbit schedule export jazz-night --format ics --output jazz.ics
  eventorbit schedule export jazz-night --format pdf`,
	Args: cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "format", Usage: "one of " + strings.Join(exportFormats, ", "), Default: "ics"},
		{Name: "output", Usage: "file to write (default: stdout, or DRAFT.pdf for pdf)"},
		{Name: "location", Usage: "location added to calendar events"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		location, _ := cmd.Flags().GetString("location")
		return runScheduleExport(cmd, a.homeDir, args[0], exportOptions{
			format:   format,
			output:   output,
			location: location,
		}, time.Now())
	},
}.Build()

func init() {
	scheduleExportCmd.ValidArgsFunction = completeDraftKeys
}

type exportOptions struct {
	format   string
	output   string
	location string
}

func runScheduleExport(cmd *cobra.Command, homeDir, key string, opts exportOptions, now time.Time) error {
	_, d, err := draft.Load(homeDir, key)
	if err != nil {
		return err
	}
	rules, binding := d.Rules()
	w := cmd.OutOrStdout()

	var content []byte
	switch strings.ToLower(opts.format) {
	case "ics", "ical":
		content = []byte(ical.Export(rules, ical.Options{
			EventKey: eventKey(d),
			Title:    d.Name,
			Location: opts.location,
			Stamp:    now,
		}))
	case "json":
		payload := api.EventPayload{Title: d.Name, Schedules: api.ToPayload(rules, binding)}
		content, err = json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		content = append(content, '\n')
	case "md", "markdown":
		content = []byte(renderScheduleMarkdown(d.Name, rules))
	case "html":
		content, err = renderScheduleHTML(d.Name, rules)
		if err != nil {
			return err
		}
	case "pdf":
		path := opts.output
		if path == "" {
			path = d.Slug + ".pdf"
		}
		if err := renderSchedulePDF(d.Name, rules, path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("exported '%s' to %s", Primary(d.Name), path)))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (valid: %s)", opts.format, strings.Join(exportFormats, ", "))
	}

	if opts.output == "" {
		_, err := w.Write(content)
		return err
	}
	if err := os.WriteFile(opts.output, content, 0644); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("exported '%s' to %s", Primary(d.Name), opts.output)))
	return nil
}

// eventKey identifies the event in exported UIDs: the backend id once the
// draft is published, the draft id before.
func eventKey(d *draft.Draft) string {
	if d.EventID != "" {
		return d.EventID
	}
	return d.ID
}

// recurrenceCell renders r's RRULE on one line, or "n/a" for rules that
// have none (incomplete, or repeating on no day).
func recurrenceCell(r schedule.Rule) string {
	if !schedule.IsRuleValid(r) {
		return "n/a"
	}
	s, err := schedule.RRuleString(r)
	if err != nil {
		return "n/a"
	}
	return "`" + strings.ReplaceAll(s, "\n", " ") + "`"
}

// renderScheduleMarkdown summarizes rules and the days they produce.
func renderScheduleMarkdown(title string, rules schedule.Set) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	if len(rules) == 0 {
		b.WriteString("_No schedules._\n")
		return b.String()
	}

	b.WriteString("| # | Schedule | Time slots | Recurrence |\n")
	b.WriteString("|---|----------|-----------:|------------|\n")
	for i, r := range rules {
		fmt.Fprintf(&b, "| %d | %s | %d | %s |\n", i+1, schedule.FormatRule(r), schedule.CountOccurrences(r), recurrenceCell(r))
	}
	fmt.Fprintf(&b, "\n**Total:** %s\n", quotaLine(schedule.CountSet(rules)))

	days := schedule.ExpandDays(rules)
	if len(days) == 0 {
		return b.String()
	}
	b.WriteString("\n## Days\n\n")
	b.WriteString("| Day | Time slots |\n")
	b.WriteString("|-----|------------|\n")
	for _, ds := range days {
		slots := make([]string, len(ds.Slots))
		for i, s := range ds.Slots {
			slots[i] = schedule.FormatTimeSlot(s)
		}
		fmt.Fprintf(&b, "| %s | %s |\n", schedule.FormatDate(ds.Date), strings.Join(slots, ", "))
	}
	return b.String()
}
