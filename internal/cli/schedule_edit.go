package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eventorbit/eventorbit/internal/api"
	"github.com/eventorbit/eventorbit/internal/draft"
	"github.com/eventorbit/eventorbit/internal/editor"
	"github.com/eventorbit/eventorbit/internal/schedule"
)

const (
	mainMenu  = "[a]dd [RULE]  [e]dit N  [d]elete N  [c]ontinue  [q]uit"
	draftMenu = "[s]tart DATE  [t]ime N  [n]ew slot  [r]emove N  [m]ode  [y] days  [l]ast DATE  [w]rite  [x] cancel"
)

var scheduleEditCmd = LeafCommand{
	Use:   "edit DRAFT",
	Short: "Interactively edit a draft's schedules",
	Example: `  eventorbit schedule edit jazz-night
  a 6pm for 2h every mon,wed from 2024-06-03 to 2024-06-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		kit := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout())
		return runScheduleEdit(cmd, a.homeDir, args[0], a.cfg.Zone(), time.Now(), kit)
	},
}.Build()

func init() {
	scheduleEditCmd.ValidArgsFunction = completeDraftKeys
}

// editSession is one run of the interactive editor over a draft.
type editSession struct {
	ed      *editor.Editor
	binding *api.Binding
	kit     PromptKit
	w       io.Writer
	zone    string
	now     time.Time
}

func runScheduleEdit(cmd *cobra.Command, homeDir, key, zone string, now time.Time, kit PromptKit) error {
	reg, d, err := draft.Load(homeDir, key)
	if err != nil {
		return err
	}

	rules, binding := d.Rules()
	s := &editSession{
		ed:      editor.New(rules),
		binding: binding,
		kit:     kit,
		w:       cmd.OutOrStdout(),
		zone:    zone,
		now:     now,
	}

	_, _ = fmt.Fprintf(s.w, "%s\n\n", Text(fmt.Sprintf("Editing schedules for '%s'", Primary(d.Name))))

	for {
		s.printRules()
		_, _ = fmt.Fprintf(s.w, "\n%s ", Text(mainMenu))

		input, err := kit.Prompt("")
		if err != nil {
			return err
		}
		verb, rest := splitAction(input)

		switch verb {
		case "q", "quit":
			if err := s.save(homeDir, reg, d); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(s.w, "%s\n", Text(fmt.Sprintf("schedules for '%s' saved", Primary(d.Name))))
			return nil

		case "c", "continue":
			if err := s.ed.ValidateForAdvance(); err != nil {
				_, _ = fmt.Fprintf(s.w, "%s\n", Error(err.Error()))
				continue
			}
			if err := s.save(homeDir, reg, d); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(s.w, "%s\n", Text(fmt.Sprintf("schedules for '%s' saved, %s ready to publish", Primary(d.Name), slotCount(s.ed.Total()))))
			return nil

		case "a", "add":
			if rest != "" {
				s.addParsed(rest)
				continue
			}
			if s.dispatch(editor.OpenAdd{}).Accepted {
				if err := s.compose(); err != nil {
					return err
				}
			}

		case "e", "edit":
			idx, err := parseActionIndex(input, s.ed.Len())
			if err != nil {
				_, _ = fmt.Fprintf(s.w, "%s\n", Error("error: "+err.Error()))
				continue
			}
			if s.dispatch(editor.OpenEdit{Index: idx}).Accepted {
				if err := s.compose(); err != nil {
					return err
				}
			}

		case "d", "delete":
			idx, err := parseActionIndex(input, s.ed.Len())
			if err != nil {
				_, _ = fmt.Fprintf(s.w, "%s\n", Error("error: "+err.Error()))
				continue
			}
			ok, err := kit.Confirm(Text(fmt.Sprintf("Delete schedule #%d?", idx+1)))
			if err != nil {
				return err
			}
			if ok {
				s.dispatch(editor.Delete{Index: idx})
			}

		default:
			_, _ = fmt.Fprintf(s.w, "%s\n", Error("unknown action, use [a]dd, [e]dit N, [d]elete N, [c]ontinue, or [q]uit"))
		}
	}
}

// compose runs the draft menu until the open schedule is written or
// cancelled.
func (s *editSession) compose() error {
	for {
		d, ok := s.ed.Draft()
		if !ok {
			return nil
		}
		s.printDraft(d)
		_, _ = fmt.Fprintf(s.w, "\n%s ", Text(draftMenu))

		input, err := s.kit.Prompt("")
		if err != nil {
			return err
		}
		verb, rest := splitAction(input)

		switch verb {
		case "s", "start":
			date, err := s.askDate("Start date", rest)
			if err != nil {
				return err
			}
			s.dispatch(editor.SetStartDate{Date: date})

		case "t", "time":
			idx, err := parseActionIndex(input, len(d.Rule.TimeSlots))
			if err != nil {
				_, _ = fmt.Fprintf(s.w, "%s\n", Error("error: "+err.Error()))
				continue
			}
			slot, err := s.askSlot(d.Rule.StartDate, strings.Fields(input)[2:])
			if err != nil {
				return err
			}
			s.dispatch(editor.SetTimeSlot{Index: idx, Slot: slot})

		case "n", "new":
			s.dispatch(editor.AddEmptyTimeSlot{})

		case "r", "remove":
			idx, err := parseActionIndex(input, len(d.Rule.TimeSlots))
			if err != nil {
				_, _ = fmt.Fprintf(s.w, "%s\n", Error("error: "+err.Error()))
				continue
			}
			s.dispatch(editor.RemoveTimeSlot{Index: idx})

		case "m", "mode":
			mode, err := s.askMode(rest)
			if err != nil {
				return err
			}
			s.dispatch(editor.SetRepeatMode{Mode: mode})

		case "y", "days":
			days, err := s.askDays(rest)
			if err != nil {
				return err
			}
			s.dispatch(editor.SetRepeatDays{Days: days})

		case "l", "last":
			if strings.EqualFold(rest, "none") {
				s.dispatch(editor.SetEndDate{})
				continue
			}
			date, err := s.askDate("Last occurrence", rest)
			if err != nil {
				return err
			}
			s.dispatch(editor.SetEndDate{Date: &date})

		case "w", "write", "save":
			res := s.dispatch(editor.Commit{})
			if res.Accepted {
				rules := s.ed.Rules()
				_, _ = fmt.Fprintf(s.w, "\n  %s\n\n", Text("→ "+schedule.FormatRule(rules[res.Change.Index])))
				return nil
			}

		case "x", "cancel":
			s.dispatch(editor.Cancel{})
			return nil

		default:
			_, _ = fmt.Fprintf(s.w, "%s\n", Error("unknown action, use [s]tart, [t]ime N, [n]ew, [r]emove N, [m]ode, [y] days, [l]ast, [w]rite, or [x] cancel"))
		}
	}
}

// addParsed adds a rule typed on one line, feeding it through the same
// editor actions the menu uses.
func (s *editSession) addParsed(text string) {
	rule, err := schedule.ParseRule(text, s.zone, s.now)
	if err != nil {
		_, _ = fmt.Fprintf(s.w, "%s\n", Error("error: "+err.Error()))
		return
	}

	if !s.dispatch(editor.OpenAdd{}).Accepted {
		return
	}
	s.dispatch(editor.SetStartDate{Date: rule.StartDate})
	for i, slot := range rule.TimeSlots {
		if i > 0 {
			s.dispatch(editor.AddEmptyTimeSlot{})
		}
		s.dispatch(editor.SetTimeSlot{Index: i, Slot: slot})
	}
	if rule.Repeats() {
		mode := editor.ModeOf(rule)
		s.dispatch(editor.SetRepeatMode{Mode: mode})
		if mode == editor.RepeatSelectedDays {
			s.dispatch(editor.SetRepeatDays{Days: rule.RepeatDays})
		}
		s.dispatch(editor.SetEndDate{Date: rule.EndDate})
	}

	res := s.dispatch(editor.Commit{})
	if !res.Accepted {
		s.ed.Dispatch(editor.Cancel{})
		return
	}
	_, _ = fmt.Fprintf(s.w, "\n  %s\n\n", Text("→ "+schedule.FormatRule(s.ed.Rules()[res.Change.Index])))
}

// dispatch applies an action, reports a refusal and keeps backend ids in
// step with the rule list.
func (s *editSession) dispatch(a editor.Action) editor.Result {
	res := s.ed.Dispatch(a)
	if !res.Accepted {
		_, _ = fmt.Fprintf(s.w, "%s\n", Error(res.Message))
		return res
	}
	s.binding.Follow(res.Change)
	log.Debug().Str("action", fmt.Sprintf("%T", a)).Int("rules", s.ed.Len()).Msg("editor action applied")
	return res
}

func (s *editSession) save(homeDir string, reg *draft.Registry, d *draft.Draft) error {
	d.SetRules(s.ed.Rules(), s.binding)
	d.UpdatedAt = s.now
	return draft.WriteRegistry(homeDir, reg)
}

func (s *editSession) printRules() {
	rules := s.ed.Rules()
	if len(rules) == 0 {
		_, _ = fmt.Fprintf(s.w, "  %s\n", Silent("(no schedules)"))
	}
	for i, r := range rules {
		_, _ = fmt.Fprintf(s.w, "  %s  %s\n",
			Text(fmt.Sprintf("%d. %s", i+1, schedule.FormatRule(r))),
			Silent("("+slotCount(schedule.CountOccurrences(r))+")"))
	}

	total := s.ed.Total()
	_, _ = fmt.Fprintf(s.w, "\n  %s %s\n", Info("Total:"), Text(quotaLine(total)))
	if total > schedule.MaxOccurrences {
		_, _ = fmt.Fprintf(s.w, "  %s\n", Warning(quotaWarning()))
	}
}

func (s *editSession) printDraft(d editor.Draft) {
	header := "New schedule"
	if st, ok := s.ed.State().(editor.Editing); ok {
		header = fmt.Sprintf("Editing schedule #%d", st.Index+1)
	}
	_, _ = fmt.Fprintf(s.w, "\n%s\n", Info(header))

	r := d.Rule
	start := "(not set)"
	if !r.StartDate.IsZero() {
		start = schedule.FormatDate(r.StartDate)
	}
	_, _ = fmt.Fprintf(s.w, "  %s\n", Text("Start:   "+start))

	repeat := d.Mode.Label()
	if d.Mode == editor.RepeatSelectedDays {
		repeat += " (" + schedule.FormatRepeatDays(r.RepeatDays) + ")"
	}
	_, _ = fmt.Fprintf(s.w, "  %s\n", Text("Repeat:  "+repeat))

	if d.Mode != editor.RepeatNone {
		last := "(not set)"
		if r.EndDate != nil {
			last = schedule.FormatDate(*r.EndDate)
		}
		_, _ = fmt.Fprintf(s.w, "  %s\n", Text("Last:    "+last))
	}

	_, _ = fmt.Fprintf(s.w, "  %s\n", Text("Time slots:"))
	for i, slot := range r.TimeSlots {
		_, _ = fmt.Fprintf(s.w, "    %s\n", Text(fmt.Sprintf("%d. %s", i+1, schedule.FormatTimeSlot(slot))))
	}
	for _, o := range schedule.FindOverlaps(r) {
		_, _ = fmt.Fprintf(s.w, "  %s\n", Warning(o.String()))
	}

	count := d.Count()
	projected := s.projectedTotal(count)
	_, _ = fmt.Fprintf(s.w, "\n  %s\n", Text(fmt.Sprintf("%s in this schedule, %s for the event", slotCount(count), quotaLine(projected))))
	if projected > schedule.MaxOccurrences {
		_, _ = fmt.Fprintf(s.w, "  %s\n", Warning(quotaWarning()))
	}
}

// projectedTotal is the event's occurrence count if the open draft were
// written with count occurrences.
func (s *editSession) projectedTotal(count int) int {
	total := s.ed.Total()
	if st, ok := s.ed.State().(editor.Editing); ok {
		total -= schedule.CountOccurrences(s.ed.Rules()[st.Index])
	}
	return total + count
}

// askDate parses inline, or prompts until a date is given.
func (s *editSession) askDate(label, inline string) (schedule.Date, error) {
	if inline != "" {
		d, err := schedule.ParseDate(inline, s.now)
		if err == nil {
			return d, nil
		}
		_, _ = fmt.Fprintf(s.w, "%s\n", Error("invalid date: "+err.Error()))
	}
	for {
		input, err := s.kit.Prompt(Text(fmt.Sprintf("%s (e.g. 2024-06-03, tomorrow, friday): ", label)))
		if err != nil {
			return schedule.Date{}, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			_, _ = fmt.Fprintf(s.w, "%s\n", Error("please enter a date"))
			continue
		}
		d, err := schedule.ParseDate(input, s.now)
		if err != nil {
			_, _ = fmt.Fprintf(s.w, "%s\n", Error("invalid date: "+err.Error()))
			continue
		}
		return d, nil
	}
}

// askSlot builds a time slot from up to two inline fields (start time and
// duration), prompting for whatever is missing or invalid.
func (s *editSession) askSlot(day schedule.Date, inline []string) (schedule.TimeSlot, error) {
	var startIn, durIn string
	if len(inline) > 0 {
		startIn = inline[0]
	}
	if len(inline) > 1 {
		durIn = strings.Join(inline[1:], "")
	}

	var start schedule.TimeOfDay
	for {
		if startIn == "" {
			input, err := s.kit.Prompt(Text("Start time (e.g. 6pm, 18:30): "))
			if err != nil {
				return schedule.TimeSlot{}, err
			}
			startIn = strings.TrimSpace(input)
		}
		t, err := schedule.ParseTimeOfDay(startIn, s.zone)
		startIn = ""
		if err != nil {
			_, _ = fmt.Fprintf(s.w, "%s\n", Error("invalid time: "+err.Error()))
			continue
		}
		if msg := s.startProblem(day, t); msg != "" {
			_, _ = fmt.Fprintf(s.w, "%s\n", Error(msg))
			continue
		}
		start = t
		break
	}

	for {
		if durIn == "" {
			input, err := s.kit.Prompt(Text("Duration (e.g. 2h, 90m): "))
			if err != nil {
				return schedule.TimeSlot{}, err
			}
			durIn = strings.TrimSpace(input)
		}
		d, err := schedule.ParseDuration(durIn)
		durIn = ""
		if err != nil {
			_, _ = fmt.Fprintf(s.w, "%s\n", Error("invalid duration: "+err.Error()))
			continue
		}
		return schedule.NewTimeSlot(start, d), nil
	}
}

// startProblem checks t against the start times offered for day.
func (s *editSession) startProblem(day schedule.Date, t schedule.TimeOfDay) string {
	if day.IsZero() {
		return ""
	}
	for _, opt := range schedule.SlotStartOptions(day, s.now, s.zone) {
		if opt.Hour == t.Hour && opt.Minute == t.Minute {
			return ""
		}
	}
	if t.Minute%schedule.SlotStepMinutes != 0 {
		return fmt.Sprintf("start times go in %d-minute steps", schedule.SlotStepMinutes)
	}
	return "that time has already passed today"
}

// askMode resolves a repeat mode from inline text or a selection.
func (s *editSession) askMode(inline string) (editor.RepeatMode, error) {
	switch strings.ToLower(inline) {
	case "none", "once", "no":
		return editor.RepeatNone, nil
	case "every-day", "daily", "every day":
		return editor.RepeatEveryDay, nil
	case "selected-days", "selected", "days":
		return editor.RepeatSelectedDays, nil
	}

	labels := make([]string, len(editor.RepeatModes))
	for i, m := range editor.RepeatModes {
		labels[i] = m.Label()
	}
	idx, err := s.kit.Select("Repeat", labels)
	if err != nil {
		return "", err
	}
	return editor.RepeatModes[idx], nil
}

// askDays resolves repeat days from inline text or a multi-selection.
func (s *editSession) askDays(inline string) (schedule.WeekdaySet, error) {
	if inline != "" {
		days, err := schedule.ParseWeekdays(inline)
		if err == nil {
			return days, nil
		}
		_, _ = fmt.Fprintf(s.w, "%s\n", Error("invalid days: "+err.Error()))
	}

	titles := make([]string, len(schedule.AllWeekdays))
	for i, d := range schedule.AllWeekdays {
		titles[i] = d.Title()
	}
	picked, err := s.kit.MultiSelect("Repeat on", titles)
	if err != nil {
		return nil, err
	}
	days := schedule.NewWeekdaySet()
	for _, i := range picked {
		days[schedule.AllWeekdays[i]] = struct{}{}
	}
	return days, nil
}

// splitAction splits menu input into a lowercased verb and the rest.
func splitAction(input string) (string, string) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
	return strings.ToLower(verb), strings.TrimSpace(rest)
}

func parseActionIndex(action string, count int) (int, error) {
	parts := strings.Fields(action)
	if len(parts) < 2 {
		return 0, fmt.Errorf("expected a number after the action")
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", parts[1])
	}
	if count == 0 {
		return 0, fmt.Errorf("nothing to pick from yet")
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("number out of range (1-%d)", count)
	}
	return n - 1, nil
}
