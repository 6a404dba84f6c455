package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eventorbit/eventorbit/internal/api"
	"github.com/eventorbit/eventorbit/internal/draft"
	"github.com/eventorbit/eventorbit/internal/editor"
	"github.com/eventorbit/eventorbit/internal/schedule"
)

// pullConcurrency caps parallel schedule fetches.
const pullConcurrency = 4

var schedulePullCmd = LeafCommand{
	Use:   "pull [DRAFT...]",
	Short: "Replace drafts' schedules with the ones stored on the backend",
	Example: `  eventorbit schedule pull jazz-night --event 665f1c2e9b1d8a0012ab34cd
  eventorbit schedule pull`,
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "replace local schedules without asking"},
	},
	StrFlags: []StringFlag{
		{Name: "event", Usage: "link the draft to this backend event id first"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		eventID, _ := cmd.Flags().GetString("event")
		yes, _ := cmd.Flags().GetBool("yes")
		confirm := NewConfirmFunc(cmd.InOrStdin(), cmd.OutOrStdout())
		if yes {
			confirm = AlwaysYes()
		}
		return runSchedulePull(cmd.Context(), cmd, a.homeDir, args, eventID, newScheduleAPI(a.cfg), confirm, time.Now())
	},
}.Build()

var schedulePushCmd = LeafCommand{
	Use:   "push DRAFT",
	Short: "Publish a draft's schedules, creating the event if needed",
	Args:  cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "title", Usage: "event title when creating (default: draft name)"},
		{Name: "description", Usage: "event description when creating"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		payload := api.EventPayload{Title: title, Description: description}
		return runSchedulePush(cmd.Context(), cmd, a.homeDir, args[0], payload, newScheduleAPI(a.cfg), time.Now())
	},
}.Build()

func init() {
	schedulePullCmd.ValidArgsFunction = completeDraftKeys
	schedulePushCmd.ValidArgsFunction = completeDraftKeys
}

func runSchedulePull(ctx context.Context, cmd *cobra.Command, homeDir string, keys []string, eventID string, client scheduleAPI, confirm ConfirmFunc, now time.Time) error {
	reg, err := draft.ReadRegistry(homeDir)
	if err != nil {
		return err
	}

	if eventID != "" && len(keys) != 1 {
		return fmt.Errorf("--event links exactly one draft, got %d", len(keys))
	}

	var targets []*draft.Draft
	if len(keys) == 0 {
		for i := range reg.Drafts {
			if reg.Drafts[i].EventID != "" {
				targets = append(targets, &reg.Drafts[i])
			}
		}
		if len(targets) == 0 {
			return fmt.Errorf("no draft is linked to an event; use --event")
		}
	}
	seen := map[*draft.Draft]bool{}
	for _, key := range keys {
		d := reg.Find(key)
		if d == nil {
			return fmt.Errorf("%w: %s", draft.ErrNotFound, key)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		if eventID != "" {
			d.EventID = eventID
		}
		if d.EventID == "" {
			return fmt.Errorf("draft '%s' is not linked to an event; use --event", d.Name)
		}
		targets = append(targets, d)
	}

	fetched := make([][]api.ScheduleRecord, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pullConcurrency)
	for i, d := range targets {
		g.Go(func() error {
			records, err := client.FetchSchedules(gctx, d.EventID)
			if err != nil {
				return fmt.Errorf("pull '%s': %w", d.Name, err)
			}
			log.Debug().Str("draft", d.Slug).Int("schedules", len(records)).Msg("schedules fetched")
			fetched[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, d := range targets {
		if len(d.Schedules) > 0 {
			ok, err := confirm(Text(fmt.Sprintf("Replace the %d local schedules of '%s'?", len(d.Schedules), d.Name)))
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintf(w, "%s\n", Silent(fmt.Sprintf("skipped '%s'", d.Name)))
				continue
			}
		}

		d.Schedules = fetched[i]
		if d.Schedules == nil {
			d.Schedules = []api.ScheduleRecord{}
		}
		d.UpdatedAt = now

		rules, _ := d.Rules()
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("pulled %d schedules (%s) into '%s'",
			len(rules), slotCount(schedule.CountSet(rules)), Primary(d.Name))))
		if schedule.ExceedsCeiling(rules) {
			_, _ = fmt.Fprintf(w, "  %s\n", Warning(quotaWarning()))
		}
	}

	return draft.WriteRegistry(homeDir, reg)
}

func runSchedulePush(ctx context.Context, cmd *cobra.Command, homeDir, key string, payload api.EventPayload, client scheduleAPI, now time.Time) error {
	reg, d, err := draft.Load(homeDir, key)
	if err != nil {
		return err
	}

	rules, binding := d.Rules()
	if err := editor.ValidateForAdvance(rules); err != nil {
		return err
	}
	for i, r := range rules {
		if !schedule.IsRuleValid(r) {
			return fmt.Errorf("schedule #%d is incomplete; fix it with 'eventorbit schedule edit %s'", i+1, d.Slug)
		}
	}

	records := api.ToPayload(rules, binding)
	w := cmd.OutOrStdout()

	if d.EventID == "" {
		if payload.Title == "" {
			payload.Title = d.Name
		}
		payload.Schedules = records
		id, err := client.CreateEvent(ctx, payload)
		if err != nil {
			return err
		}
		d.EventID = id
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("created event %s for '%s'", Primary(id), d.Name)))
	} else {
		if err := client.SaveSchedules(ctx, d.EventID, records); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("updated event %s for '%s'", Primary(d.EventID), d.Name)))
	}

	// Re-read so new schedules pick up their backend ids.
	stored, err := client.FetchSchedules(ctx, d.EventID)
	if err != nil {
		log.Warn().Err(err).Str("event", d.EventID).Msg("could not refresh schedule ids")
		stored = records
	}
	d.Schedules = stored
	d.UpdatedAt = now
	if err := draft.WriteRegistry(homeDir, reg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%s\n", Text(fmt.Sprintf("published %s", slotCount(schedule.CountSet(rules)))))
	return nil
}
