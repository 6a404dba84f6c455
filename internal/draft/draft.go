// Package draft keeps unfinished event schedules between runs in
// ~/.eventorbit/drafts.json.
package draft

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eventorbit/eventorbit/internal/api"
	"github.com/eventorbit/eventorbit/internal/config"
	"github.com/eventorbit/eventorbit/internal/schedule"
)

const fileName = "drafts.json"

// ErrNotFound is returned when no draft matches a name or id.
var ErrNotFound = errors.New("draft not found")

// Draft is one event whose schedule step is in progress. Schedules are kept
// in wire form so backend ids survive between runs.
type Draft struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Slug      string               `json:"slug"`
	EventID   string               `json:"eventId,omitempty"`
	Schedules []api.ScheduleRecord `json:"schedules"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Rules returns the draft's schedules as rules plus their id binding.
func (d *Draft) Rules() (schedule.Set, *api.Binding) {
	return api.FromRecords(d.Schedules)
}

// SetRules stores rules, re-attaching the ids the binding knows.
func (d *Draft) SetRules(rules schedule.Set, b *api.Binding) {
	d.Schedules = api.ToPayload(rules, b)
}

// Registry holds all drafts.
type Registry struct {
	Drafts []Draft `json:"drafts"`
}

// Path returns the path of drafts.json under homeDir.
func Path(homeDir string) string {
	return filepath.Join(config.Dir(homeDir), fileName)
}

// ReadRegistry reads the draft registry.
// Returns an empty registry if the file does not exist.
func ReadRegistry(homeDir string) (*Registry, error) {
	data, err := os.ReadFile(Path(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return &Registry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileName, err)
	}
	return &reg, nil
}

// WriteRegistry writes the draft registry, creating the directory if needed.
func WriteRegistry(homeDir string, reg *Registry) error {
	if err := os.MkdirAll(config.Dir(homeDir), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(Path(homeDir), data, 0644); err != nil {
		return err
	}
	log.Debug().Int("drafts", len(reg.Drafts)).Msg("draft registry written")
	return nil
}

// Find looks up a draft by id, name or slug. Returns nil if not found.
func (r *Registry) Find(key string) *Draft {
	for i := range r.Drafts {
		d := &r.Drafts[i]
		if d.ID == key || d.Name == key || d.Slug == key {
			return d
		}
	}
	return nil
}

// Add creates an empty draft named name.
func (r *Registry) Add(name string, now time.Time) (*Draft, error) {
	name = strings.TrimSpace(name)
	slug := slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("draft name %q has no letters or digits", name)
	}
	if existing := r.Find(slug); existing != nil || r.Find(name) != nil {
		return nil, fmt.Errorf("draft '%s' already exists", name)
	}

	r.Drafts = append(r.Drafts, Draft{
		ID:        newID(name, now),
		Name:      name,
		Slug:      slug,
		Schedules: []api.ScheduleRecord{},
		UpdatedAt: now,
	})
	return &r.Drafts[len(r.Drafts)-1], nil
}

// Remove deletes the draft matching key.
func (r *Registry) Remove(key string) (Draft, error) {
	for i, d := range r.Drafts {
		if d.ID == key || d.Name == key || d.Slug == key {
			r.Drafts = append(r.Drafts[:i], r.Drafts[i+1:]...)
			return d, nil
		}
	}
	return Draft{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}

// Load reads the registry and returns the draft matching key.
func Load(homeDir, key string) (*Registry, *Draft, error) {
	reg, err := ReadRegistry(homeDir)
	if err != nil {
		return nil, nil, err
	}
	d := reg.Find(key)
	if d == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return reg, d, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases name, replaces runs of other characters with a hyphen
// and trims hyphens at both ends.
func slugify(name string) string {
	s := strings.ToLower(name)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// newID returns a 7-character hex id seeded by name and time.
func newID(name string, now time.Time) string {
	seed := fmt.Sprintf("%s\x00%d", name, now.UnixNano())
	hash := sha256.Sum256([]byte(seed))
	return fmt.Sprintf("%x", hash[:4])[:7]
}
