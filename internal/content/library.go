// Package content loads events and locations from YAML files laid out as
// events/<id>.yaml and locations/<id>.yaml.
package content

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/tatianab/dread/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	EventsDir    = "events"
	LocationsDir = "locations"
	fileExt      = ".yaml"
)

// Library reads content from a file system and caches what it decodes.
// Decoded values are shared and must not be modified.
type Library struct {
	fsys fs.FS
	log  *slog.Logger

	events    map[string]*models.Event
	locations map[string]*models.Location
}

func NewLibrary(fsys fs.FS, log *slog.Logger) *Library {
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		fsys:      fsys,
		log:       log,
		events:    make(map[string]*models.Event),
		locations: make(map[string]*models.Location),
	}
}

// LoadEvent returns the event with id, reading it on first use. Failures
// are logged and reported as absent.
func (l *Library) LoadEvent(id string) (*models.Event, bool) {
	if ev, ok := l.events[id]; ok {
		return ev, true
	}
	ev, err := l.readEvent(id)
	if err != nil {
		l.log.Error("failed to load event", "event", id, "error", err)
		return nil, false
	}
	l.events[id] = ev
	l.log.Debug("loaded event", "event", id)
	return ev, true
}

// LoadLocation returns the location with id, reading it on first use.
func (l *Library) LoadLocation(id string) (*models.Location, bool) {
	if loc, ok := l.locations[id]; ok {
		return loc, true
	}
	loc, err := l.readLocation(id)
	if err != nil {
		l.log.Error("failed to load location", "location", id, "error", err)
		return nil, false
	}
	l.locations[id] = loc
	l.log.Debug("loaded location", "location", id)
	return loc, true
}

// Preload warms the cache with the given events and reports the ones that
// failed.
func (l *Library) Preload(ids ...string) error {
	var errs []error
	for _, id := range ids {
		if _, ok := l.LoadEvent(id); !ok {
			errs = append(errs, fmt.Errorf("content: event %q not loaded", id))
		}
	}
	return errors.Join(errs...)
}

func (l *Library) ClearCache() {
	l.events = make(map[string]*models.Event)
	l.locations = make(map[string]*models.Location)
}

// ListLocations returns every location id in the library, sorted.
func (l *Library) ListLocations() ([]string, error) {
	return l.list(LocationsDir)
}

// ListEvents returns every event id in the library, sorted.
func (l *Library) ListEvents() ([]string, error) {
	return l.list(EventsDir)
}

func (l *Library) list(dir string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: list %s: %w", dir, err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), fileExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// Validate loads every event and location and checks that each id matches
// its file name and that every referenced event exists.
func (l *Library) Validate() error {
	eventIDs, err := l.ListEvents()
	if err != nil {
		return err
	}
	locationIDs, err := l.ListLocations()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		known[id] = true
	}

	var errs []error
	for _, id := range eventIDs {
		ev, err := l.readEvent(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, next := range chainedEvents(ev) {
			if !known[next] {
				errs = append(errs, fmt.Errorf("content: event %q triggers unknown event %q", id, next))
			}
		}
	}
	for _, id := range locationIDs {
		loc, err := l.readLocation(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, e := range loc.EventPool {
			if !known[e] {
				errs = append(errs, fmt.Errorf("content: location %q pools unknown event %q", id, e))
			}
		}
	}
	return errors.Join(errs...)
}

func (l *Library) readEvent(id string) (*models.Event, error) {
	f, err := l.fsys.Open(path.Join(EventsDir, id+fileExt))
	if err != nil {
		return nil, fmt.Errorf("content: open event %q: %w", id, err)
	}
	defer f.Close()

	ev, err := DecodeEvent(f)
	if err != nil {
		return nil, fmt.Errorf("content: event %q: %w", id, err)
	}
	if ev.ID != id {
		return nil, fmt.Errorf("content: event file %q declares id %q", id, ev.ID)
	}
	return ev, nil
}

func (l *Library) readLocation(id string) (*models.Location, error) {
	f, err := l.fsys.Open(path.Join(LocationsDir, id+fileExt))
	if err != nil {
		return nil, fmt.Errorf("content: open location %q: %w", id, err)
	}
	defer f.Close()

	loc, err := DecodeLocation(f)
	if err != nil {
		return nil, fmt.Errorf("content: location %q: %w", id, err)
	}
	if loc.ID != id {
		return nil, fmt.Errorf("content: location file %q declares id %q", id, loc.ID)
	}
	return loc, nil
}

// DecodeEvent strictly decodes and validates one event document.
func DecodeEvent(r io.Reader) (*models.Event, error) {
	var ev models.Event
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ev); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DecodeLocation strictly decodes and validates one location document.
func DecodeLocation(r io.Reader) (*models.Location, error) {
	var loc models.Location
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&loc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return &loc, nil
}

func chainedEvents(ev *models.Event) []string {
	var out []string
	collect := func(cs []models.Consequence) {
		for _, c := range cs {
			if c.Kind == models.ConsequenceTriggerEvent {
				out = append(out, c.NextEventID)
			}
		}
	}
	collect(ev.AutoConsequences)
	for _, opt := range ev.Options {
		collect(opt.Consequences)
	}
	return out
}
