package engine

import (
	"io"
	"log/slog"

	"github.com/tatianab/dread/internal/models"
)

// scriptedRoller returns its values in order, each reduced modulo n.
type scriptedRoller struct {
	values []int
	calls  int
}

func (r *scriptedRoller) Intn(n int) int {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v % n
}

type mapLoader struct {
	events    map[string]*models.Event
	locations map[string]*models.Location
}

func (l mapLoader) LoadEvent(id string) (*models.Event, bool) {
	ev, ok := l.events[id]
	return ev, ok
}

func (l mapLoader) LoadLocation(id string) (*models.Location, bool) {
	loc, ok := l.locations[id]
	return loc, ok
}

type recordingDisplay struct {
	texts   []string
	labels  [][]string
	results []Result
}

func (d *recordingDisplay) ShowEvent(text, image string, labels []string) {
	d.texts = append(d.texts, text)
	d.labels = append(d.labels, labels)
}

func (d *recordingDisplay) ShowResult(r Result) {
	d.results = append(d.results, r)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func statChange(stat models.Stat, v int) models.Consequence {
	return models.Consequence{Kind: models.ConsequenceStatChange, Stat: stat, Value: v}
}
