// Package observe records gameplay metrics through the OpenTelemetry
// Metrics API. Binaries pass the global meter provider; tests and the
// headless simulation pass an SDK provider with a manual reader.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/tatianab/dread"

// Metric names.
const (
	EventsShownName    = "dread.events.shown"
	ChecksName         = "dread.checks"
	InvestigationsName = "dread.investigations"
	GameOversName      = "dread.game_overs"
	TurnCostName       = "dread.turn_cost"
)

// Metrics holds the instruments for one engine.
type Metrics struct {
	// EventsShown counts events presented. Attribute: event.
	EventsShown metric.Int64Counter

	// Checks counts resolved stat checks. Attributes: stat, kind, outcome.
	Checks metric.Int64Counter

	// Investigations counts location investigations. Attribute: location.
	Investigations metric.Int64Counter

	// GameOvers counts terminal conditions. Attribute: cause.
	GameOvers metric.Int64Counter

	// TurnCost records turns spent per investigation.
	TurnCost metric.Int64Histogram
}

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.EventsShown, err = m.Int64Counter(EventsShownName,
		metric.WithDescription("Events presented to the player."),
	); err != nil {
		return nil, err
	}
	if met.Checks, err = m.Int64Counter(ChecksName,
		metric.WithDescription("Stat checks resolved, by stat, kind and outcome."),
	); err != nil {
		return nil, err
	}
	if met.Investigations, err = m.Int64Counter(InvestigationsName,
		metric.WithDescription("Locations investigated."),
	); err != nil {
		return nil, err
	}
	if met.GameOvers, err = m.Int64Counter(GameOversName,
		metric.WithDescription("Runs ended, by cause."),
	); err != nil {
		return nil, err
	}
	if met.TurnCost, err = m.Int64Histogram(TurnCostName,
		metric.WithDescription("Turns spent per investigation."),
		metric.WithUnit("{turn}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 8),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// Noop returns instruments that record nothing.
func Noop() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider())
	return m
}

func (m *Metrics) RecordEventShown(ctx context.Context, eventID string) {
	m.EventsShown.Add(ctx, 1, metric.WithAttributes(attribute.String("event", eventID)))
}

func (m *Metrics) RecordCheck(ctx context.Context, stat, kind string, passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	m.Checks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stat", stat),
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordInvestigation(ctx context.Context, locationID string, turnCost int) {
	m.Investigations.Add(ctx, 1, metric.WithAttributes(attribute.String("location", locationID)))
	m.TurnCost.Record(ctx, int64(turnCost))
}

func (m *Metrics) RecordGameOver(ctx context.Context, cause string) {
	m.GameOvers.Add(ctx, 1, metric.WithAttributes(attribute.String("cause", cause)))
}
