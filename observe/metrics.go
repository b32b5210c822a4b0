// Package observe holds the OpenTelemetry instruments for inkwell: compile
// coverage, effect execution and choice outcomes.
//
// Instruments are created from a [metric.MeterProvider]. [NewPrometheus]
// builds a provider backed by a Prometheus exporter for the serve command;
// tests use an sdk ManualReader. A nil *Metrics records nothing, so
// components can take one optionally.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/SvenDH/inkwell"

type Metrics struct {
	// AbilitiesCompiled counts emitted ability definitions by kind.
	AbilitiesCompiled metric.Int64Counter

	// ParseMisses counts text units that compiled to nothing. Use with
	// attribute.String("card_type", ...).
	ParseMisses metric.Int64Counter

	// EffectsExecuted counts executed effects. Use with attributes:
	//   attribute.String("type", ...), attribute.String("family", ...)
	EffectsExecuted metric.Int64Counter

	// UnhandledEffects counts effect types no family handler accepted.
	UnhandledEffects metric.Int64Counter

	// Choices counts choice flows by terminal state.
	Choices metric.Int64Counter

	ChoiceDuration metric.Float64Histogram
}

var choiceBuckets = []float64{
	0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120,
}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AbilitiesCompiled, err = m.Int64Counter("inkwell.compile.abilities",
		metric.WithDescription("Ability definitions emitted by the compiler, by kind."),
	); err != nil {
		return nil, err
	}
	if met.ParseMisses, err = m.Int64Counter("inkwell.compile.misses",
		metric.WithDescription("Ability texts that matched no pattern."),
	); err != nil {
		return nil, err
	}
	if met.EffectsExecuted, err = m.Int64Counter("inkwell.engine.effects",
		metric.WithDescription("Effects executed, by type and family."),
	); err != nil {
		return nil, err
	}
	if met.UnhandledEffects, err = m.Int64Counter("inkwell.engine.unhandled",
		metric.WithDescription("Effects whose type no handler accepts."),
	); err != nil {
		return nil, err
	}
	if met.Choices, err = m.Int64Counter("inkwell.choice.outcomes",
		metric.WithDescription("Choice requests by terminal state."),
	); err != nil {
		return nil, err
	}
	if met.ChoiceDuration, err = m.Float64Histogram("inkwell.choice.duration",
		metric.WithDescription("Time a player took to answer a choice request."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(choiceBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns metrics on the global meter provider, which records nothing
// until a provider is installed.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

func (m *Metrics) RecordCompiled(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.AbilitiesCompiled.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) RecordParseMiss(ctx context.Context, cardType string) {
	if m == nil {
		return
	}
	m.ParseMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("card_type", cardType)))
}

func (m *Metrics) RecordEffect(ctx context.Context, effectType, family string) {
	if m == nil {
		return
	}
	m.EffectsExecuted.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("type", effectType),
			attribute.String("family", family),
		),
	)
}

func (m *Metrics) RecordUnhandled(ctx context.Context, effectType string) {
	if m == nil {
		return
	}
	m.UnhandledEffects.Add(ctx, 1, metric.WithAttributes(attribute.String("type", effectType)))
}

// RecordChoice records the terminal state of one choice flow and how long
// the request was outstanding.
func (m *Metrics) RecordChoice(ctx context.Context, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.Choices.Add(ctx, 1, attrs)
	m.ChoiceDuration.Record(ctx, took.Seconds(), attrs)
}
