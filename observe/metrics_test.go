package observe

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func counterTotal(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is %T", m.Name, m.Data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordCompiled(ctx, "static")
	m.RecordCompiled(ctx, "triggered")
	m.RecordParseMiss(ctx, "action")
	m.RecordEffect(ctx, "damage", "damage")
	m.RecordEffect(ctx, "draw", "resource")
	m.RecordEffect(ctx, "draw", "resource")
	m.RecordUnhandled(ctx, "bogus")
	m.RecordChoice(ctx, "responded", 20*time.Millisecond)

	rm := collect(t, reader)
	tests := []struct {
		name string
		want int64
	}{
		{"inkwell.compile.abilities", 2},
		{"inkwell.compile.misses", 1},
		{"inkwell.engine.effects", 3},
		{"inkwell.engine.unhandled", 1},
		{"inkwell.choice.outcomes", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, counterTotal(t, findMetric(rm, tt.name)))
		})
	}

	h := findMetric(rm, "inkwell.choice.duration")
	require.NotNil(t, h)
	hist, ok := h.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCompiled(context.Background(), "static")
		m.RecordParseMiss(context.Background(), "item")
		m.RecordEffect(context.Background(), "draw", "resource")
		m.RecordUnhandled(context.Background(), "x")
		m.RecordChoice(context.Background(), "failed", time.Second)
	})
}

func TestPrometheusHandler(t *testing.T) {
	mp, handler, err := NewPrometheus(false)
	require.NoError(t, err)
	defer mp.Shutdown(context.Background())

	m, err := NewMetrics(mp)
	require.NoError(t, err)
	m.RecordParseMiss(context.Background(), "character")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "inkwell_compile_misses")
}
