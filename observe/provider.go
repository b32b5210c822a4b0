package observe

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// NewPrometheus builds a meter provider that exports through a dedicated
// Prometheus registry, and the /metrics handler serving it. With global set
// the provider is also installed as the otel global.
func NewPrometheus(global bool) (*sdkmetric.MeterProvider, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	if global {
		otel.SetMeterProvider(mp)
	}
	return mp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
