package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/smallbiznis/billora/internal/observability/metrics"
	"go.uber.org/fx"
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newHTTPMetrics(reg *prometheus.Registry) *metrics.HTTPMetrics {
	return metrics.NewHTTPMetrics(reg)
}

var Module = fx.Module("observability",
	fx.Provide(newRegistry),
	fx.Provide(newHTTPMetrics),
)
