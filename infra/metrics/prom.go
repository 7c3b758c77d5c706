package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/catalog/core/metrics"
)

// PromSink records catalog events in Prometheus metrics.
type PromSink struct {
	typeLoads prometheus.Counter
	typeCount prometheus.Gauge
	urls      *prometheus.CounterVec
}

// NewPromSink registers catalog metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	loads := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_product_types_loaded_total",
		Help: "Number of times the product type map was populated",
	})
	count := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_product_types",
		Help: "Number of product types in the last populated map",
	})
	urls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_product_urls_total",
		Help: "Product URLs built, by request path source",
	}, []string{"source"})

	var err error
	if loads, err = register(reg, loads); err != nil {
		return nil, err
	}
	if count, err = register(reg, count); err != nil {
		return nil, err
	}
	if urls, err = register(reg, urls); err != nil {
		return nil, err
	}
	return &PromSink{typeLoads: loads, typeCount: count, urls: urls}, nil
}

// register returns the already registered collector when c is a duplicate.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordTypeLoad implements coremetrics.Sink.
func (s *PromSink) RecordTypeLoad(count int) error {
	s.typeLoads.Inc()
	s.typeCount.Set(float64(count))
	return nil
}

// RecordURL implements coremetrics.Sink.
func (s *PromSink) RecordURL(source string) error {
	s.urls.WithLabelValues(source).Inc()
	return nil
}

var _ coremetrics.Sink = (*PromSink)(nil)
