// Package metrics defines the observability sink used by the product type
// registry and the product URL builder. Sinks are created by name from
// configuration through a factory registry; several configured sinks are
// combined with NewMultiSink.
package metrics
