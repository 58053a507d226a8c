// Package metrics exposes Prometheus instrumentation for the queue service.
// Counters are registered on the default registry; Handler serves them for
// scraping.
package metrics
