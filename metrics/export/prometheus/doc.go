// Package prometheus renders goQuizClient metrics in Prometheus text
// exposition format without taking a dependency on the Prometheus client
// library. The exporter is pull-based: wire [PrometheusExporter.Handler]
// into the embedding application's mux and scrape it.
package prometheus
