// Package metrics defines prometheus metric types and provides convenience
// methods to add accounting to various parts of the pipeline.
//
// When defining new operations or metrics, these are helpful values to track:
//  - things coming into or go out of the system: requests, files, tests, api calls.
//  - the success or error status of any of the above.
//  - the distribution of processing latency.
package metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParseErrorCount counts parse failures by maerr type name for typed
	// errors (e.g. "UnknownProtocolError"), or by the sentinel's message for
	// a package-level sentinel (e.g. "multiaddr: truncated input").
	//
	// Provides metrics:
	//   maddr_parse_errors_total
	// Example usage:
	//   metrics.ParseErrorCount.With(prometheus.Labels{"kind": "UnknownProtocolError"}).Inc()
	ParseErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maddr_parse_errors_total",
			Help: "The total number of text/binary parse failures, by error kind.",
		}, []string{"kind"})

	// CodecErrorCount counts per-protocol value-codec failures.
	//
	// Provides metrics:
	//   maddr_codec_errors_total
	CodecErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maddr_codec_errors_total",
			Help: "The total number of value codec failures, by protocol name.",
		}, []string{"protocol"})

	// ResolveDurationHistogram tracks the wall-clock latency of a full
	// resolve.Resolve call, including every recursive expansion.
	//
	// Provides metrics:
	//   maddr_resolve_duration_seconds
	ResolveDurationHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "maddr_resolve_duration_seconds",
			Help:    "resolve.Resolve call latency distribution (seconds)",
			Buckets: prometheus.DefBuckets,
		})

	// ResolveExpansionCount counts each dns/dns4/dns6/dnsaddr expansion
	// performed, by the resolvable protocol's name.
	//
	// Provides metrics:
	//   maddr_resolve_expansions_total
	ResolveExpansionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maddr_resolve_expansions_total",
			Help: "The total number of name expansions performed, by protocol.",
		}, []string{"protocol"})

	// ResolveRecursionDepthHistogram tracks how deep a resolve recursion
	// went before terminating, to watch how close callers run to
	// resolve.DefaultMaxDepth.
	//
	// Provides metrics:
	//   maddr_resolve_recursion_depth
	ResolveRecursionDepthHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "maddr_resolve_recursion_depth",
			Help:    "depth reached by a resolve.Resolve call before it stopped recursing",
			Buckets: prometheus.LinearBuckets(0, 2, 16),
		})

	// ThinwaistExpansionCount counts the multiaddrs produced by
	// thinwaist.Expand across all calls.
	//
	// Provides metrics:
	//   maddr_thinwaist_expansions_total
	ThinwaistExpansionCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "maddr_thinwaist_expansions_total",
			Help: "The total number of concrete multiaddrs produced by thin-waist expansion.",
		})
)

// init() prints a log message to let the user know that the package has been
// loaded and the metrics registered. The metrics are auto-registered, which
// means they are registered as soon as this package is loaded, and the exact
// time this occurs (and whether this occurs at all in a given context) can be
// opaque.
func init() {
	log.Println("Prometheus metrics in go-multiaddr.metrics are registered.")
}
