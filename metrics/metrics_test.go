package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m-lab/go-multiaddr/metrics"
)

func TestMetricsAreRegisteredAndScrapeable(t *testing.T) {
	metrics.ParseErrorCount.With(prometheus.Labels{"kind": "ErrMissingValue"}).Inc()
	metrics.CodecErrorCount.With(prometheus.Labels{"protocol": "ip4"}).Inc()
	metrics.ResolveExpansionCount.With(prometheus.Labels{"protocol": "dns4"}).Inc()
	metrics.ThinwaistExpansionCount.Inc()

	server := httptest.NewServer(promhttp.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("could not GET metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("could not read metrics: %v", err)
	}
	text := string(body)

	for _, want := range []string{
		"maddr_parse_errors_total",
		"maddr_codec_errors_total",
		"maddr_resolve_duration_seconds",
		"maddr_resolve_expansions_total",
		"maddr_resolve_recursion_depth",
		"maddr_thinwaist_expansions_total",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected scrape output to contain %q", want)
		}
	}
}
