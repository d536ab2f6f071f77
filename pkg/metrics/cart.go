package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics counts cart traffic. A nil *CartMetrics is a valid no-op recorder.
type CartMetrics struct {
	mutations      *prometheus.CounterVec
	decodeFailures prometheus.Counter
	renders        *prometheus.CounterVec
	ignored        prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart writes by operation.",
	}, []string{"op"})
	decodeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_decode_failures_total",
		Help: "Stored cart blobs that could not be decoded and were treated as empty.",
	})
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_renders_total",
		Help: "Cart page renders by resulting state.",
	}, []string{"state"})
	ignored := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_activations_ignored_total",
		Help: "Add-to-cart activations dropped because of missing or invalid product attributes.",
	})
	reg.MustRegister(mutations, decodeFailures, renders, ignored)
	return &CartMetrics{
		mutations:      mutations,
		decodeFailures: decodeFailures,
		renders:        renders,
		ignored:        ignored,
	}
}

// IncMutation increments the mutation counter for op.
func (m *CartMetrics) IncMutation(op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncDecodeFailure counts a blob that failed to decode.
func (m *CartMetrics) IncDecodeFailure() {
	if m == nil || m.decodeFailures == nil {
		return
	}
	m.decodeFailures.Inc()
}

// IncRender counts a cart render in the given state.
func (m *CartMetrics) IncRender(state string) {
	if m == nil || m.renders == nil {
		return
	}
	m.renders.WithLabelValues(normalizeLabel(state)).Inc()
}

// IncIgnoredActivation counts a dropped add-to-cart activation.
func (m *CartMetrics) IncIgnoredActivation() {
	if m == nil || m.ignored == nil {
		return
	}
	m.ignored.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
