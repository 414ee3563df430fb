package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PositionMetrics records item position activity for wishlists.
type PositionMetrics struct {
	moveDuration *prometheus.HistogramVec
	appends      prometheus.Counter
	moves        *prometheus.CounterVec
	renumbers    *prometheus.CounterVec
}

const (
	// RenumberReasonGapExhausted marks renumbers forced by midpoint collisions.
	RenumberReasonGapExhausted = "gap_exhausted"
	// RenumberReasonRequested marks renumbers triggered explicitly.
	RenumberReasonRequested = "requested"
)

// NewPositionMetrics registers the position metrics on the provided registerer.
func NewPositionMetrics(reg prometheus.Registerer) *PositionMetrics {
	if reg == nil {
		return &PositionMetrics{}
	}
	moveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wishlist_move_duration_seconds",
		Help:    "Duration of wishlist item move operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	appends := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wishlist_item_appends",
		Help: "Items appended to the end of a wishlist.",
	})
	moves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_item_moves",
		Help: "Wishlist item move operations by placement.",
	}, []string{"placement"})
	renumbers := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_renumbers",
		Help: "Full wishlist renumber passes by reason.",
	}, []string{"reason"})
	reg.MustRegister(moveDuration, appends, moves, renumbers)
	return &PositionMetrics{
		moveDuration: moveDuration,
		appends:      appends,
		moves:        moves,
		renumbers:    renumbers,
	}
}

// ObserveMoveDuration records how long a move took with its outcome label.
func (p *PositionMetrics) ObserveMoveDuration(outcome string, duration time.Duration) {
	if p == nil || p.moveDuration == nil {
		return
	}
	p.moveDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncAppend increments the append counter.
func (p *PositionMetrics) IncAppend() {
	if p == nil || p.appends == nil {
		return
	}
	p.appends.Inc()
}

// IncMove increments the move counter for the given placement (front, middle, end, noop).
func (p *PositionMetrics) IncMove(placement string) {
	if p == nil || p.moves == nil {
		return
	}
	p.moves.WithLabelValues(normalizeLabel(placement)).Inc()
}

// IncRenumber increments the renumber counter for the given reason.
func (p *PositionMetrics) IncRenumber(reason string) {
	if p == nil || p.renumbers == nil {
		return
	}
	p.renumbers.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
