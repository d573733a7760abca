package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tenbooks/tenbooks_app/internal/apperrors"
	"github.com/tenbooks/tenbooks_app/internal/core/domain"
)

// PostingMetrics records commit outcomes for the posting engine.
type PostingMetrics struct {
	committed *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	latency   prometheus.Histogram
}

// NewPostingMetrics registers the posting engine metrics with the default
// Prometheus registry.
func NewPostingMetrics() *PostingMetrics {
	return &PostingMetrics{
		committed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tenbooks_postings_committed_total",
			Help: "Postings committed, by source module.",
		}, []string{"source_module"}),
		rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tenbooks_postings_rejected_total",
			Help: "Postings rejected or failed, by reason.",
		}, []string{"reason"}),
		latency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tenbooks_posting_commit_duration_seconds",
			Help:    "Posting commit latency including validation.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Observe records one commit attempt's outcome and latency.
func (m *PostingMetrics) Observe(module domain.SourceModule, err error, elapsed time.Duration) {
	m.latency.Observe(elapsed.Seconds())
	if err == nil {
		m.committed.WithLabelValues(string(module)).Inc()
		return
	}
	m.rejected.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyPosting):
		return "empty"
	case errors.Is(err, ErrUnbalancedPosting):
		return "unbalanced"
	case errors.Is(err, ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, apperrors.ErrConcurrentModification):
		return "concurrent_modification"
	default:
		return "internal"
	}
}
