package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"leadscout/internal/identity/models"
)

// Metrics provides observability for the extraction pipeline.
type Metrics struct {
	// Classifier outcomes by profile; outcome is the token kind or the
	// rejection reason.
	ClassifiedCandidates *prometheus.CounterVec

	// Extraction runs by result: committed, failed, stale
	ExtractionDuration *prometheus.HistogramVec

	ImportItems *prometheus.CounterVec

	DuplicatesFound prometheus.Counter

	FeatureGateDenials prometheus.Counter

	ActiveSessions prometheus.Gauge
}

// New registers the metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ClassifiedCandidates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leadscout_classified_candidates_total",
			Help: "Classifier outcomes by profile and outcome",
		}, []string{"profile", "outcome"}),

		ExtractionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leadscout_extraction_duration_seconds",
			Help:    "Duration of screenshot extraction runs by result",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		}, []string{"result"}),

		ImportItems: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leadscout_import_items_total",
			Help: "Contact import items by outcome",
		}, []string{"outcome"}),

		DuplicatesFound: factory.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_dedup_duplicates_total",
			Help: "Candidates matched to an existing contact",
		}),

		FeatureGateDenials: factory.NewCounter(prometheus.CounterOpts{
			Name: "leadscout_feature_gate_denials_total",
			Help: "Screenshot submissions refused because the capability is disabled",
		}),

		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "leadscout_extraction_sessions_active",
			Help: "Extraction sessions currently held in memory",
		}),
	}
}

// ObserveClassified records one classifier outcome.
func (m *Metrics) ObserveClassified(profile string, c models.ClassifiedCandidate) {
	if m == nil {
		return
	}
	outcome := string(c.RejectionReason)
	if c.Accepted() {
		outcome = string(c.Token.Kind)
	}
	m.ClassifiedCandidates.WithLabelValues(profile, outcome).Inc()
}

func (m *Metrics) ObserveExtraction(result string, d time.Duration) {
	if m != nil {
		m.ExtractionDuration.WithLabelValues(result).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementImport(outcome string) {
	if m != nil {
		m.ImportItems.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) AddDuplicates(n int) {
	if m != nil && n > 0 {
		m.DuplicatesFound.Add(float64(n))
	}
}

func (m *Metrics) IncrementGateDenial() {
	if m != nil {
		m.FeatureGateDenials.Inc()
	}
}

func (m *Metrics) SetActiveSessions(n int) {
	if m != nil {
		m.ActiveSessions.Set(float64(n))
	}
}
