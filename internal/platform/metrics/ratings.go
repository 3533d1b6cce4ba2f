package metrics

import "github.com/prometheus/client_golang/prometheus"

// RatingMetrics は評価の投稿結果（created / updated / invalid / failed）を数えます。
type RatingMetrics struct {
	submissions *prometheus.CounterVec
}

// NewRatingMetrics はカウンターを reg に登録します。reg が nil の場合は何も記録しません。
func NewRatingMetrics(reg prometheus.Registerer) *RatingMetrics {
	if reg == nil {
		return &RatingMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_submissions_total",
		Help: "Rating submissions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(submissions)
	return &RatingMetrics{submissions: submissions}
}

// ObserveSubmission は outcome のカウンターを 1 増やします。
func (m *RatingMetrics) ObserveSubmission(outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
