// Package metrics exposes Prometheus collectors for ranking activity. The
// collectors live in the default registry and are served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

var (
	RankingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "champion_rankings_total",
			Help: "Rankings computed, by request source and whether the result is tied.",
		},
		[]string{"source", "tied"},
	)

	RulesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "champion_ranking_rules_total",
			Help: "Fold rules applied, one per ranked competitor.",
		},
		[]string{"rule"},
	)

	Competitors = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "champion_ranking_competitors",
			Help:    "Number of competitors per ranking.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	TieSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "champion_tie_size",
			Help:    "Size of the tie group in each ranking result.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	Duration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "champion_ranking_duration_seconds",
			Help:    "Time spent in the ranking fold.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)
)

// Every rule series exists from startup, so rate() sees the first increment.
func init() {
	for _, r := range ranking.Rules {
		RulesTotal.WithLabelValues(string(r))
	}
}

// ObserveRanking records one completed ranking.
func ObserveRanking(source string, res ranking.Result, steps []ranking.Step, elapsed time.Duration) {
	tied := !res.TiedChampions.IsEmpty()
	RankingsTotal.WithLabelValues(source, strconv.FormatBool(tied)).Inc()
	Competitors.Observe(float64(len(steps)))
	TieSize.Observe(float64(res.TiedChampions.Len()))
	Duration.Observe(elapsed.Seconds())

	for _, s := range steps {
		RulesTotal.WithLabelValues(string(s.Rule)).Inc()
	}
}
