package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pubdex",
			Name:      "searches_total",
			Help:      "Total number of search operations by path",
		},
		[]string{"path"},
	)

	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pubdex",
			Name:      "search_duration_seconds",
			Help:      "Search operation duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"path"},
	)

	indexArticles = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pubdex",
		Name:      "index_articles",
		Help:      "Number of corpus rows in the active index snapshot",
	})

	indexVocabulary = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pubdex",
		Name:      "index_vocabulary_terms",
		Help:      "Vocabulary size of the active vector space",
	})
)

// RegisterSearchMetrics registers search and index metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(searchesTotal)
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(indexArticles)
	prometheus.MustRegister(indexVocabulary)
}

// ObserveSearch records one search operation on the named path.
func ObserveSearch(path string, seconds float64) {
	searchesTotal.WithLabelValues(path).Inc()
	searchDuration.WithLabelValues(path).Observe(seconds)
}

// SetIndexStats publishes the active snapshot's sizes.
func SetIndexStats(articles, vocabulary int) {
	indexArticles.Set(float64(articles))
	indexVocabulary.Set(float64(vocabulary))
}
