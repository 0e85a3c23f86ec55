package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "questionnaire"

var (
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Sessions created",
	})

	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_completed_total",
		Help:      "Sessions that reached the end of the catalog",
	})

	// Answers is labelled by result: accepted or rejected.
	Answers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Submitted answers by validation outcome",
		},
		[]string{"result"},
	)

	PhrasingFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phrasing_fallbacks_total",
			Help:      "Phrasing calls answered with the fixed fallback text",
		},
		[]string{"operation"},
	)

	ResultExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_exports_total",
			Help:      "Completed session exports per sink",
		},
		[]string{"sink", "status"},
	)

	CatalogQuestions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_questions",
		Help:      "Questions in the currently loaded catalog",
	})
)
