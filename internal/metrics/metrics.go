package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namdo_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namdo_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	TourAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "namdo_tourapi_request_duration_seconds",
			Help:    "TourAPI call latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint", "outcome"},
	)

	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namdo_llm_requests_total",
			Help: "LLM calls by provider and outcome (ok, error, fallback)",
		},
		[]string{"provider", "outcome"},
	)

	FestivalsSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namdo_festivals_synced_total",
			Help: "Festivals stored by the ingest job per region",
		},
		[]string{"region"},
	)

	ConversationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "namdo_conversations_completed_total",
			Help: "Conversations that reached the completed phase",
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "namdo_recommendation_candidates",
			Help:    "Number of festivals above the score threshold per request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)
)

// RecordTourAPICall matches the tourapi.Config OnRequest hook.
func RecordTourAPICall(endpoint string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TourAPIRequestDuration.WithLabelValues(endpoint, outcome).Observe(elapsed.Seconds())
}

func RecordLLMCall(provider, outcome string) {
	LLMRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

// Middleware records request count and latency per matched route so that
// path parameters do not explode label cardinality.
func Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		route := ctx.Route().Path
		APIRequestsTotal.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		APIRequestDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
