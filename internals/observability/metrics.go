package observability

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ProposalsSubmitted counts moderation proposals entering the queue.
	ProposalsSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventorganizer",
		Name:      "moderation_proposals_submitted_total",
		Help:      "Number of moderation proposals submitted, by target type and action",
	}, []string{"request_type", "action"})

	// ProposalsReviewed counts review outcomes. result is "applied",
	// "rejected" or "failed" (replay error, proposal left pending).
	ProposalsReviewed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventorganizer",
		Name:      "moderation_proposals_reviewed_total",
		Help:      "Number of proposal reviews, by target type and result",
	}, []string{"request_type", "result"})
)

func init() {
	prometheus.MustRegister(ProposalsSubmitted, ProposalsReviewed)
}

// MetricsHandler exposes the default registry on a Fiber route.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
