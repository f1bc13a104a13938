package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FlowStarted counts pipeline flow invocations by flow name.
	FlowStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resumeforge",
		Name:      "flow_started_total",
		Help:      "Number of flow invocations started.",
	}, []string{"flow"})

	// FlowCompleted counts successful flow completions by flow name.
	FlowCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resumeforge",
		Name:      "flow_completed_total",
		Help:      "Number of flow invocations completed successfully.",
	}, []string{"flow"})

	// FlowFailed counts failed flow invocations by flow name and error code.
	FlowFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resumeforge",
		Name:      "flow_failed_total",
		Help:      "Number of flow invocations that failed.",
	}, []string{"flow", "code"})

	// FlowDuration observes wall-clock flow durations.
	FlowDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "resumeforge",
		Name:      "flow_duration_seconds",
		Help:      "Flow duration in seconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"flow"})

	// LLMTokens counts model token usage by kind (prompt, completion).
	LLMTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resumeforge",
		Name:      "llm_tokens_total",
		Help:      "LLM token usage.",
	}, []string{"model", "kind"})
)

// ObserveFlow records a flow start and returns a closure to record the
// outcome and duration.
func ObserveFlow(flow string) func(err error) {
	FlowStarted.WithLabelValues(flow).Inc()
	start := time.Now()
	return func(err error) {
		FlowDuration.WithLabelValues(flow).Observe(time.Since(start).Seconds())
		if err != nil {
			FlowFailed.WithLabelValues(flow, "error").Inc()
			return
		}
		FlowCompleted.WithLabelValues(flow).Inc()
	}
}

// Handler returns the Prometheus scrape endpoint as a gin handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
