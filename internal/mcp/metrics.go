package mcp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "annocheck_mcp_tool_invocations_total",
		Help: "Total number of MCP tool invocations.",
	}, []string{"tool"})

	toolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "annocheck_mcp_tool_errors_total",
		Help: "Total number of failed MCP tool invocations.",
	}, []string{"tool"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "annocheck_mcp_tool_duration_seconds",
		Help:    "Duration of MCP tool invocations.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	toolActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "annocheck_mcp_tool_active_requests",
		Help: "Number of MCP tool invocations in flight.",
	}, []string{"tool"})
)

// trackTool records one invocation. Call the returned function when the tool
// handler finishes.
func trackTool(tool string) func(err error) {
	start := time.Now()
	toolActive.WithLabelValues(tool).Inc()
	return func(err error) {
		toolActive.WithLabelValues(tool).Dec()
		toolInvocations.WithLabelValues(tool).Inc()
		toolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
		if err != nil {
			toolErrors.WithLabelValues(tool).Inc()
		}
	}
}
