// Package telemetry exposes the gateway's prometheus metrics. Collectors
// are registered once at package init and shared by the engine and the
// HTTP layer.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesProcessed counts inbound messages by detection outcome.
	MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lurebox_messages_processed_total",
		Help: "Inbound messages processed, labeled by whether fraud was suspected.",
	}, []string{"suspected"})

	// ReportsEmitted counts intelligence reports by escalation reason.
	ReportsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lurebox_reports_emitted_total",
		Help: "Intelligence reports handed to the sink, labeled by escalation reason.",
	}, []string{"reason"})

	// ReportFailures counts deliveries the sink could not complete.
	ReportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lurebox_report_failures_total",
		Help: "Report deliveries that failed after all retries.",
	})

	// AbuseDisengagements counts turns where the abuse guard cut the
	// conversation off.
	AbuseDisengagements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lurebox_abuse_disengagements_total",
		Help: "Turns terminated by a critical abuse verdict.",
	})

	// ActiveSessions tracks the live session count after each turn.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lurebox_active_sessions",
		Help: "Sessions currently held in memory.",
	})

	// ProcessingSeconds observes full pipeline latency per message.
	ProcessingSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lurebox_message_processing_seconds",
		Help:    "Wall time to run one message through the pipeline.",
		Buckets: prometheus.DefBuckets,
	})
)
