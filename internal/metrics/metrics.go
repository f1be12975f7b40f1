package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_emails_sent_total",
			Help: "Total newsletter emails accepted by the transport",
		},
	)

	EmailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_email_failures_total",
			Help: "Total failed newsletter sends",
		},
	)

	DispatchPasses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_passes_total",
			Help: "Total dispatch passes run",
		},
	)

	CampaignsDispatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_campaigns_total",
			Help: "Total campaign runs dispatched",
		},
	)

	LateCampaigns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_late_campaigns_total",
			Help: "Campaigns dispatched past the on-time window",
		},
	)

	PassDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "dispatch_pass_duration_seconds",
			Help: "Duration of one dispatch pass",
		},
	)
)

func Init() {
	prometheus.MustRegister(
		EmailsSent,
		EmailFailures,
		DispatchPasses,
		CampaignsDispatched,
		LateCampaigns,
		PassDuration,
	)
}
