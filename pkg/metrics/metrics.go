package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Subscriber store metrics
	Subscriptions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_subscriptions_total",
		Help: "Total number of subscribe requests by result",
	}, []string{"result"})
	Unsubscriptions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_unsubscriptions_total",
		Help: "Total number of unsubscribe requests by result",
	}, []string{"result"})

	// Notification run metrics
	NotificationRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_notification_runs_total",
		Help: "Total number of notification runs by trigger (manual, latest)",
	}, []string{"trigger"})
	NotificationRecipients = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "portfolio_notification_recipients",
		Help:    "Number of recipients per notification run",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"host"})

	// Blogger API metrics
	BloggerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_blogger_requests_total",
		Help: "Total number of Blogger API requests by operation and result",
	}, []string{"operation", "result"})

	// Audit metrics
	AuditEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_audit_events_total",
		Help: "Total number of audit events recorded by type",
	}, []string{"type"})
	AuditSinkErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_audit_sink_errors_total",
		Help: "Total number of audit sink write failures",
	}, []string{"sink"})
)

func init() {
	prometheus.MustRegister(Subscriptions)
	prometheus.MustRegister(Unsubscriptions)
	prometheus.MustRegister(NotificationRuns)
	prometheus.MustRegister(NotificationRecipients)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(BloggerRequests)
	prometheus.MustRegister(AuditEvents)
	prometheus.MustRegister(AuditSinkErrors)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
