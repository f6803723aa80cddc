package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_http_requests_total",
			Help: "Total number of HTTP requests handled by the portal API",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ListingSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_listing_submissions_total",
			Help: "Total number of stored listing requests by submission channel",
		},
		[]string{"channel"},
	)

	WizardTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_wizard_transitions_total",
			Help: "Wizard step transitions by source step, target step and result",
		},
		[]string{"from", "to", "result"},
	)

	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_image_uploads_total",
			Help: "Image uploads by result",
		},
		[]string{"result"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_notifications_sent_total",
			Help: "Outgoing submission notifications by channel and result",
		},
		[]string{"channel", "result"},
	)
)

// Recorder implements port.MetricsPort over the package collectors.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

func (Recorder) ListingSubmitted(channel string) {
	ListingSubmissionsTotal.WithLabelValues(channel).Inc()
}

func (Recorder) WizardTransition(from, to string, ok bool) {
	WizardTransitionsTotal.WithLabelValues(from, to, result(ok)).Inc()
}

func (Recorder) ImageUpload(res string) {
	ImageUploadsTotal.WithLabelValues(res).Inc()
}

func (Recorder) NotificationSent(channel string, ok bool) {
	NotificationsSentTotal.WithLabelValues(channel, result(ok)).Inc()
}
