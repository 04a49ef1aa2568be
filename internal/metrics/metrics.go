package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitapp_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitapp_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitapp_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"kind", "result"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitapp_checkins_total",
			Help: "Total number of member check-ins",
		},
		[]string{"membership_status"},
	)

	LicensesGrantedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitapp_licenses_granted_total",
			Help: "Total number of licenses granted",
		},
		[]string{"type"},
	)

	LicensesRevokedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitapp_licenses_revoked_total",
			Help: "Total number of licenses revoked",
		},
	)

	NoticesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitapp_notices_sent_total",
			Help: "Total number of email notices sent",
		},
		[]string{"type", "status"},
	)

	NoticeQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitapp_notice_queue_length",
			Help: "Current length of the email notice queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordLogin(kind, result string) {
	LoginsTotal.WithLabelValues(kind, result).Inc()
}

func RecordCheckIn(membershipStatus string) {
	CheckInsTotal.WithLabelValues(membershipStatus).Inc()
}

func RecordLicenseGrant(licenseType string) {
	LicensesGrantedTotal.WithLabelValues(licenseType).Inc()
}

func RecordLicenseRevocation() {
	LicensesRevokedTotal.Inc()
}

func RecordNotice(noticeType, status string) {
	NoticesSentTotal.WithLabelValues(noticeType, status).Inc()
}
