// Package metrics defines the prometheus collectors for account operations
// and request handling.
package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/thingful/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess  = "success"
	OutcomeStore    = "store_error"
	OutcomeInternal = "internal_error"
)

var (
	// registrations counts Register calls by outcome. Rejections use their
	// lower-cased reason code.
	registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thingful_registrations_total",
		Help: "Total number of registration attempts by outcome",
	}, []string{"outcome"})

	// logins counts Login calls by outcome.
	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thingful_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "thingful_request_duration_seconds",
		Help:    "Histogram of request latency in seconds by transport, route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"transport", "route", "status"})
)

// Outcome maps a service result onto a metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if r, ok := common.AsRejection(err); ok {
		return strings.ToLower(r.Code)
	}
	if errors.Is(err, common.ErrStore) {
		return OutcomeStore
	}
	return OutcomeInternal
}

func RecordRegistration(err error) {
	registrations.WithLabelValues(Outcome(err)).Inc()
}

func RecordLogin(err error) {
	logins.WithLabelValues(Outcome(err)).Inc()
}

// ObserveRequest records one finished request.
func ObserveRequest(transport, route, status string, elapsed time.Duration) {
	requestDuration.WithLabelValues(transport, route, status).Observe(elapsed.Seconds())
}
