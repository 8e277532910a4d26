package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.ObserveDBCall("query", time.Millisecond, nil)
		m.SetDBPoolStats(1, 1, 0, 0)
		m.ObserveBookingOutcome("reserve", "rejected", "too_soon")
		m.ObserveNotificationFailure("appointment.created")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveBookingOutcome("reserve", "rejected", "slot_occupied")
	m.ObserveBookingOutcome("reserve", "rejected", "slot_occupied")
	m.ObserveBookingOutcome("reserve", "success", "")
	m.ObserveDBCall("exec", time.Millisecond, errors.New("boom"))
	m.ObserveHTTPRequest("POST", "/api/v1/appointments", 201, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("test", "reserve", "rejected", "slot_occupied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("test", "reserve", "success", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("test", "exec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("test", "POST", "/api/v1/appointments", "201")))
}
