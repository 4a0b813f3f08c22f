package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder("lightctl", reg)

	r.ObserveReading(150)
	r.ObserveReading(75)
	r.ObserveReadError()
	r.ObserveDuty(0.5)
	r.ObserveBuzz()
	r.ObserveActuatorOn(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.reads.WithLabelValues("lightctl")))
	assert.Equal(t, 75.0, testutil.ToFloat64(r.readingValue.WithLabelValues("lightctl")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.readErrors.WithLabelValues("lightctl")))
	assert.Equal(t, 0.5, testutil.ToFloat64(r.duty.WithLabelValues("lightctl")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.buzzPulses.WithLabelValues("lightctl")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.actuatorOn.WithLabelValues("lightctl")))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveReading(1)
		r.ObserveReadError()
		r.ObserveDuty(1)
		r.ObserveBuzz()
		r.ObserveActuatorOn(false)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder("distancebuzz", reg)
	r.ObserveReading(42)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `blesense_reading_value{app="distancebuzz"} 42`)
}
