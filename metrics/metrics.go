package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder keeps the collectors of one application. A nil *Recorder records nothing.
type Recorder struct {
	readingValue *prometheus.GaugeVec
	duty         *prometheus.GaugeVec
	actuatorOn   *prometheus.GaugeVec
	reads        *prometheus.CounterVec
	readErrors   *prometheus.CounterVec
	buzzPulses   *prometheus.CounterVec

	app string
}

func NewRecorder(app string, reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		readingValue: newGauge("blesense_reading_value", "Last decoded characteristic value (lux or cm)"),
		duty:         newGauge("blesense_actuator_duty", "PWM duty last applied to the LED (0..1)"),
		actuatorOn:   newGauge("blesense_actuator_on", "1 while the digital actuator is switched on"),
		reads:        newCounter("blesense_reads_total", "Characteristic reads that decoded successfully"),
		readErrors:   newCounter("blesense_read_errors_total", "Characteristic reads that failed"),
		buzzPulses:   newCounter("blesense_buzz_pulses_total", "Buzzer pulses emitted"),
		app:          app,
	}
	reg.MustRegister(r.readingValue, r.duty, r.actuatorOn, r.reads, r.readErrors, r.buzzPulses)
	return r
}

func newGauge(name string, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		[]string{"app"},
	)
}

func newCounter(name string, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		[]string{"app"},
	)
}

func (r *Recorder) ObserveReading(value uint64) {
	if r == nil {
		return
	}
	r.reads.WithLabelValues(r.app).Inc()
	r.readingValue.WithLabelValues(r.app).Set(float64(value))
}

func (r *Recorder) ObserveReadError() {
	if r == nil {
		return
	}
	r.readErrors.WithLabelValues(r.app).Inc()
}

func (r *Recorder) ObserveDuty(duty float64) {
	if r == nil {
		return
	}
	r.duty.WithLabelValues(r.app).Set(duty)
}

func (r *Recorder) ObserveBuzz() {
	if r == nil {
		return
	}
	r.buzzPulses.WithLabelValues(r.app).Inc()
}

func (r *Recorder) ObserveActuatorOn(on bool) {
	if r == nil {
		return
	}
	v := 0.0
	if on {
		v = 1
	}
	r.actuatorOn.WithLabelValues(r.app).Set(v)
}

// Handler exposes g in the Prometheus text and OpenMetrics formats.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(
		g,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics to support exemplars.
			EnableOpenMetrics: true,
		},
	)
}

// Serve blocks serving /metrics on addr.
func Serve(addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	return http.ListenAndServe(addr, mux)
}
