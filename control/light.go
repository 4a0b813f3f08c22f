// Package control binds a sensor reading to the actuator each app drives.
package control

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/alepar/blesense/actuator"
	"github.com/alepar/blesense/mapping"
	"github.com/alepar/blesense/metrics"
	"github.com/alepar/blesense/sensor"
)

// LightMaxLux is the full-scale lux the light app maps against.
const LightMaxLux = 150

// Light dims the LED as the measured illuminance rises. A zero MaxLux maps
// against mapping.DefaultMaxLux.
type Light struct {
	LED     *actuator.LED
	MaxLux  int
	Metrics *metrics.Recorder
}

func (l *Light) Handle(r sensor.Reading) error {
	lux := r.Int()
	log.Infof("Value: %d", lux)

	maxLux := l.MaxLux
	if maxLux == 0 {
		maxLux = mapping.DefaultMaxLux
	}
	analog := mapping.LuxToAnalog(lux, maxLux)
	log.Infof("Analog Value: %d", analog)

	duty := mapping.InvertedDuty(analog)
	if err := l.LED.SetValue(duty); err != nil {
		return errors.Wrap(err, "failed to set led brightness")
	}
	l.Metrics.ObserveDuty(duty)
	return nil
}
