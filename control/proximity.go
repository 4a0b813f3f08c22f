package control

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/alepar/blesense/actuator"
	"github.com/alepar/blesense/mapping"
	"github.com/alepar/blesense/metrics"
	"github.com/alepar/blesense/sensor"
)

// Proximity beeps once per reading while an obstacle is nearer than MaxDistance.
type Proximity struct {
	Buzzer      *actuator.Buzzer
	MaxDistance int
	Metrics     *metrics.Recorder
}

func (p *Proximity) Handle(r sensor.Reading) error {
	distance := r.Int()
	log.Infof("Distance from wall: %d cm", distance)

	if !mapping.ShouldBuzz(distance, p.MaxDistance) {
		if err := p.Buzzer.Off(); err != nil {
			return errors.Wrap(err, "failed to silence buzzer")
		}
		p.Metrics.ObserveActuatorOn(false)
		return nil
	}

	p.Metrics.ObserveActuatorOn(true)
	err := p.Buzzer.Beep()
	p.Metrics.ObserveActuatorOn(p.Buzzer.IsActive())
	if err != nil {
		return errors.Wrap(err, "failed to beep")
	}
	p.Metrics.ObserveBuzz()
	return nil
}
