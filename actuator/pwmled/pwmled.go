// Package pwmled drives a PWM output on a SoC GPIO through periph.io.
package pwmled

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// DefaultFrequency matches the usual software PWM rate for hobby LEDs.
const DefaultFrequency = 100 * physic.Hertz

type pin interface {
	Out(l gpio.Level) error
	PWM(duty gpio.Duty, f physic.Frequency) error
	Halt() error
}

type Output struct {
	pin  pin
	name string
	freq physic.Frequency
}

// Open initializes the periph host drivers and claims the BCM pin.
func Open(bcm int, freq physic.Frequency) (*Output, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize periph host")
	}
	name := PinName(bcm)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("no such gpio pin %s", name)
	}
	log.Debugf("pwm led on %s at %s", name, freq)
	return newOutput(p, name, freq), nil
}

func newOutput(p pin, name string, freq physic.Frequency) *Output {
	return &Output{pin: p, name: name, freq: freq}
}

func PinName(bcm int) string {
	return fmt.Sprintf("GPIO%d", bcm)
}

// SetDuty drives the pin with duty in [0, 1]. The extremes are plain levels.
func (o *Output) SetDuty(duty float64) error {
	var err error
	switch d := toDuty(duty); d {
	case 0:
		err = o.pin.Out(gpio.Low)
	case gpio.DutyMax:
		err = o.pin.Out(gpio.High)
	default:
		err = o.pin.PWM(d, o.freq)
	}
	if err != nil {
		return errors.Wrapf(err, "%s: failed to set duty %v", o.name, duty)
	}
	return nil
}

func (o *Output) Close() error {
	if err := o.pin.Out(gpio.Low); err != nil {
		log.Warnf("%s: failed to pull low: %s", o.name, err)
	}
	return errors.Wrapf(o.pin.Halt(), "%s: failed to halt", o.name)
}

func toDuty(duty float64) gpio.Duty {
	if duty <= 0 {
		return 0
	}
	if duty >= 1 {
		return gpio.DutyMax
	}
	return gpio.Duty(math.Round(duty * float64(gpio.DutyMax)))
}
