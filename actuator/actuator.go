package actuator

import (
	"time"

	"github.com/pkg/errors"
)

// DefaultPin is the BCM line both demo boards wire their actuator to.
const DefaultPin = 18

var ErrDutyOutOfRange = errors.New("duty must be within [0, 1]")

type PWMOutput interface {
	SetDuty(duty float64) error
	Close() error
}

type DigitalOutput interface {
	Set(on bool) error
	Close() error
}

// LED is a PWM dimmed LED.
type LED struct {
	out   PWMOutput
	value float64
}

func NewLED(out PWMOutput) *LED {
	return &LED{out: out}
}

// SetValue sets the brightness, 0 being off and 1 fully lit.
func (led *LED) SetValue(value float64) error {
	if value < 0 || value > 1 {
		return errors.Wrapf(ErrDutyOutOfRange, "got %v", value)
	}
	if err := led.out.SetDuty(value); err != nil {
		return errors.Wrapf(err, "failed to set led duty %v", value)
	}
	led.value = value
	return nil
}

func (led *LED) Value() float64 {
	return led.value
}

// Close turns the LED off and releases the output.
func (led *LED) Close() error {
	offErr := led.SetValue(0)
	if err := led.out.Close(); err != nil {
		return errors.Wrap(err, "failed to release led output")
	}
	return offErr
}

// Buzzer is an active buzzer on a digital line.
type Buzzer struct {
	OnTime  time.Duration
	OffTime time.Duration
	Sleep   func(time.Duration)

	out    DigitalOutput
	active bool
}

func NewBuzzer(out DigitalOutput) *Buzzer {
	return &Buzzer{
		OnTime:  100 * time.Millisecond,
		OffTime: 100 * time.Millisecond,
		Sleep:   time.Sleep,
		out:     out,
	}
}

// Beep sounds one pulse and returns once the off time has passed, with the
// buzzer silent.
func (b *Buzzer) Beep() error {
	if err := b.set(true); err != nil {
		return err
	}
	b.Sleep(b.OnTime)
	if err := b.set(false); err != nil {
		return err
	}
	b.Sleep(b.OffTime)
	return nil
}

// Off silences the buzzer. Safe to call repeatedly.
func (b *Buzzer) Off() error {
	return b.set(false)
}

func (b *Buzzer) IsActive() bool {
	return b.active
}

func (b *Buzzer) Close() error {
	offErr := b.Off()
	if err := b.out.Close(); err != nil {
		return errors.Wrap(err, "failed to release buzzer output")
	}
	return offErr
}

func (b *Buzzer) set(on bool) error {
	if err := b.out.Set(on); err != nil {
		return errors.Wrapf(err, "failed to switch buzzer on=%v", on)
	}
	b.active = on
	return nil
}
