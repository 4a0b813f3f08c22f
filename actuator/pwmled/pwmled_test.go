package pwmled

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type fakePin struct {
	level  gpio.Level
	duty   gpio.Duty
	freq   physic.Frequency
	pwm    int
	halted bool
	err    error
}

func (p *fakePin) Out(l gpio.Level) error {
	p.level = l
	return p.err
}

func (p *fakePin) PWM(duty gpio.Duty, f physic.Frequency) error {
	p.pwm++
	p.duty = duty
	p.freq = f
	return p.err
}

func (p *fakePin) Halt() error {
	p.halted = true
	return nil
}

func TestToDuty(t *testing.T) {
	assert.Equal(t, gpio.Duty(0), toDuty(0))
	assert.Equal(t, gpio.Duty(0), toDuty(-1))
	assert.Equal(t, gpio.DutyMax, toDuty(1))
	assert.Equal(t, gpio.DutyMax, toDuty(3))
	assert.Equal(t, gpio.DutyHalf, toDuty(0.5))
}

func TestSetDuty(t *testing.T) {
	p := &fakePin{}
	out := newOutput(p, PinName(18), DefaultFrequency)

	require.NoError(t, out.SetDuty(0.5))
	assert.Equal(t, gpio.DutyHalf, p.duty)
	assert.Equal(t, 100*physic.Hertz, p.freq)

	require.NoError(t, out.SetDuty(1))
	assert.Equal(t, gpio.High, p.level)

	require.NoError(t, out.SetDuty(0))
	assert.Equal(t, gpio.Low, p.level)
	assert.Equal(t, 1, p.pwm)
}

func TestSetDutyError(t *testing.T) {
	boom := errors.New("pwm not available")
	out := newOutput(&fakePin{err: boom}, PinName(18), DefaultFrequency)

	err := out.SetDuty(0.3)
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Contains(t, err.Error(), "GPIO18")
}

func TestClose(t *testing.T) {
	p := &fakePin{level: gpio.High}
	out := newOutput(p, PinName(18), DefaultFrequency)

	require.NoError(t, out.Close())
	assert.Equal(t, gpio.Low, p.level)
	assert.True(t, p.halted)
}
