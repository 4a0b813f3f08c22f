package actuator

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePWM struct {
	duties []float64
	closed bool
	err    error
}

func (f *fakePWM) SetDuty(duty float64) error {
	if f.err != nil {
		return f.err
	}
	f.duties = append(f.duties, duty)
	return nil
}

func (f *fakePWM) Close() error {
	f.closed = true
	return nil
}

type fakeLine struct {
	events []string
	closed bool
	err    error
}

func (f *fakeLine) Set(on bool) error {
	if f.err != nil {
		return f.err
	}
	if on {
		f.events = append(f.events, "on")
	} else {
		f.events = append(f.events, "off")
	}
	return nil
}

func (f *fakeLine) Close() error {
	f.closed = true
	return nil
}

func TestLEDSetValue(t *testing.T) {
	out := &fakePWM{}
	led := NewLED(out)

	require.NoError(t, led.SetValue(0.25))
	require.NoError(t, led.SetValue(1))
	assert.Equal(t, []float64{0.25, 1}, out.duties)
	assert.Equal(t, 1.0, led.Value())

	err := led.SetValue(1.5)
	assert.Equal(t, ErrDutyOutOfRange, errors.Cause(err))
	err = led.SetValue(-0.1)
	assert.Equal(t, ErrDutyOutOfRange, errors.Cause(err))
	assert.Len(t, out.duties, 2)
}

func TestLEDOutputFailure(t *testing.T) {
	boom := errors.New("pwm gone")
	led := NewLED(&fakePWM{err: boom})

	err := led.SetValue(0.5)
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Zero(t, led.Value())
}

func TestLEDClose(t *testing.T) {
	out := &fakePWM{}
	led := NewLED(out)
	require.NoError(t, led.SetValue(0.7))

	require.NoError(t, led.Close())
	assert.Equal(t, []float64{0.7, 0}, out.duties)
	assert.True(t, out.closed)
}

func TestBuzzerBeep(t *testing.T) {
	line := &fakeLine{}
	b := NewBuzzer(line)
	b.Sleep = func(d time.Duration) {
		line.events = append(line.events, "sleep "+d.String())
	}

	require.NoError(t, b.Beep())
	assert.Equal(t, []string{"on", "sleep 100ms", "off", "sleep 100ms"}, line.events)
	assert.False(t, b.IsActive())
}

func TestBuzzerBeepBlocks(t *testing.T) {
	b := NewBuzzer(&fakeLine{})
	b.OnTime = 20 * time.Millisecond
	b.OffTime = 20 * time.Millisecond

	start := time.Now()
	require.NoError(t, b.Beep())
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestBuzzerOffIsIdempotent(t *testing.T) {
	line := &fakeLine{}
	b := NewBuzzer(line)
	b.Sleep = func(time.Duration) { t.Fatal("Off must not sleep") }

	require.NoError(t, b.Off())
	require.NoError(t, b.Off())
	assert.Equal(t, []string{"off", "off"}, line.events)
	assert.False(t, b.IsActive())
}

func TestBuzzerFailure(t *testing.T) {
	boom := errors.New("line busy")
	b := NewBuzzer(&fakeLine{err: boom})
	b.Sleep = func(time.Duration) { t.Fatal("no pulse when the line cannot be driven") }

	err := b.Beep()
	require.Error(t, err)
	assert.Equal(t, boom, errors.Cause(err))
}

func TestBuzzerClose(t *testing.T) {
	line := &fakeLine{}
	b := NewBuzzer(line)

	require.NoError(t, b.Close())
	assert.Equal(t, []string{"off"}, line.events)
	assert.True(t, line.closed)
}
