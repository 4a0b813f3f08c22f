// Package mapping turns raw sensor readings into actuator commands.
package mapping

import "math/bits"

const (
	AnalogMax = 255

	// DefaultMaxLux is the full-scale illuminance when a caller has no better figure.
	DefaultMaxLux = 1500
)

// LuxToAnalog scales lux from [0, maxLux] onto [0, AnalogMax], rounding
// down and clamping out-of-range input. A non-positive maxLux yields 0.
func LuxToAnalog(lux, maxLux int) int {
	if lux <= 0 || maxLux <= 0 {
		return 0
	}
	if lux >= maxLux {
		return AnalogMax
	}
	// lux < maxLux keeps the high word below the divisor.
	hi, lo := bits.Mul64(uint64(lux), AnalogMax)
	q, _ := bits.Div64(hi, lo, uint64(maxLux))
	return int(q)
}

// InvertedDuty converts an analog level into the PWM duty the LED is driven
// with. Brighter surroundings give a dimmer LED: AnalogMax maps to 0.
func InvertedDuty(analog int) float64 {
	if analog < 0 {
		analog = 0
	} else if analog > AnalogMax {
		analog = AnalogMax
	}
	return 1 - float64(analog)/AnalogMax
}
