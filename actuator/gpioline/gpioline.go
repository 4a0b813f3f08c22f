// Package gpioline drives a single digital output through the GPIO
// character device.
package gpioline

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultChip = "gpiochip0"

type line interface {
	SetValue(value int) error
	Close() error
}

type Line struct {
	line   line
	chip   string
	offset int
}

func (l *Line) Set(on bool) error {
	val := 0
	if on {
		val = 1
	}
	if err := l.line.SetValue(val); err != nil {
		return errors.Wrapf(err, "failed to set %s:%d=%d", l.chip, l.offset, val)
	}
	return nil
}

func (l *Line) Close() error {
	if err := l.line.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s:%d", l.chip, l.offset)
	}
	log.Debugf("closed output %s:%d", l.chip, l.offset)
	return nil
}
