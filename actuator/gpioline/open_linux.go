//go:build linux
// +build linux

package gpioline

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/warthog618/go-gpiocdev"
)

// Open requests offset on chip as an output, initially low.
func Open(chip string, offset int, consumer string) (*Line, error) {
	l, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to request GPIO line %s:%d", chip, offset)
	}
	log.Debugf("configured output %s:%d for %s", chip, offset, consumer)
	return &Line{line: l, chip: chip, offset: offset}, nil
}
