// Package session runs the connect, read, actuate loop against one peripheral.
//
// A session moves through three states: it dials the peripheral
// (StateConnecting), then resolves, reads and hands every value to a Handler
// until a step does not come back OutcomeOK (StateReading), then disconnects
// and stops for good (StateDisconnected). Nothing is retried.
package session

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/alepar/blesense/metrics"
	"github.com/alepar/blesense/sensor"
)

type State int

const (
	StateConnecting State = iota
	StateReading
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateReading:
		return "READING"
	case StateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// Outcome classifies one pass of the read loop.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeConnectionLost
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeConnectionLost:
		return "connection lost"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

type Step struct {
	Outcome Outcome
	Reading sensor.Reading
	Err     error
}

// Handler maps a reading and applies it to the actuator. It may block.
type Handler interface {
	Handle(r sensor.Reading) error
}

type HandlerFunc func(r sensor.Reading) error

func (f HandlerFunc) Handle(r sensor.Reading) error {
	return f(r)
}

type Session struct {
	Dialer             sensor.Dialer
	Address            string
	CharacteristicUUID string
	Handler            Handler
	Metrics            *metrics.Recorder

	// AnnounceEveryRead logs "Reading characteristic" before each read
	// instead of once after connecting.
	AnnounceEveryRead bool

	state State
}

func (s *Session) State() State {
	return s.state
}

// Run blocks until ctx is cancelled or a step fails. It returns nil when the
// session ended because of ctx, and the error that ended it otherwise. The
// connection is disconnected exactly once on either path.
func (s *Session) Run(ctx context.Context) error {
	s.setState(StateConnecting)
	log.Infof("Connecting to %s...", s.Address)
	conn, err := s.Dialer.Dial(ctx, s.Address)
	if err != nil {
		s.setState(StateDisconnected)
		if ctx.Err() != nil {
			log.Infof("Interrupted while connecting to %s", s.Address)
			return nil
		}
		log.Errorf("Failed to connect to %s: %s", s.Address, err)
		return errors.Wrapf(err, "failed to connect to %s", s.Address)
	}

	s.setState(StateReading)
	if !s.AnnounceEveryRead {
		log.Infof("Reading characteristic %s...", s.CharacteristicUUID)
	}

	var (
		step     Step
		last     sensor.Reading
		readings int
	)
	for {
		step = s.step(ctx, conn)
		if step.Outcome != OutcomeOK {
			break
		}
		last = step.Reading
		readings++
	}

	if step.Outcome == OutcomeInterrupted {
		log.Infof("Disconnecting...")
	} else {
		entry := log.WithField("readings", readings)
		if readings > 0 {
			entry = entry.WithField("last_value", last)
		}
		entry.Errorf("Failed to connect or read from %s: %s", s.Address, step.Err)
	}
	if err := conn.Disconnect(); err != nil {
		log.Warnf("disconnect from %s: %s", s.Address, err)
	}
	log.Infof("Disconnected")
	s.setState(StateDisconnected)

	if step.Outcome == OutcomeInterrupted {
		return nil
	}
	return step.Err
}

func (s *Session) step(ctx context.Context, conn sensor.Conn) Step {
	if ctx.Err() != nil {
		return Step{Outcome: OutcomeInterrupted}
	}

	if s.AnnounceEveryRead {
		log.Infof("Reading characteristic %s...", s.CharacteristicUUID)
	}
	reading, err := sensor.ReadValue(conn, s.CharacteristicUUID)
	if err != nil {
		s.Metrics.ObserveReadError()
		// a read torn down by the interrupt is not a failure
		if ctx.Err() != nil {
			return Step{Outcome: OutcomeInterrupted}
		}
		return Step{Outcome: OutcomeConnectionLost, Err: err}
	}
	s.Metrics.ObserveReading(uint64(reading))

	if err := s.Handler.Handle(reading); err != nil {
		return Step{Outcome: OutcomeConnectionLost, Err: errors.Wrapf(err, "failed to actuate value %d", reading)}
	}
	return Step{Outcome: OutcomeOK, Reading: reading}
}

func (s *Session) setState(state State) {
	log.Debugf("session %s: %s -> %s", s.Address, s.state, state)
	s.state = state
}
