// Package sensortest provides in-memory peripherals for exercising read loops
// without a BLE adapter.
package sensortest

import (
	"context"
	"strings"

	"github.com/alepar/blesense/sensor"
)

// ReadFunc produces the value of the n-th read (1-based) on a Conn.
type ReadFunc func(n int) ([]byte, error)

// Values returns the given values in order and keeps repeating the last one.
func Values(values ...[]byte) ReadFunc {
	return func(n int) ([]byte, error) {
		if len(values) == 0 {
			return nil, nil
		}
		if n > len(values) {
			n = len(values)
		}
		return values[n-1], nil
	}
}

// FailAfter returns value for the first ok reads, then err forever.
func FailAfter(ok int, value []byte, err error) ReadFunc {
	return func(n int) ([]byte, error) {
		if n > ok {
			return nil, err
		}
		return value, nil
	}
}

// Conn is a fake peripheral link exposing at most one characteristic.
type Conn struct {
	Addr          string
	UUID          string
	ReadFunc      ReadFunc
	ResolveErr    error
	DisconnectErr error

	Resolves    int
	Reads       int
	Disconnects int
}

func (c *Conn) Address() string {
	return c.Addr
}

func (c *Conn) Characteristics(uuid string) ([]sensor.Characteristic, error) {
	c.Resolves++
	if c.ResolveErr != nil {
		return nil, c.ResolveErr
	}
	if c.UUID == "" || !strings.EqualFold(uuid, c.UUID) {
		return nil, nil
	}
	return []sensor.Characteristic{&characteristic{conn: c}}, nil
}

func (c *Conn) Disconnect() error {
	c.Disconnects++
	return c.DisconnectErr
}

type characteristic struct {
	conn *Conn
}

func (ch *characteristic) UUID() string {
	return ch.conn.UUID
}

func (ch *characteristic) Read() ([]byte, error) {
	ch.conn.Reads++
	if ch.conn.ReadFunc == nil {
		return nil, nil
	}
	return ch.conn.ReadFunc(ch.conn.Reads)
}

// Dialer hands out Conn on every Dial, or fails with Err.
type Dialer struct {
	Conn *Conn
	Err  error

	Dialed []string
}

func (d *Dialer) Dial(ctx context.Context, addr string) (sensor.Conn, error) {
	d.Dialed = append(d.Dialed, addr)
	if d.Err != nil {
		return nil, d.Err
	}
	if d.Conn.Addr == "" {
		d.Conn.Addr = addr
	}
	return d.Conn, nil
}
