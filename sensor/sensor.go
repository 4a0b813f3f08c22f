package sensor

import "context"

// Fixed peripheral the demo hardware ships with.
const (
	DefaultAddress            = "D3:72:9F:4C:11:67"
	DefaultCharacteristicUUID = "2A6E"
)

type Dialer interface {

	// connects to the peripheral at addr, blocking until the link is up or ctx is done
	Dial(ctx context.Context, addr string) (Conn, error)
}

// Conn is a single live link to a peripheral. It is owned by one read loop
// and must be disconnected exactly once.
type Conn interface {
	Address() string

	// returns every characteristic on the peripheral matching uuid, possibly none
	Characteristics(uuid string) ([]Characteristic, error)

	Disconnect() error
}

type Characteristic interface {
	UUID() string

	// blocking read of the current value, no timeout
	Read() ([]byte, error)
}
