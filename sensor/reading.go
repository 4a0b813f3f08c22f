package sensor

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var ErrCharacteristicNotFound = errors.New("characteristic not found")

// Reading is the unsigned integer carried by one characteristic read.
type Reading uint64

// Int saturates at math.MaxInt so the mappers can work on plain ints.
func (r Reading) Int() int {
	if uint64(r) > math.MaxInt {
		return math.MaxInt
	}
	return int(r)
}

// DecodeReading interprets value as a big-endian unsigned integer of any
// length. An empty value decodes to 0 and values above 64 bits saturate at
// math.MaxUint64.
func DecodeReading(value []byte) Reading {
	for len(value) > 0 && value[0] == 0 {
		value = value[1:]
	}
	if len(value) > 8 {
		return math.MaxUint64
	}
	var buf [8]byte
	copy(buf[8-len(value):], value)
	return Reading(binary.BigEndian.Uint64(buf[:]))
}

// ReadValue resolves the characteristic by uuid, reads it once and decodes
// the value. The characteristic is looked up again on every call.
func ReadValue(conn Conn, uuid string) (Reading, error) {
	chars, err := conn.Characteristics(uuid)
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't resolve characteristic %s", uuid)
	}
	if len(chars) == 0 {
		return 0, errors.Wrapf(ErrCharacteristicNotFound, "uuid %s on %s", uuid, conn.Address())
	}

	c := chars[0]
	value, err := c.Read()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read characteristic %s on %s", c.UUID(), conn.Address())
	}
	return DecodeReading(value), nil
}
