package gattble

import (
	"context"
	"strings"

	"github.com/go-ble/ble"
	"github.com/pkg/errors"

	"github.com/alepar/blesense/sensor"
)

// BleDialer connects through the default ble.Device, see OpenDefaultDevice.
type BleDialer struct{}

func (BleDialer) Dial(ctx context.Context, addr string) (sensor.Conn, error) {
	cln, err := ble.Dial(ctx, ble.NewAddr(NormalizeAddress(addr)))
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't connect to %s", addr)
	}
	return newBleConn(addr, cln), nil
}

// NormalizeAddress returns addr in the lower case form go-ble compares against.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// ParseUUID accepts 16-bit ("2A6E") and 128-bit UUIDs, dashes optional.
func ParseUUID(s string) (ble.UUID, error) {
	u, err := ble.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse characteristic uuid %q", s)
	}
	return u, nil
}
