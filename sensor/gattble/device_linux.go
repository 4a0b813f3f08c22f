//go:build linux
// +build linux

package gattble

import (
	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/pkg/errors"
)

// OpenDefaultDevice opens the local HCI adapter and makes it the ble default.
func OpenDefaultDevice() error {
	d, err := linux.NewDevice()
	if err != nil {
		return errors.Wrap(err, "failed to open ble")
	}
	ble.SetDefaultDevice(d)
	return nil
}

func CloseDefaultDevice() error {
	return ble.Stop()
}
