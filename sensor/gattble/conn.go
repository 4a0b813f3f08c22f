package gattble

import (
	"github.com/go-ble/ble"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/alepar/blesense/sensor"
)

type BleConn struct {
	Addr string

	cln  ble.Client
	done chan struct{}
}

func newBleConn(addr string, cln ble.Client) *BleConn {
	conn := &BleConn{
		Addr: addr,
		cln:  cln,
		done: make(chan struct{}),
	}

	// Normally, the connection is disconnected by us on exit.
	// However, it can be asynchronously disconnected by the remote peripheral.
	// So we wait(detect) the disconnection in the go routine.
	go func() {
		<-cln.Disconnected()
		log.Debugf("device %s disconnected", addr)
		close(conn.done)
	}()

	return conn
}

func (conn *BleConn) Address() string {
	return conn.Addr
}

// Characteristics runs a fresh service and characteristic discovery and
// returns all characteristics matching uuid across every service.
func (conn *BleConn) Characteristics(uuid string) ([]sensor.Characteristic, error) {
	charUuid, err := ParseUUID(uuid)
	if err != nil {
		return nil, err
	}

	log.Debugf("discovering services")
	services, err := conn.cln.DiscoverServices(nil)
	log.Debugf("finished discovering services")
	if err != nil {
		return nil, errors.Wrap(err, "couldn't discover services")
	}

	var found []sensor.Characteristic
	for _, service := range services {
		log.Debugf("discovering characteristics of service %s", service.UUID)
		characteristics, err := conn.cln.DiscoverCharacteristics([]ble.UUID{charUuid}, service)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't discover characteristics of service %s", service.UUID)
		}
		for _, c := range characteristics {
			found = append(found, &bleCharacteristic{cln: conn.cln, c: c})
		}
	}
	log.Debugf("finished discovering characteristics, %d match %s", len(found), uuid)

	return found, nil
}

func (conn *BleConn) Disconnect() error {
	log.Debugf("closing connection")
	err := conn.cln.CancelConnection()
	if err != nil {
		return errors.Wrapf(err, "failed to cancel connection to %s", conn.Addr)
	}
	<-conn.done
	return nil
}

type bleCharacteristic struct {
	cln ble.Client
	c   *ble.Characteristic
}

func (bc *bleCharacteristic) UUID() string {
	return bc.c.UUID.String()
}

func (bc *bleCharacteristic) Read() ([]byte, error) {
	log.Debugf("reading characteristic")
	value, err := bc.cln.ReadCharacteristic(bc.c)
	log.Debugf("finished reading characteristic")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read characteristic value")
	}
	return value, nil
}
