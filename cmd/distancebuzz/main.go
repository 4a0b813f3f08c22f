//go:build linux
// +build linux

// distancebuzz beeps a buzzer while a BLE distance sensor reports a close obstacle.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/version"
	log "github.com/sirupsen/logrus"

	"github.com/alepar/blesense/actuator"
	"github.com/alepar/blesense/actuator/gpioline"
	"github.com/alepar/blesense/control"
	"github.com/alepar/blesense/mapping"
	"github.com/alepar/blesense/metrics"
	"github.com/alepar/blesense/sensor"
	"github.com/alepar/blesense/sensor/gattble"
	"github.com/alepar/blesense/session"
)

const appName = "distancebuzz"

// CLI args, every default is the fixed demo setup
var (
	address     = flag.String("address", sensor.DefaultAddress, "BLE address of the distance sensor")
	charUuid    = flag.String("char-uuid", sensor.DefaultCharacteristicUUID, "UUID of the distance characteristic")
	gpioChip    = flag.String("gpio-chip", gpioline.DefaultChip, "GPIO character device of the buzzer line")
	pin         = flag.Int("pin", actuator.DefaultPin, "line offset of the buzzer")
	maxDistance = flag.Int("max-distance", mapping.DefaultMaxDistance, "beep while the distance in cm is below this")
	listenAddr  = flag.String("listen-address", "", "address to expose /metrics on, empty disables it")
	logLevel    = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func init() {
	prometheus.MustRegister(version.NewCollector(appName))

	//logging
	formatter := &log.TextFormatter{
		FullTimestamp: true,
	}
	log.SetFormatter(formatter)
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Print(appName))
		return
	}

	if err := run(); err != nil {
		log.Errorf("%s: %s", appName, err)
		os.Exit(1)
	}
}

func run() error {
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return errors.Wrap(err, "invalid -log-level")
	}
	log.SetLevel(level)
	if *maxDistance < 0 {
		return errors.Errorf("-max-distance must not be negative, got %d", *maxDistance)
	}
	if _, err := gattble.ParseUUID(*charUuid); err != nil {
		return err
	}
	log.Infof("starting %s %s", appName, version.Info())

	recorder := metrics.NewRecorder(appName, prometheus.DefaultRegisterer)
	if *listenAddr != "" {
		go func() {
			log.Panic(metrics.Serve(*listenAddr, prometheus.DefaultGatherer))
		}()
	}

	line, err := gpioline.Open(*gpioChip, *pin, appName)
	if err != nil {
		return err
	}
	buzzer := actuator.NewBuzzer(line)
	defer func() {
		if err := buzzer.Close(); err != nil {
			log.Warnf("failed to release buzzer: %s", err)
		}
	}()

	if err := gattble.OpenDefaultDevice(); err != nil {
		return err
	}
	defer gattble.CloseDefaultDevice()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// a second interrupt kills a read that never returns
	context.AfterFunc(ctx, stop)

	s := &session.Session{
		Dialer:             gattble.BleDialer{},
		Address:            *address,
		CharacteristicUUID: *charUuid,
		Metrics:            recorder,
		Handler: &control.Proximity{
			Buzzer:      buzzer,
			MaxDistance: *maxDistance,
			Metrics:     recorder,
		},
	}
	return s.Run(ctx)
}
