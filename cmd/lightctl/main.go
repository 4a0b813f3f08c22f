//go:build linux
// +build linux

// lightctl dims a PWM LED according to the illuminance a BLE light sensor reports.
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
	"github.com/alepar/blesense/actuator/pwmled"
	"github.com/alepar/blesense/control"
	"github.com/alepar/blesense/metrics"
	"github.com/alepar/blesense/sensor"
	"github.com/alepar/blesense/sensor/gattble"
	"github.com/alepar/blesense/session"
)

const appName = "lightctl"

// CLI args, every default is the fixed demo setup
var (
	address     = flag.String("address", sensor.DefaultAddress, "BLE address of the light sensor")
	charUuid    = flag.String("char-uuid", sensor.DefaultCharacteristicUUID, "UUID of the illuminance characteristic")
	pin         = flag.Int("pin", actuator.DefaultPin, "BCM pin of the LED")
	maxLux      = flag.Int("max-lux", control.LightMaxLux, "illuminance mapped to the dimmest LED setting")
	listenAddr  = flag.String("listen-address", "", "address to expose /metrics on, empty disables it")
	logLevel    = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	showVersion = flag.Bool("version", false, "print version and exit")
	pwmFreq     = pwmled.DefaultFrequency
)

func init() {
	flag.Var(&pwmFreq, "pwm-freq", "PWM frequency of the LED")

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
	if *maxLux <= 0 {
		return errors.Errorf("-max-lux must be positive, got %d", *maxLux)
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

	out, err := pwmled.Open(*pin, pwmFreq)
	if err != nil {
		return err
	}
	led := actuator.NewLED(out)
	defer func() {
		if err := led.Close(); err != nil {
			log.Warnf("failed to release led: %s", err)
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
		AnnounceEveryRead:  true,
		Metrics:            recorder,
		Handler: &control.Light{
			LED:     led,
			MaxLux:  *maxLux,
			Metrics: recorder,
		},
	}
	return s.Run(ctx)
}
