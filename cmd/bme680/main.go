// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bme680 reads a BME680 or BME688 sensor and prints the measurements.
//
// With -listen the measurements are also exported for Prometheus on
// /metrics.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/bme68x/bme680"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	bus := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", uint(bme680.AddressPrimary), "I²C address of the device, 0x76 or 0x77")
	interval := flag.Duration("interval", 0, "measure continuously at this interval; 0 measures once")
	n := flag.Int("n", 0, "stop after this many measurements when -interval is set; 0 runs until interrupted")
	heaterTemp := flag.Int("heater-temp", 320, "gas heater target temperature in °C; 0 disables the gas measurement")
	heaterDuration := flag.Duration("heater-duration", 50*time.Millisecond, "gas heater duration; at most 4x the conversion time, 68ms at the default oversampling")
	listen := flag.String("listen", "", "serve Prometheus metrics on this address, e.g. :9680")
	noColor := flag.Bool("no-color", false, "disable the colour swatch")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	a := bme680.Address(*addr)
	if a != bme680.AddressPrimary && a != bme680.AddressSecondary {
		return fmt.Errorf("invalid address %#x", *addr)
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(*bus)
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := bme680.DefaultOpts
	if *verbose {
		opts.Debug = log.Printf
	}
	opts.Config.Gas = nil
	if *heaterTemp > 0 {
		opts.Config.Gas = &bme680.GasProfile{HeaterTemperature: *heaterTemp, HeaterDuration: *heaterDuration}
	}
	d, err := bme680.NewI2CContext(ctx, b, a, &opts)
	if err != nil {
		return err
	}
	defer d.Halt()
	log.Printf("%s: %s", d, d.Variant())

	var m *metrics
	if *listen != "" {
		m = newMetrics(d.Variant())
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("serving metrics on %s", *listen)
			if err := http.ListenAndServe(*listen, nil); err != nil {
				fmt.Fprintf(os.Stderr, "bme680: metrics: %v\n", err)
				stop()
			}
		}()
	}
	out := newDisplay(*noColor)

	if *interval == 0 {
		r, err := d.Measure(ctx)
		if err != nil {
			return err
		}
		m.observe(&r)
		return out.print(&r)
	}

	t := time.NewTicker(*interval)
	defer t.Stop()
	for i := 0; *n == 0 || i < *n; i++ {
		r, err := d.Measure(ctx)
		switch {
		case err == nil:
			m.observe(&r)
			if err := out.print(&r); err != nil {
				return err
			}
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, bme680.ErrMeasurementTimeout):
			// Transient; try again on the next tick.
			m.failed()
			log.Printf("measurement %d: %v", i, err)
		default:
			m.failed()
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "bme680: %s.\n", err)
		os.Exit(1)
	}
}
