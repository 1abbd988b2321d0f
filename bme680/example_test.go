// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/bme68x/bme680"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	d, err := bme680.NewI2C(b, bme680.AddressPrimary, nil) // nil for &bme680.DefaultOpts
	if err != nil {
		log.Fatalf("failed to initialize %v", err)
	}
	defer d.Halt()

	m, err := d.Measure(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %.2f°C %.0fPa %.2f%%RH\n", d.Variant(), m.Temperature, m.Pressure, m.Humidity)
	if m.HasGas {
		fmt.Printf("gas resistance: %.0fΩ\n", m.GasResistance)
	}
}

func ExampleDev_SetConfiguration() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := bme680.NewI2C(b, bme680.AddressSecondary, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	// Heavier oversampling and a hotter, longer heater cycle. Zero fields
	// keep the current setting. The longer conversion leaves room for up to
	// 131ms of heating.
	c := bme680.Configuration{
		Temperature: bme680.O8x,
		Humidity:    bme680.O4x,
		Gas:         &bme680.GasProfile{HeaterTemperature: 380, HeaterDuration: 120 * time.Millisecond},
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.SetConfiguration(ctx, &c); err != nil {
		log.Fatal(err)
	}
	m, err := d.Measure(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.0fΩ (heater stable: %t)\n", m.GasResistance, m.HeaterStable)
}

func ExampleDev_SenseContinuous() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := bme680.NewI2C(b, bme680.AddressPrimary, nil)
	if err != nil {
		log.Fatal(err)
	}
	ch, err := d.SenseContinuous(time.Second)
	if err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		e := <-ch
		fmt.Printf("%8s %10s %9s\n", e.Temperature, e.Pressure, e.Humidity)
	}
	if err := d.Halt(); err != nil {
		log.Fatal(err)
	}
}
