// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/bme68x/bme680"
	"github.com/maruel/ansi256"
)

func TestTemperatureColor(t *testing.T) {
	tests := []struct {
		t        float64
		expected color.NRGBA
	}{
		{-10, color.NRGBA{B: 255, A: 255}},
		{0, color.NRGBA{B: 255, A: 255}},
		{20, color.NRGBA{G: 255, A: 255}},
		{40, color.NRGBA{R: 255, A: 255}},
		{85, color.NRGBA{R: 255, A: 255}},
	}
	for _, test := range tests {
		if got := temperatureColor(test.t); got != test.expected {
			t.Errorf("temperatureColor(%f) = %v, expected %v", test.t, got, test.expected)
		}
	}
}

func TestDisplayPrint(t *testing.T) {
	var b bytes.Buffer
	d := &display{w: &b}
	m := bme680.Measurement{Temperature: 25.42, Pressure: 97759.9, Humidity: 50.73, GasResistance: 232764, HasGas: true}
	if err := d.print(&m); err != nil {
		t.Fatal(err)
	}
	expected := " 25.42°C  97759.90Pa  50.73%RH     232764Ω (heater unstable)\n"
	if s := b.String(); s != expected {
		t.Fatalf("got %q, expected %q", s, expected)
	}
	if strings.Contains(b.String(), "\033[") {
		t.Fatal("unexpected escape sequence")
	}
}

func TestDisplayPrintColor(t *testing.T) {
	var b bytes.Buffer
	d := &display{w: &b, color: true, palette: ansi256.Default}
	m := bme680.Measurement{Temperature: 20, Pressure: 100000, Humidity: 40, HeaterStable: true, HasGas: true, GasResistance: 1000}
	if err := d.print(&m); err != nil {
		t.Fatal(err)
	}
	s := b.String()
	block := ansi256.Default.Block(temperatureColor(20))
	if !strings.HasPrefix(s, block+"\033[0m ") {
		t.Fatalf("missing colour block in %q", s)
	}
	if !strings.HasSuffix(s, "       1000Ω\n") {
		t.Fatalf("unexpected line %q", s)
	}
}

func TestMetricsNil(t *testing.T) {
	var m *metrics
	m.observe(&bme680.Measurement{})
	m.failed()
}
