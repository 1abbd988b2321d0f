// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/GermanBionicSystems/bme68x/bme680"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// display prints one line per measurement, prefixed with a block coloured
// after the temperature when stdout is a terminal.
type display struct {
	w       io.Writer
	color   bool
	palette *ansi256.Palette
	buf     bytes.Buffer
}

func newDisplay(noColor bool) *display {
	fd := os.Stdout.Fd()
	return &display{
		w:       colorable.NewColorableStdout(),
		color:   !noColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
		palette: ansi256.Default,
	}
}

func (d *display) print(m *bme680.Measurement) error {
	d.buf.Reset()
	if d.color {
		d.buf.WriteString(d.palette.Block(temperatureColor(m.Temperature)))
		d.buf.WriteString("\033[0m ")
	}
	fmt.Fprintf(&d.buf, "%6.2f°C %9.2fPa %6.2f%%RH", m.Temperature, m.Pressure, m.Humidity)
	if m.HasGas {
		fmt.Fprintf(&d.buf, " %10.0fΩ", m.GasResistance)
		if !m.HeaterStable {
			d.buf.WriteString(" (heater unstable)")
		}
	}
	d.buf.WriteByte('\n')
	_, err := d.buf.WriteTo(d.w)
	return err
}

// temperatureColor maps 0°C..40°C from blue to red through green.
func temperatureColor(t float64) color.NRGBA {
	x := t / 40
	if x < 0 {
		x = 0
	} else if x > 1 {
		x = 1
	}
	if x < 0.5 {
		return color.NRGBA{G: byte(510 * x), B: byte(255 - 510*x), A: 255}
	}
	return color.NRGBA{R: byte(510 * (x - 0.5)), G: byte(255 - 510*(x-0.5)), A: 255}
}
