// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

import (
	"fmt"
	"time"
)

// Address is the 7 bit I²C address selected by the SDO pin.
type Address uint16

const (
	// AddressPrimary is used when SDO is tied to GND.
	AddressPrimary Address = 0x76
	// AddressSecondary is used when SDO is tied to VDDIO.
	AddressSecondary Address = 0x77
)

// Oversampling affects how much time is taken to measure a channel. Higher
// values reduce noise.
//
// The zero value Keep leaves the setting currently held by the device.
type Oversampling uint8

const (
	Keep Oversampling = iota
	Off
	O1x
	O2x
	O4x
	O8x
	O16x
)

var oversamplingCycles = [...]uint32{0, 1, 2, 4, 8, 16}

func (o Oversampling) String() string {
	switch o {
	case Keep:
		return "Keep"
	case Off:
		return "Off"
	case O1x:
		return "1x"
	case O2x:
		return "2x"
	case O4x:
		return "4x"
	case O8x:
		return "8x"
	case O16x:
		return "16x"
	default:
		return fmt.Sprintf("Oversampling(%d)", uint8(o))
	}
}

func (o Oversampling) bits() byte {
	if o == Keep || o > O16x {
		return 0
	}
	return byte(o - 1)
}

// cycles returns the number of conversion cycles the device runs for one
// channel.
func (o Oversampling) cycles() uint32 {
	return oversamplingCycles[o.bits()]
}

// oversamplingFromBits decodes a 3 bit osrs field. Codes above 16x also
// select 16x.
func oversamplingFromBits(b byte) Oversampling {
	b &= 0x07
	if b > 5 {
		b = 5
	}
	return Oversampling(b) + 1
}

// Filter is the IIR filter coefficient applied to temperature and pressure.
//
// The zero value FilterKeep leaves the setting currently held by the device.
type Filter uint8

const (
	FilterKeep Filter = iota
	NoFilter
	F1
	F3
	F7
	F15
	F31
	F63
	F127
)

func (f Filter) bits() byte {
	if f == FilterKeep || f > F127 {
		return 0
	}
	return byte(f - 1)
}

// GasProfile is the heater set-point used for the gas measurement.
type GasProfile struct {
	// HeaterTemperature is the target temperature in °C. Values above 400°C
	// are capped.
	HeaterTemperature int
	// HeaterDuration is how long the heater is held at the target before the
	// gas resistance is sampled. Resolution is 1ms, maximum is 4032ms.
	//
	// Measure polls for the result five times, the expected conversion time
	// apart, so the duration must not exceed four conversion times. That is
	// 68ms with 2x oversampling on every channel.
	HeaterDuration time.Duration
}

// Configuration is a partial device configuration. Zero fields are left as
// the device currently holds them.
type Configuration struct {
	Temperature Oversampling
	Pressure    Oversampling
	Humidity    Oversampling
	Filter      Filter
	// Gas enables the gas measurement with the given heater profile. nil
	// keeps the current gas settings.
	Gas *GasProfile
}

// gasWait encodes the heater duration into gas_wait_x: 6 bits of value and a
// 2 bit multiplier of 1, 4, 16 or 64.
func (g *GasProfile) gasWait() byte {
	dur := uint32(g.HeaterDuration / time.Millisecond)
	if dur >= 0xFC0 {
		return 0xFF
	}
	var factor uint32
	for dur > 0x3F {
		dur /= 4
		factor++
	}
	return byte(dur + factor*64)
}

// resHeat returns the res_heat_x code for the target temperature given the
// ambient temperature in °C.
func (g *GasProfile) resHeat(c *Calibration, ambient int) byte {
	target := g.HeaterTemperature
	if target > 400 {
		target = 400
	}
	v1 := float64(c.GH1)/16.0 + 49.0
	v2 := (float64(c.GH2)/32768.0)*0.0005 + 0.00235
	v3 := float64(c.GH3) / 1024.0
	v4 := v1 * (1.0 + v2*float64(target))
	v5 := v4 + v3*float64(ambient)
	code := 3.4 * ((v5 * (4.0 / (4.0 + float64(c.ResHeatRange))) * (1.0 / (1.0 + float64(c.ResHeatVal)*0.002))) - 25)
	return byte(int32(code))
}

// Variant is the gas sensing variant reported by the variant_id register.
//
// Both variants are read through the same 15 byte result block. The BME688
// reports its gas_r at 0x2C..0x2D, past the end of that block, so its gas
// resistance is decoded from the BME680 location.
type Variant uint8

const (
	// VariantGasLow is the BME680.
	VariantGasLow Variant = 0x00
	// VariantGasHigh is the BME688.
	VariantGasHigh Variant = 0x01
)

// variantFromID maps the variant_id register. Only 0x01 denotes the BME688,
// everything else is treated as a BME680.
func variantFromID(id byte) Variant {
	if id == byte(VariantGasHigh) {
		return VariantGasHigh
	}
	return VariantGasLow
}

func (v Variant) String() string {
	if v == VariantGasHigh {
		return "BME688"
	}
	return "BME680"
}

// readConfig reads the configuration image.
//
// It must be called with d.mu lock held.
func (d *Dev) readConfig() (rawConfig, error) {
	var r rawConfig
	if err := d.t.readRegs(regCtrlGas1, r[:]); err != nil {
		return r, err
	}
	return r, nil
}

// applyConfig reads the configuration image, merges c into it and writes all
// of it back, followed by the heater set-point when c has a gas profile.
//
// The device must be sleeping. It must be called with d.mu lock held.
func (d *Dev) applyConfig(c *Configuration) (rawConfig, error) {
	r, err := d.readConfig()
	if err != nil {
		return r, err
	}
	r.apply(c, d.variant)
	heater := d.heater
	if c.Gas != nil {
		heater = c.Gas.HeaterDuration
	}
	if limit := maxHeaterDuration(&r); r.runGas() && heater > limit {
		return r, fmt.Errorf("%w: %s is longer than %s", ErrHeaterDuration, heater, limit)
	}
	d.t.debug("config image %x", r[:])
	if err := d.t.writeRegs(configRegs[:], r[:]); err != nil {
		return r, err
	}
	if c.Gas != nil {
		gasWait := c.Gas.gasWait()
		resHeat := c.Gas.resHeat(&d.cal, d.ambient)
		d.t.debug("gas_wait_0 %d res_heat_0 %d", gasWait, resHeat)
		if err := d.t.writeReg(regGasWait0, gasWait); err != nil {
			return r, err
		}
		if err := d.t.writeReg(regResHeat0, resHeat); err != nil {
			return r, err
		}
		d.heater = c.Gas.HeaterDuration
	}
	return r, nil
}

// measurementDelay returns the time for a forced TPH+G cycle with the given
// oversampling.
func measurementDelay(r *rawConfig) time.Duration {
	cycles := r.temperatureOversampling().cycles()
	cycles += r.humidityOversampling().cycles()
	cycles += r.pressureOversampling().cycles()

	us := cycles * cycleDuration
	us += tphSwitchingDuration
	us += gasMeasDuration
	us += wakeupDuration
	return time.Duration(us) * time.Microsecond
}

// maxHeaterDuration is the longest heater duration whose gas conversion
// completes before the last poll of the result block.
func maxHeaterDuration(r *rawConfig) time.Duration {
	return (maxPolls - 1) * measurementDelay(r)
}
