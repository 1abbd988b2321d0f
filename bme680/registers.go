// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

import "time"

// Register map. Only the I²C view of the memory is used, so there is no SPI
// page handling.
const (
	regCoeff3     byte = 0x00 // res_heat_val .. range_sw_err, 5 bytes
	regFieldData  byte = 0x1D // meas_status_0 .. gas_r_lsb, 15 bytes
	regResHeat0   byte = 0x5A
	regGasWait0   byte = 0x64
	regCtrlGas1   byte = 0x71 // first register of the configuration image
	regCtrlHum    byte = 0x72
	regSPIMemPage byte = 0x73
	regCtrlMeas   byte = 0x74
	regConfig     byte = 0x75
	regCoeff1     byte = 0x8A // 23 bytes
	regChipID     byte = 0xD0
	regCoeff2     byte = 0xE1 // 14 bytes
	regSoftReset  byte = 0xE0
	regVariantID  byte = 0xF0

	chipID       byte = 0x61
	cmdSoftReset byte = 0xB6

	lenCoeff1    = 23
	lenCoeff2    = 14
	lenCoeff3    = 5
	lenCoeffAll  = lenCoeff1 + lenCoeff2 + lenCoeff3
	lenConfig    = 5
	lenFieldData = 15
)

// configRegs lists the addresses of the configuration image in the order
// they are flushed back to the device.
var configRegs = [lenConfig]byte{regCtrlGas1, regCtrlHum, regSPIMemPage, regCtrlMeas, regConfig}

// Timing, in microseconds unless noted otherwise.
const (
	cycleDuration        = 1963
	tphSwitchingDuration = 477 * 4
	gasMeasDuration      = 477 * 5
	wakeupDuration       = 1000

	// pollPeriod is the settle delay after a soft reset and between
	// observations of the control register while draining to sleep.
	pollPeriod = 10 * time.Millisecond

	maxPolls      = 5
	maxSleepPolls = 10
)

// Mode is the power mode held in the two low bits of ctrl_meas.
type Mode uint8

const (
	// Sleep is the idle mode; configuration registers are only written in
	// this mode.
	Sleep Mode = 0
	// Forced runs one measurement cycle and falls back to Sleep.
	Forced Mode = 1
)

func (m Mode) String() string {
	switch m {
	case Sleep:
		return "Sleep"
	case Forced:
		return "Forced"
	default:
		return "Mode(invalid)"
	}
}

// ctrlMeas is the ctrl_meas register: osrs_t in bits 7:5, osrs_p in bits 4:2
// and the mode in bits 1:0.
type ctrlMeas byte

const modeMask = 0x03

// mode reports Forced for any non-sleep value; the BME68x only defines
// sleep and forced in bits 1:0 for the features used here.
func (c ctrlMeas) mode() Mode {
	if c&modeMask == 0 {
		return Sleep
	}
	return Forced
}

func (c ctrlMeas) withMode(m Mode) ctrlMeas {
	return c&^modeMask | ctrlMeas(m)
}

func (c ctrlMeas) temperatureOversampling() Oversampling {
	return oversamplingFromBits(byte(c) >> 5)
}

func (c ctrlMeas) pressureOversampling() Oversampling {
	return oversamplingFromBits(byte(c) >> 2)
}

// rawConfig mirrors registers 0x71..0x75.
type rawConfig [lenConfig]byte

const (
	runGasMask  = 0x30
	runGasPos   = 4
	nbConvMask  = 0x0F
	osrsHMask   = 0x07
	osrsTMask   = 0xE0
	osrsTPos    = 5
	osrsPMask   = 0x1C
	osrsPPos    = 2
	filterMask  = 0x1C
	filterPos   = 2
	runGasLow   = 0x01
	runGasHigh  = 0x02
	idxCtrlGas1 = 0
	idxCtrlHum  = 1
	idxCtrlMeas = 3
	idxConfig   = 4
)

func (r *rawConfig) ctrlMeas() ctrlMeas {
	return ctrlMeas(r[idxCtrlMeas])
}

func (r *rawConfig) temperatureOversampling() Oversampling {
	return r.ctrlMeas().temperatureOversampling()
}

func (r *rawConfig) pressureOversampling() Oversampling {
	return r.ctrlMeas().pressureOversampling()
}

func (r *rawConfig) humidityOversampling() Oversampling {
	return oversamplingFromBits(r[idxCtrlHum])
}

func (r *rawConfig) runGas() bool {
	return r[idxCtrlGas1]&runGasMask != 0
}

func (r *rawConfig) filter() Filter {
	return Filter((r[idxConfig]&filterMask)>>filterPos) + 1
}

func setBits(reg *byte, mask, pos, value byte) {
	*reg = *reg&^mask | (value<<pos)&mask
}

// apply merges the non-zero fields of c into the image. v selects the
// run_gas encoding when a gas profile is present.
func (r *rawConfig) apply(c *Configuration, v Variant) {
	if c.Temperature != Keep {
		setBits(&r[idxCtrlMeas], osrsTMask, osrsTPos, c.Temperature.bits())
	}
	if c.Pressure != Keep {
		setBits(&r[idxCtrlMeas], osrsPMask, osrsPPos, c.Pressure.bits())
	}
	if c.Humidity != Keep {
		setBits(&r[idxCtrlHum], osrsHMask, 0, c.Humidity.bits())
	}
	if c.Filter != FilterKeep {
		setBits(&r[idxConfig], filterMask, filterPos, c.Filter.bits())
	}
	if c.Gas != nil {
		runGas := byte(runGasLow)
		if v == VariantGasHigh {
			runGas = runGasHigh
		}
		setBits(&r[idxCtrlGas1], runGasMask, runGasPos, runGas)
		// Heater set-point 0 is the only one programmed.
		setBits(&r[idxCtrlGas1], nbConvMask, 0, 0)
	}
}

// fieldData is the 15 byte result block starting at meas_status_0.
type fieldData [lenFieldData]byte

const (
	bitNewData      = 1 << 7
	bitGasMeasuring = 1 << 6
	bitMeasuring    = 1 << 5
	bitGasValid     = 1 << 5
	bitHeatStab     = 1 << 4
	gasRangeMask    = 0x0F
)

func (f *fieldData) newData() bool      { return f[0]&bitNewData != 0 }
func (f *fieldData) gasMeasuring() bool { return f[0]&bitGasMeasuring != 0 }
func (f *fieldData) measuring() bool    { return f[0]&bitMeasuring != 0 }
func (f *fieldData) gasValid() bool     { return f[14]&bitGasValid != 0 }
func (f *fieldData) heaterStable() bool { return f[14]&bitHeatStab != 0 }
func (f *fieldData) gasRange() uint8    { return f[14] & gasRangeMask }

// These values are 20 bits as per doc.
func (f *fieldData) pressureADC() uint32 {
	return uint32(f[2])<<12 | uint32(f[3])<<4 | uint32(f[4])>>4
}

func (f *fieldData) temperatureADC() uint32 {
	return uint32(f[5])<<12 | uint32(f[6])<<4 | uint32(f[7])>>4
}

func (f *fieldData) humidityADC() uint16 {
	return uint16(f[8])<<8 | uint16(f[9])
}

// gasADC is 10 bits.
func (f *fieldData) gasADC() uint16 {
	return uint16(f[13])<<2 | uint16(f[14])>>6
}
