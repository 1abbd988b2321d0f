// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

// The compensation functions below have been ported from the floating point
// and the integer paths of
// https://github.com/boschsensortec/BME68x_SensorAPI/blob/master/bme68x.c
// The order of operations follows the reference so results match its output.

// compensateTemperature returns the temperature in °C and t_fine, which the
// pressure and humidity compensation of the same cycle depend on.
//
// adc has 20 bits of resolution.
func compensateTemperature(adc uint32, c *Calibration) (float64, float64) {
	var1 := ((float64(adc) / 16384.0) - (float64(c.T1) / 1024.0)) * float64(c.T2)
	var2 := ((float64(adc) / 131072.0) - (float64(c.T1) / 8192.0)) *
		((float64(adc) / 131072.0) - (float64(c.T1) / 8192.0)) *
		(float64(c.T3) * 16.0)
	tFine := var1 + var2
	return tFine / 5120.0, tFine
}

// compensatePressure returns the pressure in Pa.
//
// adc has 20 bits of resolution.
func compensatePressure(adc uint32, c *Calibration, tFine float64) float64 {
	var1 := (tFine / 2.0) - 64000.0
	var2 := var1 * var1 * (float64(c.P6) / 131072.0)
	var2 = var2 + (var1 * float64(c.P5) * 2.0)
	var2 = (var2 / 4.0) + (float64(c.P4) * 65536.0)
	var1 = (((float64(c.P3) * var1 * var1) / 16384.0) + (float64(c.P2) * var1)) / 524288.0
	var1 = (1.0 + (var1 / 32768.0)) * float64(c.P1)
	calcPres := 1048576.0 - float64(adc)

	// Avoid a division by zero.
	if int32(var1) == 0 {
		return 0
	}
	calcPres = ((calcPres - (var2 / 4096.0)) * 6250.0) / var1
	var1 = (float64(c.P9) * calcPres * calcPres) / 2147483648.0
	var2 = calcPres * (float64(c.P8) / 32768.0)
	var3 := (calcPres / 256.0) * (calcPres / 256.0) * (calcPres / 256.0) * (float64(c.P10) / 131072.0)
	return calcPres + (var1+var2+var3+(float64(c.P7)*128.0))/16.0
}

// compensateHumidity returns the relative humidity in %, capped to [0, 100].
//
// adc has 16 bits of resolution.
func compensateHumidity(adc uint16, c *Calibration, tFine float64) float64 {
	tempComp := tFine / 5120.0
	var1 := float64(adc) - ((float64(c.H1) * 16.0) + ((float64(c.H3) / 2.0) * tempComp))
	var2 := var1 * ((float64(c.H2) / 262144.0) *
		(1.0 + ((float64(c.H4) / 16384.0) * tempComp) + ((float64(c.H5) / 1048576.0) * tempComp * tempComp)))
	var3 := float64(c.H6) / 16384.0
	var4 := float64(c.H7) / 2097152.0
	calcHum := var2 + ((var3 + (var4 * tempComp)) * var2 * var2)
	if calcHum > 100.0 {
		calcHum = 100.0
	} else if calcHum < 0.0 {
		calcHum = 0.0
	}
	return calcHum
}

// Gas range lookup tables of the BME680.
var (
	gasLookup1 = [16]int64{
		2147483647, 2147483647, 2147483647, 2147483647,
		2147483647, 2126008810, 2147483647, 2130303777,
		2147483647, 2147483647, 2143188679, 2136746228,
		2147483647, 2126008810, 2147483647, 2147483647,
	}
	gasLookup2 = [16]int64{
		4096000000, 2048000000, 1024000000, 512000000,
		255744255, 127110228, 64000000, 32258064,
		16016016, 8000000, 4000000, 2000000,
		1000000, 500000, 250000, 125000,
	}
)

// gasResistance returns the gas resistance in Ω.
//
// adc has 10 bits of resolution, gasRange is 4 bits.
func (v Variant) gasResistance(adc uint16, rangeSwErr int8, gasRange uint8) float64 {
	gasRange &= gasRangeMask
	if v == VariantGasHigh {
		var1 := uint32(262144) >> gasRange
		var2 := int32(adc) - 512
		var2 *= 3
		var2 = 4096 + var2
		res := (uint32(10000) * var1) / uint32(var2)
		return float64(res * 100)
	}
	// The error range correction is a signed value and must stay signed
	// through the shift.
	var1 := ((1340 + 5*int64(rangeSwErr)) * gasLookup1[gasRange]) >> 16
	var2 := (int64(adc)<<15 - 16777216) + var1
	var3 := (gasLookup2[gasRange] * var1) >> 9
	return float64(uint32((var3 + var2>>1) / var2))
}
