// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bme680 controls a Bosch BME680 or BME688 environmental sensor over
// I²C.
//
// The sensor measures temperature, pressure, relative humidity and the
// resistance of a heated metal oxide layer, which tracks volatile organic
// compounds in the air. Only forced mode is used: every Measure call runs a
// single measurement cycle with the configured heater profile and returns
// the device to sleep.
//
// The BME688 is detected from its variant id and uses a different gas
// resistance formula. Results are read from the BME680 field layout for both
// chips: the BME688 places gas_r at 0x2C..0x2D, outside that block, so gas
// readings on a BME688 depend on that shared layout.
//
// The heater duration must fit in the window Measure polls in, four times the
// expected conversion time; longer durations are rejected with
// ErrHeaterDuration.
//
// The bme680.Dev type implements the physic.SenseEnv interface. The gas
// resistance is not part of physic.Env and is only reported by Measure.
//
// **Datasheet:** https://www.bosch-sensortec.com/media/boschsensortec/downloads/datasheets/bst-bme680-ds001.pdf
package bme680
