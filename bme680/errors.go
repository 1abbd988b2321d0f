// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

import (
	"errors"
	"fmt"
)

var (
	// ErrMeasurementTimeout is returned by Measure when no new data was
	// flagged after all the polls. It points to a device or wiring fault.
	ErrMeasurementTimeout = errors.New("bme680: timed out while waiting for new measurement data")
	// ErrSleepTimeout is returned when the device keeps reporting forced mode
	// after being repeatedly put to sleep.
	ErrSleepTimeout = errors.New("bme680: device did not enter sleep mode")
	// ErrHeaterDuration is returned when the heater duration does not fit in
	// the poll window of the configured oversampling.
	ErrHeaterDuration = errors.New("bme680: heater duration exceeds the measurement window")
	// ErrReleased is returned by every operation after Release.
	ErrReleased = errors.New("bme680: bus was released")
)

// WriteError is a failed register write.
type WriteError struct {
	Reg byte
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("bme680: error during write to register %#x: %v", e.Reg, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteReadError is a failed register read, which is a write of the register
// address followed by a read.
type WriteReadError struct {
	Reg byte
	Err error
}

func (e *WriteReadError) Error() string {
	return fmt.Sprintf("bme680: error during write-read of register %#x: %v", e.Reg, e.Err)
}

func (e *WriteReadError) Unwrap() error {
	return e.Err
}

// UnexpectedChipIDError is returned by NewI2C when the chip_id register does
// not identify a BME68x.
type UnexpectedChipIDError struct {
	ID byte
}

func (e *UnexpectedChipIDError) Error() string {
	return fmt.Sprintf("bme680: unexpected chip id %#x, expected %#x", e.ID, chipID)
}
