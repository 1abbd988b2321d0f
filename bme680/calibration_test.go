// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Coefficient dump of a BME680 breakout, with the reserved bytes kept.
var (
	coeff1 = []byte{0xe8, 0x66, 0x03, 0x5a, 0xf7, 0x8d, 0x7a, 0xd7, 0x58, 0x11, 0xa5, 0x18, 0x6a, 0xff, 0x26, 0x1e, 0x7e, 0x22, 0x3d, 0xf8, 0xd3, 0xf6, 0x1e}
	coeff2 = []byte{0x3f, 0x92, 0x30, 0x00, 0x2d, 0x14, 0x78, 0x9c, 0x50, 0x66, 0x3e, 0xca, 0xe2, 0x12}
	coeff3 = []byte{0x2e, 0x28, 0x1a, 0x00, 0xf3}
)

var fixtureCalibration = Calibration{
	T1: 26192, T2: 26344, T3: 3,
	P1: 36343, P2: -10374, P3: 88, P4: 6309, P5: -150,
	P6: 30, P7: 38, P8: -1987, P9: -2349, P10: 30,
	H1: 770, H2: 1017, H3: 0, H4: 45, H5: 20, H6: 120, H7: -100,
	GH1: -30, GH2: -13762, GH3: 18,
	ResHeatRange: 1, ResHeatVal: 46, RangeSwErr: -1,
}

func coeffBlock() *[lenCoeffAll]byte {
	var b [lenCoeffAll]byte
	n := copy(b[:], coeff1)
	n += copy(b[n:], coeff2)
	copy(b[n:], coeff3)
	return &b
}

func TestDecodeCalibration(t *testing.T) {
	got := decodeCalibration(coeffBlock())
	if diff := cmp.Diff(fixtureCalibration, got); diff != "" {
		t.Fatalf("decodeCalibration() mismatch (-want +got):\n%s", diff)
	}
	// Decoding is a pure function of the block.
	if again := decodeCalibration(coeffBlock()); again != got {
		t.Fatal("decodeCalibration() is not deterministic")
	}
}

func TestDecodeCalibrationHumidityNibbles(t *testing.T) {
	tests := []struct {
		b23, b24, b25 byte
		h1, h2        uint16
	}{
		{0x00, 0x00, 0x00, 0x000, 0x000},
		{0xff, 0xff, 0xff, 0xfff, 0xfff},
		{0x3f, 0x92, 0x30, 0x302, 0x3f9},
		{0xab, 0x0f, 0x00, 0x00f, 0xab0},
		{0x00, 0xf0, 0xcd, 0xcd0, 0x00f},
	}
	for _, test := range tests {
		b := coeffBlock()
		b[23], b[24], b[25] = test.b23, test.b24, test.b25
		c := decodeCalibration(b)
		if c.H1 != test.h1 || c.H2 != test.h2 {
			t.Errorf("bytes %#x %#x %#x: h1=%#x h2=%#x, expected h1=%#x h2=%#x", test.b23, test.b24, test.b25, c.H1, c.H2, test.h1, test.h2)
		}
	}
}

func TestDecodeCalibrationStatusFields(t *testing.T) {
	tests := []struct {
		b39, b41   byte
		heatRange  uint8
		rangeSwErr int8
	}{
		{0x00, 0x00, 0, 0},
		{0x30, 0x70, 3, 7},
		{0xcf, 0x0f, 0, 0},
		{0x20, 0x80, 2, -8},
		{0x10, 0xf0, 1, -1},
		{0xff, 0xc5, 3, -4},
	}
	for _, test := range tests {
		b := coeffBlock()
		b[39], b[41] = test.b39, test.b41
		c := decodeCalibration(b)
		if c.ResHeatRange != test.heatRange {
			t.Errorf("byte 39 %#x: res_heat_range=%d, expected %d", test.b39, c.ResHeatRange, test.heatRange)
		}
		if c.RangeSwErr != test.rangeSwErr {
			t.Errorf("byte 41 %#x: range_sw_err=%d, expected %d", test.b41, c.RangeSwErr, test.rangeSwErr)
		}
	}
}
