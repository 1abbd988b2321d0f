// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

// Offsets into the concatenated coefficient block for the packed humidity
// and heater fields.
const (
	idxH1MSB        = 25
	idxH1LSB        = 24
	idxH2MSB        = 23
	idxH2LSB        = 24
	idxResHeatVal   = 37
	idxResHeatRange = 39
	idxRangeSwErr   = 41

	maskH1LSB        = 0x0F
	maskResHeatRange = 0x30
	maskRangeSwErr   = 0xF0
)

// Calibration holds the factory compensation coefficients.
type Calibration struct {
	T1 uint16
	T2 int16
	T3 int8

	P1  uint16
	P2  int16
	P3  int8
	P4  int16
	P5  int16
	P6  int8
	P7  int8
	P8  int16
	P9  int16
	P10 uint8

	H1 uint16
	H2 uint16
	H3 int8
	H4 int8
	H5 int8
	H6 uint8
	H7 int8

	GH1 int8
	GH2 int16
	GH3 int8

	ResHeatRange uint8
	ResHeatVal   int8
	RangeSwErr   int8
}

// readCalibration fills the coefficient block from its three address ranges.
//
// It must be called with d.mu lock held.
func (d *Dev) readCalibration() (Calibration, error) {
	var b [lenCoeffAll]byte
	if err := d.t.readRegs(regCoeff1, b[:lenCoeff1]); err != nil {
		return Calibration{}, err
	}
	if err := d.t.readRegs(regCoeff2, b[lenCoeff1:lenCoeff1+lenCoeff2]); err != nil {
		return Calibration{}, err
	}
	if err := d.t.readRegs(regCoeff3, b[lenCoeff1+lenCoeff2:]); err != nil {
		return Calibration{}, err
	}
	return decodeCalibration(&b), nil
}

// le16 assembles the 16 bit value stored lsb first at b[lo], b[hi].
func le16(b *[lenCoeffAll]byte, hi, lo int) uint16 {
	return uint16(b[hi])<<8 | uint16(b[lo])
}

// decodeCalibration parses the 0x8A..0xA0, 0xE1..0xEE, 0x00..0x04 block.
func decodeCalibration(b *[lenCoeffAll]byte) Calibration {
	return Calibration{
		T1: le16(b, 32, 31),
		T2: int16(le16(b, 1, 0)),
		T3: int8(b[2]),

		P1: le16(b, 5, 4),
		P2: int16(le16(b, 7, 6)),
		P3: int8(b[8]),
		P4: int16(le16(b, 11, 10)),
		P5: int16(le16(b, 13, 12)),
		// p6 and p7 are stored in reverse order.
		P6:  int8(b[15]),
		P7:  int8(b[14]),
		P8:  int16(le16(b, 19, 18)),
		P9:  int16(le16(b, 21, 20)),
		P10: b[22],

		// h1 and h2 share the nibbles of byte 24.
		H1: uint16(b[idxH1MSB])<<4 | uint16(b[idxH1LSB])&maskH1LSB,
		H2: uint16(b[idxH2MSB])<<4 | uint16(b[idxH2LSB])>>4,
		H3: int8(b[26]),
		H4: int8(b[27]),
		H5: int8(b[28]),
		H6: b[29],
		H7: int8(b[30]),

		GH1: int8(b[35]),
		GH2: int16(le16(b, 34, 33)),
		GH3: int8(b[36]),

		ResHeatRange: (b[idxResHeatRange] & maskResHeatRange) / 16,
		ResHeatVal:   int8(b[idxResHeatVal]),
		// Signed division keeps the sign of the 4 bit field.
		RangeSwErr: int8(b[idxRangeSwErr]&maskRangeSwErr) / 16,
	}
}
