// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// DebugF the debug function type.
type DebugF func(string, ...interface{})

// transport issues register transactions on the I²C device. Failures are
// wrapped and returned as is; nothing is retried here.
type transport struct {
	d     *i2c.Dev
	debug DebugF
}

func newTransport(b i2c.Bus, addr Address, debug DebugF) *transport {
	if debug == nil {
		debug = noop
	}
	return &transport{d: &i2c.Dev{Bus: b, Addr: uint16(addr)}, debug: debug}
}

func (t *transport) readReg(reg byte) (byte, error) {
	t.debug("read register %#x", reg)
	var r [1]byte
	if err := t.d.Tx([]byte{reg}, r[:]); err != nil {
		return 0, &WriteReadError{Reg: reg, Err: err}
	}
	return r[0], nil
}

func (t *transport) readRegs(reg byte, b []byte) error {
	t.debug("read registers %#x..%#x (%d bytes)", reg, int(reg)+len(b)-1, len(b))
	if err := t.d.Tx([]byte{reg}, b); err != nil {
		return &WriteReadError{Reg: reg, Err: err}
	}
	return nil
}

func (t *transport) writeReg(reg, value byte) error {
	t.debug("write register %#x value %#08b", reg, value)
	if err := t.d.Tx([]byte{reg, value}, nil); err != nil {
		return &WriteError{Reg: reg, Err: err}
	}
	return nil
}

// writeRegs writes each (regs[i], values[i]) pair in order, one transaction
// per register.
func (t *transport) writeRegs(regs, values []byte) error {
	if len(regs) != len(values) {
		return fmt.Errorf("bme680: %d registers but %d values", len(regs), len(values))
	}
	for i, reg := range regs {
		if err := t.writeReg(reg, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func noop(string, ...interface{}) {}
