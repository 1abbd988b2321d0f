// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

import "context"

// setMode moves the device to m. The device has no forced to forced
// transition, so a device still in forced mode is first written back to sleep
// and polled until sleep is observed. Requesting Sleep stops there.
//
// It must be called with d.mu lock held.
func (d *Dev) setMode(ctx context.Context, m Mode) error {
	d.t.debug("setting mode to %s", m)
	for i := 0; ; i++ {
		v, err := d.t.readReg(regCtrlMeas)
		if err != nil {
			return err
		}
		c := ctrlMeas(v)
		if c.mode() == Sleep {
			if m == Sleep {
				return nil
			}
			return d.t.writeReg(regCtrlMeas, byte(c.withMode(m)))
		}
		if i == maxSleepPolls {
			return ErrSleepTimeout
		}
		if err := d.t.writeReg(regCtrlMeas, byte(c.withMode(Sleep))); err != nil {
			return err
		}
		if err := d.timer.Sleep(ctx, pollPeriod); err != nil {
			return err
		}
	}
}
