// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme680

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Timer pauses the driver between bus transactions. Sleep must return
// ctx.Err() if ctx is done before d elapsed.
type Timer interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleepTimer is the Timer backed by the runtime clock.
type SleepTimer struct{}

// Sleep implements Timer.
func (SleepTimer) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Opts holds the configuration options for the device.
type Opts struct {
	// Config is applied once the device is reset and identified.
	Config Configuration
	// AmbientTemperature is the initial ambient temperature in °C used to
	// compute the heater set-point, until a first measurement succeeds.
	AmbientTemperature int
	// Timer defaults to SleepTimer.
	Timer Timer
	// Debug traces the register traffic when set.
	Debug DebugF
}

// DefaultOpts is the recommended default options: 2x oversampling on every
// channel, a light IIR filter and the heater at 320°C for 50ms, which fits in
// the poll window of a 2x measurement.
var DefaultOpts = Opts{
	Config: Configuration{
		Temperature: O2x,
		Pressure:    O2x,
		Humidity:    O2x,
		Filter:      F3,
		Gas:         &GasProfile{HeaterTemperature: 320, HeaterDuration: 50 * time.Millisecond},
	},
	AmbientTemperature: 25,
}

// Measurement is the compensated result of one forced measurement cycle.
type Measurement struct {
	// Temperature in °C.
	Temperature float64
	// Pressure in Pa.
	Pressure float64
	// Humidity in %RH.
	Humidity float64
	// GasResistance in Ω, only meaningful when HasGas is true.
	GasResistance float64
	// HasGas is false when the gas conversion was invalid or still running.
	HasGas bool
	// HeaterStable reports whether the heater reached its target temperature.
	HeaterStable bool
}

// Env converts m into the periph units.
func (m *Measurement) Env() physic.Env {
	return physic.Env{
		Temperature: physic.Temperature(m.Temperature*float64(physic.Kelvin)) + physic.ZeroCelsius,
		Pressure:    physic.Pressure(m.Pressure * float64(physic.Pascal)),
		Humidity:    physic.RelativeHumidity(m.Humidity * float64(physic.PercentRH)),
	}
}

// Dev is a handle to an initialized BME680 or BME688.
type Dev struct {
	t     *transport
	timer Timer
	name  string

	mu       sync.Mutex
	cal      Calibration
	cfg      rawConfig
	variant  Variant
	ambient  int
	heater   time.Duration
	released bool
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewI2C returns an object that communicates over I²C to a BME680 or BME688.
//
// The device is soft reset, identified, its calibration is read and
// opts.Config applied. The Opts can be nil.
func NewI2C(b i2c.Bus, addr Address, opts *Opts) (*Dev, error) {
	return NewI2CContext(context.Background(), b, addr, opts)
}

// NewI2CContext is NewI2C with a context that bounds the reset settle
// delay.
func NewI2CContext(ctx context.Context, b i2c.Bus, addr Address, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		t:       newTransport(b, addr, opts.Debug),
		timer:   opts.Timer,
		name:    fmt.Sprintf("bme680{%s, %#x}", b, uint16(addr)),
		ambient: opts.AmbientTemperature,
	}
	if d.timer == nil {
		d.timer = SleepTimer{}
	}
	if err := d.init(ctx, &opts.Config); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init(ctx context.Context, c *Configuration) error {
	d.t.debug("soft resetting")
	if err := d.t.writeReg(regSoftReset, cmdSoftReset); err != nil {
		return err
	}
	if err := d.timer.Sleep(ctx, pollPeriod); err != nil {
		return err
	}
	id, err := d.t.readReg(regChipID)
	if err != nil {
		return err
	}
	if id != chipID {
		return &UnexpectedChipIDError{ID: id}
	}
	if d.cal, err = d.readCalibration(); err != nil {
		return err
	}
	if d.cfg, err = d.applyConfig(c); err != nil {
		return err
	}
	v, err := d.t.readReg(regVariantID)
	if err != nil {
		return err
	}
	d.variant = variantFromID(v)
	d.t.debug("variant %s", d.variant)
	if d.variant == VariantGasHigh && c.Gas != nil {
		// ctrl_gas_1 was written with the BME680 run_gas encoding.
		d.cfg.apply(&Configuration{Gas: c.Gas}, d.variant)
		if err := d.t.writeReg(regCtrlGas1, d.cfg[idxCtrlGas1]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) String() string {
	return d.name
}

// Calibration returns the factory calibration read at initialization.
func (d *Dev) Calibration() Calibration {
	return d.cal
}

// Variant returns the chip variant read at initialization.
func (d *Dev) Variant() Variant {
	return d.variant
}

// AmbientTemperature returns the ambient temperature in °C used for the next
// heater set-point computation.
func (d *Dev) AmbientTemperature() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ambient
}

// SetConfiguration puts the device to sleep and applies c. The heater
// set-point, if any, uses the temperature of the last measurement.
//
// ErrHeaterDuration is returned and nothing is written if the resulting
// heater duration cannot complete within the poll window of Measure.
func (d *Dev) SetConfiguration(ctx context.Context, c *Configuration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ErrReleased
	}
	if err := d.setMode(ctx, Sleep); err != nil {
		return err
	}
	r, err := d.applyConfig(c)
	if err != nil {
		return err
	}
	d.cfg = r
	return nil
}

// Measure triggers a forced measurement and waits for the result.
//
// The expected conversion time is waited for before each of up to five
// reads of the result block. ErrMeasurementTimeout is returned if none of
// them flags new data.
//
// If ctx is canceled during a wait the device may stay in forced mode with a
// heater cycle pending; the next Measure drains it back to sleep first.
func (d *Dev) Measure(ctx context.Context) (Measurement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return Measurement{}, ErrReleased
	}
	return d.measure(ctx)
}

// It must be called with d.mu lock held.
func (d *Dev) measure(ctx context.Context) (Measurement, error) {
	if err := d.setMode(ctx, Forced); err != nil {
		return Measurement{}, err
	}
	delay := measurementDelay(&d.cfg)
	if err := d.timer.Sleep(ctx, delay); err != nil {
		return Measurement{}, err
	}
	var f fieldData
	for i := 0; i < maxPolls; i++ {
		if err := d.t.readRegs(regFieldData, f[:]); err != nil {
			return Measurement{}, err
		}
		if !f.measuring() && f.newData() {
			return d.compensate(&f), nil
		}
		d.t.debug("poll %d: status %#08b", i, f[0])
		if err := d.timer.Sleep(ctx, delay); err != nil {
			return Measurement{}, err
		}
	}
	return Measurement{}, ErrMeasurementTimeout
}

// compensate converts f and records the temperature as the new ambient
// temperature.
//
// It must be called with d.mu lock held.
func (d *Dev) compensate(f *fieldData) Measurement {
	t, tFine := compensateTemperature(f.temperatureADC(), &d.cal)
	d.ambient = int(t)
	m := Measurement{
		Temperature:  t,
		Pressure:     compensatePressure(f.pressureADC(), &d.cal, tFine),
		Humidity:     compensateHumidity(f.humidityADC(), &d.cal, tFine),
		HeaterStable: f.heaterStable(),
	}
	if f.gasValid() && !f.gasMeasuring() {
		m.GasResistance = d.variant.gasResistance(f.gasADC(), d.cal.RangeSwErr, f.gasRange())
		m.HasGas = true
	}
	return m
}

// Sense implements physic.SenseEnv. The gas resistance is not part of
// physic.Env; use Measure to get it.
func (d *Dev) Sense(e *physic.Env) error {
	m, err := d.Measure(context.Background())
	if err != nil {
		return err
	}
	*e = m.Env()
	return nil
}

// SenseContinuous implements physic.SenseEnv. It returns a channel that
// receives a measurement every interval. Call Halt() to stop it. Failed
// measurements are skipped.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil, ErrReleased
	}
	if d.stop != nil {
		return nil, errors.New("bme680: SenseContinuous already running")
	}
	if conv := measurementDelay(&d.cfg); interval < conv {
		return nil, fmt.Errorf("bme680: interval %s is shorter than the %s conversion time", interval, conv)
	}
	d.stop = make(chan struct{})
	ch := make(chan physic.Env, 16)
	d.wg.Add(1)
	go d.senseContinuous(interval, d.stop, ch)
	return ch, nil
}

func (d *Dev) senseContinuous(interval time.Duration, stop <-chan struct{}, ch chan<- physic.Env) {
	defer d.wg.Done()
	defer close(ch)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			var e physic.Env
			if err := d.Sense(&e); err != nil {
				d.t.debug("continuous sense: %v", err)
				continue
			}
			select {
			case ch <- e:
			case <-stop:
				return
			}
		}
	}
}

// Precision implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = 10 * physic.MilliKelvin
	e.Pressure = 180 * physic.MilliPascal
	e.Humidity = 80 * physic.MicroRH
}

// Halt stops a running SenseContinuous and puts the device to sleep.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.stopContinuous()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil
	}
	return d.setMode(context.Background(), Sleep)
}

// Release stops a running SenseContinuous and returns the bus without
// further bus traffic. The Dev must not be used afterwards; every operation
// returns ErrReleased.
func (d *Dev) Release() i2c.Bus {
	d.stopContinuous()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released = true
	return d.t.d.Bus
}

func (d *Dev) stopContinuous() {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
