// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/GermanBionicSystems/bme68x/bme680"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics exports the last successful measurement. A nil *metrics is valid
// and records nothing.
type metrics struct {
	temperature   prometheus.Gauge
	pressure      prometheus.Gauge
	humidity      prometheus.Gauge
	gasResistance prometheus.Gauge
	heaterStable  prometheus.Gauge
	errors        prometheus.Counter
}

// newMetrics registers the gauges in the default registry. The chip label
// tells a BME680 from a BME688.
func newMetrics(v bme680.Variant) *metrics {
	labels := prometheus.Labels{"chip": v.String()}
	m := &metrics{
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bme680_temperature_celsius",
			Help:        "Compensated temperature.",
			ConstLabels: labels,
		}),
		pressure: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bme680_pressure_pascals",
			Help:        "Compensated barometric pressure.",
			ConstLabels: labels,
		}),
		humidity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bme680_humidity_percent",
			Help:        "Compensated relative humidity.",
			ConstLabels: labels,
		}),
		gasResistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bme680_gas_resistance_ohms",
			Help:        "Gas sensor resistance of the last valid gas conversion.",
			ConstLabels: labels,
		}),
		heaterStable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "bme680_heater_stable",
			Help:        "1 if the heater reached its target temperature in the last cycle.",
			ConstLabels: labels,
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bme680_measurement_errors_total",
			Help:        "Failed measurement cycles.",
			ConstLabels: labels,
		}),
	}
	prometheus.MustRegister(m.temperature, m.pressure, m.humidity, m.gasResistance, m.heaterStable, m.errors)
	return m
}

func (m *metrics) observe(r *bme680.Measurement) {
	if m == nil {
		return
	}
	m.temperature.Set(r.Temperature)
	m.pressure.Set(r.Pressure)
	m.humidity.Set(r.Humidity)
	if r.HasGas {
		m.gasResistance.Set(r.GasResistance)
	}
	if r.HeaterStable {
		m.heaterStable.Set(1)
	} else {
		m.heaterStable.Set(0)
	}
}

func (m *metrics) failed() {
	if m == nil {
		return
	}
	m.errors.Inc()
}
