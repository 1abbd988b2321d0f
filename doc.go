// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bme68x is a container for the Bosch BME680 and BME688 driver and
// its command line tool.
//
// The driver lives in package bme680; cmd/bme680 reads a sensor and can
// export the measurements for Prometheus.
package bme68x
