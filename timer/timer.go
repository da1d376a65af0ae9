// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package timer provides the tick counters used to time register accesses and
// local computations.
//
// Timestamps are plain values: a measurement captures its start and end
// ticks in locals and returns their difference.
//
package timer

import (
	"time"

	"github.com/pkg/errors"
)

// DefaultFrequency is the rate of the Zynq-7000 global timer as configured by
// the reference board support package.
//
const DefaultFrequency = 100000000

// A Counter is a free running, monotonic tick counter.
//
type Counter interface {
	// Ticks returns the current counter value.
	Ticks() uint64
	// Frequency returns the counter rate in Hz.
	Frequency() uint64
}

// Micros converts a tick delta to microseconds for a counter running at hz.
//
func Micros(delta, hz uint64) float64 {
	return float64(delta) * 1000000.0 / float64(hz)
}

// Measure returns the number of ticks of c elapsed while running fn.
//
func Measure(c Counter, fn func()) uint64 {
	start := c.Ticks()
	fn()
	end := c.Ticks()
	return end - start
}

type monotonic struct {
	epoch time.Time
	hz    uint64
}

// Monotonic returns a Counter derived from the runtime's monotonic clock and
// scaled to hz ticks per second.
//
func Monotonic(hz uint64) (Counter, error) {
	if hz == 0 || hz > 1e10 {
		return nil, errors.Errorf("unsupported counter frequency %d Hz", hz)
	}
	return &monotonic{time.Now(), hz}, nil
}

func (m *monotonic) Ticks() uint64 {
	ns := uint64(time.Since(m.epoch))
	// split to avoid overflowing ns*hz
	return ns/1e9*m.hz + ns%1e9*m.hz/1e9
}

func (m *monotonic) Frequency() uint64 { return m.hz }

type generic struct {
	hz uint64
}

// Generic returns a Counter reading the ARM generic timer virtual count
// (CNTVCT_EL0). Its frequency is read from CNTFRQ_EL0. Generic fails on
// platforms without an accessible generic timer.
//
func Generic() (Counter, error) {
	if !hasGeneric {
		return nil, errors.New("ARM generic timer not available on this platform")
	}
	hz := cntfrq()
	if hz == 0 {
		return nil, errors.New("ARM generic timer frequency not set (CNTFRQ_EL0 is 0)")
	}
	return generic{hz}, nil
}

func (g generic) Ticks() uint64     { return cntvct() }
func (g generic) Frequency() uint64 { return g.hz }
