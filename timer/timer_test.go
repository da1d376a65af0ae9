// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package timer_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/db47h/fpubench/timer"
	"github.com/stretchr/testify/require"
)

// stepper advances by step ticks on every read.
type stepper struct {
	now, step, hz uint64
}

func (s *stepper) Ticks() uint64 {
	t := s.now
	s.now += s.step
	return t
}

func (s *stepper) Frequency() uint64 { return s.hz }

func TestMicros(t *testing.T) {
	td := []struct {
		delta, hz uint64
		us        float64
	}{
		{0, timer.DefaultFrequency, 0},
		{1, timer.DefaultFrequency, 0.01},
		{100, timer.DefaultFrequency, 1},
		{12345, timer.DefaultFrequency, 123.45},
		{333, 333333333, 0.999000000999},
		{1e9, 1e9, 1e6},
		{24, 24000000, 1},
	}
	for _, d := range td {
		got := timer.Micros(d.delta, d.hz)
		require.InDelta(t, d.us, got, 1e-9, "Micros(%d, %d)", d.delta, d.hz)
		require.Equal(t, float64(d.delta)*1e6/float64(d.hz), got)
	}
}

func TestMeasure(t *testing.T) {
	c := &stepper{now: 1000, step: 250, hz: timer.DefaultFrequency}
	called := 0
	d := timer.Measure(c, func() { called++ })
	require.Equal(t, 1, called)
	require.Equal(t, uint64(250), d)
	require.Equal(t, uint64(1500), c.now)
}

func TestMonotonic(t *testing.T) {
	_, err := timer.Monotonic(0)
	require.EqualError(t, err, "unsupported counter frequency 0 Hz")
	_, err = timer.Monotonic(2e10)
	require.Error(t, err)

	c, err := timer.Monotonic(timer.DefaultFrequency)
	require.NoError(t, err)
	require.Equal(t, uint64(timer.DefaultFrequency), c.Frequency())

	prev := c.Ticks()
	for i := 0; i < 1000; i++ {
		now := c.Ticks()
		require.GreaterOrEqual(t, now, prev)
		prev = now
	}
	d := timer.Measure(c, func() { time.Sleep(2 * time.Millisecond) })
	// 2ms at 100MHz
	require.GreaterOrEqual(t, d, uint64(200000))
}

func TestGeneric(t *testing.T) {
	c, err := timer.Generic()
	if runtime.GOARCH != "arm64" {
		require.Error(t, err)
		return
	}
	require.NoError(t, err)
	require.NotZero(t, c.Frequency())
	a := c.Ticks()
	time.Sleep(time.Millisecond)
	require.Greater(t, c.Ticks(), a)
}
