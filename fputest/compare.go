// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package fputest provides utility functions for testing multiplier cores.
//
package fputest

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/db47h/fpubench"
	"github.com/db47h/fpubench/mmio"
)

// MaxPoll is the number of control register reads after which CompareCore
// gives up waiting for the done bit.
//
var MaxPoll = 1000

var specials = []uint32{
	0x00000000, // +0
	0x80000000, // -0
	0x00000001, // smallest denormal
	0x00800000, // smallest normal
	0x3f800000, // 1
	0xbf800000, // -1
	0x7f7fffff, // max
	0x7f800000, // +Inf
	0xff800000, // -Inf
	0x7fc00000, // NaN
}

func same(a, b float32) bool {
	// NaN payloads are implementation defined.
	if math.IsNaN(float64(a)) {
		return math.IsNaN(float64(b))
	}
	return math.Float32bits(a) == math.Float32bits(b)
}

// CompareCore runs products through the core behind regs and compares them
// with fpubench.Multiply. Every pair of special values is tried first, then
// iter random bit patterns.
//
// Unlike the benchmark loop, CompareCore issues the start command and polls
// the control register for the done bit.
//
func CompareCore(t testing.TB, regs mmio.Block, l mmio.Layout, iter int) {
	t.Helper()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	count := 0
	start := time.Now()

	check := func(x, y uint32) {
		t.Helper()
		a, b := math.Float32frombits(x), math.Float32frombits(y)
		regs.Write32(l.A, x)
		regs.Write32(l.B, y)
		regs.Write32(l.Ctrl, mmio.CtrlStart)
		for i := 0; regs.Read32(l.Ctrl)&mmio.CtrlDone == 0; i++ {
			if i >= MaxPoll {
				t.Fatalf("%#08x * %#08x: core not done after %d polls", x, y, MaxPoll)
			}
		}
		got := mmio.ReadFloat32(regs, l.Result)
		if ex := fpubench.Multiply(a, b); !same(ex, got) {
			t.Fatalf("\nExpected %#08x * %#08x (%g * %g) = %#08x\nGot %#08x",
				x, y, a, b, math.Float32bits(ex), math.Float32bits(got))
		}
		count++
	}

	// all 0, all 1
	check(0, 0)
	check(^uint32(0), ^uint32(0))

	for _, x := range specials {
		for _, y := range specials {
			check(x, y)
		}
	}
	for i := 0; i < iter; i++ {
		check(rnd.Uint32(), rnd.Uint32())
	}

	elapsed := time.Since(start)
	t.Logf("%d products in %v => %.2f products/s", count, elapsed, float64(count)/elapsed.Seconds())
}
