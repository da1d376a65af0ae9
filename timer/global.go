// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package timer

import (
	"github.com/db47h/fpubench/mmio"
	"github.com/pkg/errors"
)

// Register map of the Cortex-A9 MPCore global timer, as found on Zynq-7000
// devices.
//
const (
	GlobalTimerBase = 0xF8F00200

	GlobalCounterLo = 0x00
	GlobalCounterHi = 0x04
	GlobalControl   = 0x08

	// GlobalTimerSize is the size of the register window needed to read the
	// counter and its control register.
	GlobalTimerSize = 0x0C

	GlobalEnable = 1 << 0
)

type global struct {
	b  mmio.Block
	hz uint64
}

// Global returns a Counter reading the 64 bits global timer through b, which
// must map the timer registers at offsets GlobalCounterLo, GlobalCounterHi and
// GlobalControl. The timer runs at the CPU_3x2x clock, half the CPU clock: hz
// must be set accordingly since the rate cannot be read back from the timer.
//
// Global fails if the timer is not enabled.
//
func Global(b mmio.Block, hz uint64) (Counter, error) {
	if hz == 0 {
		return nil, errors.New("global timer frequency not set")
	}
	if b.Read32(GlobalControl)&GlobalEnable == 0 {
		return nil, errors.New("global timer disabled")
	}
	return &global{b, hz}, nil
}

// Ticks reads the upper word, the lower word, then the upper word again and
// retries until both upper reads agree, so that a carry out of the lower word
// between the two accesses is never missed.
//
func (g *global) Ticks() uint64 {
	for {
		hi := g.b.Read32(GlobalCounterHi)
		lo := g.b.Read32(GlobalCounterLo)
		if g.b.Read32(GlobalCounterHi) == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}

func (g *global) Frequency() uint64 { return g.hz }
