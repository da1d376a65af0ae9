// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package plsim simulates the programmable logic side of the benchmark: a
// register file on an AXI-Lite style bus in front of a pipelined float32
// multiplier.
//
// The fabric has no clock of its own. Each bus access advances it by one
// cycle, which is enough to model results that become visible some cycles
// after the start bit is written.
//
// Like a real bus, a Fabric has a single master: Read32, Write32, Step, Poke
// and Watch must be called from one goroutine at a time. Busy, Cycles and Peek
// may be called from any goroutine, for instance by a monitor polling the core
// while a benchmark drives it.
//
package plsim

import (
	"math"

	"github.com/db47h/fpubench/mmio"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Fabric is a simulated multiplier core. It implements mmio.Block.
//
type Fabric struct {
	l       mmio.Layout
	regs    []atomic.Uint32
	latency uint
	cycles  atomic.Uint64

	busy    atomic.Bool
	pending uint   // cycles left before the product is written back
	a, b    uint32 // operands latched on start

	watch func(off, v uint32)
}

// New returns a new Fabric with the given register layout. latency is the
// number of bus cycles between the start command and the result write-back. A
// latency of 0 completes the multiplication within the start command.
//
func New(l mmio.Layout, latency uint) (*Fabric, error) {
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid register layout")
	}
	return &Fabric{
		l:       l,
		regs:    make([]atomic.Uint32, l.Size/4),
		latency: latency,
	}, nil
}

// Watch installs fn as a bus write observer. fn is called for every write
// with the register offset and written value, in bus order, before the write
// takes effect.
//
func (f *Fabric) Watch(fn func(off, v uint32)) {
	f.watch = fn
}

func (f *Fabric) reg(off uint32) *atomic.Uint32 {
	if off%4 != 0 || off/4 >= uint32(len(f.regs)) {
		panic(errors.Errorf("plsim: invalid register offset %#x", off))
	}
	return &f.regs[off/4]
}

// Read32 implements mmio.Block.
//
func (f *Fabric) Read32(off uint32) uint32 {
	f.Step()
	return f.reg(off).Load()
}

// Write32 implements mmio.Block. Writing CtrlStart to the control register
// latches the operand registers and starts a multiplication.
//
func (f *Fabric) Write32(off, v uint32) {
	f.Step()
	r := f.reg(off)
	if f.watch != nil {
		f.watch(off, v)
	}
	r.Store(v)
	if off == f.l.Ctrl && v&mmio.CtrlStart != 0 {
		f.start()
	}
}

// Step advances the fabric by one clock cycle.
//
func (f *Fabric) Step() {
	f.cycles.Inc()
	if !f.busy.Load() {
		return
	}
	if f.pending > 0 {
		f.pending--
	}
	if f.pending == 0 {
		f.writeBack()
	}
}

func (f *Fabric) start() {
	f.a = f.reg(f.l.A).Load()
	f.b = f.reg(f.l.B).Load()
	f.busy.Store(true)
	f.pending = f.latency
	ctrl := f.reg(f.l.Ctrl)
	ctrl.Store(ctrl.Load() &^ mmio.CtrlDone)
	if f.pending == 0 {
		f.writeBack()
	}
}

func (f *Fabric) writeBack() {
	p := math.Float32frombits(f.a) * math.Float32frombits(f.b)
	f.reg(f.l.Result).Store(math.Float32bits(p))
	ctrl := f.reg(f.l.Ctrl)
	ctrl.Store(ctrl.Load()&^mmio.CtrlStart | mmio.CtrlDone)
	f.busy.Store(false)
}

// Busy returns true while a multiplication is in flight.
//
func (f *Fabric) Busy() bool { return f.busy.Load() }

// Cycles returns the number of clock cycles elapsed since the fabric was
// created.
//
func (f *Fabric) Cycles() uint64 { return f.cycles.Load() }

// Peek returns the content of a register without clocking the fabric.
//
func (f *Fabric) Peek(off uint32) uint32 { return f.reg(off).Load() }

// Poke sets the content of a register without clocking the fabric or
// triggering any side effect. It can be used to preload the result register
// with a known stale value.
//
func (f *Fabric) Poke(off, v uint32) { f.reg(off).Store(v) }
