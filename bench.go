// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package fpubench

import (
	"context"
	"fmt"
	"io"

	"github.com/db47h/fpubench/mmio"
	"github.com/db47h/fpubench/timer"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Bench runs the offload benchmark loop against a register block.
//
type Bench struct {
	// Trigger enables writing the start bit to the control register after the
	// operands. The reference design runs with the trigger disabled, in which
	// case the result register is never refreshed by the core.
	Trigger bool

	regs mmio.Block
	l    mmio.Layout
	c    timer.Counter
	in   *OperandReader
	out  io.Writer

	iter atomic.Int64
	sum  Summary
}

// New returns a new Bench using the given registers and counter. Operands are
// read from in, prompts and reports are written to out.
//
func New(regs mmio.Block, l mmio.Layout, c timer.Counter, in io.Reader, out io.Writer) *Bench {
	return &Bench{
		regs: regs,
		l:    l,
		c:    c,
		in:   NewOperandReader(in, out),
		out:  out,
	}
}

// Multiply returns a*b computed on the processor.
//
//go:noinline
func Multiply(a, b float32) float32 {
	return a * b
}

// Offload writes the operands to the accelerator and returns the number of
// ticks spent doing so.
//
func (b *Bench) Offload(x, y float32) uint64 {
	return timer.Measure(b.c, func() {
		mmio.WriteFloat32(b.regs, b.l.A, x)
		mmio.WriteFloat32(b.regs, b.l.B, y)
		if b.Trigger {
			b.regs.Write32(b.l.Ctrl, mmio.CtrlStart)
		}
	})
}

// Local computes x*y on the processor and returns the product along with the
// number of ticks spent.
//
func (b *Bench) Local(x, y float32) (float32, uint64) {
	var p float32
	d := timer.Measure(b.c, func() { p = Multiply(x, y) })
	return p, d
}

// Result returns the content of the result register.
//
func (b *Bench) Result() float32 {
	return mmio.ReadFloat32(b.regs, b.l.Result)
}

// Next runs one iteration: read an operand pair, offload it, multiply it
// locally, read back the accelerator result and print the report.
//
func (b *Bench) Next() (Report, error) {
	x, y, err := b.in.ReadPair()
	if err != nil {
		return Report{}, err
	}
	_, err = fmt.Fprintf(b.out, "\nUsing user-defined operands:\nOperand A: %s\nOperand B: %s\n", cfloat(x, 2), cfloat(y, 2))
	if err != nil {
		return Report{}, errors.Wrap(err, "write operands")
	}

	r := Report{A: x, B: y}
	r.PLTicks = b.Offload(x, y)
	r.PS, r.PSTicks = b.Local(x, y)
	r.PL = b.Result()

	hz := b.c.Frequency()
	r.PLTime = timer.Micros(r.PLTicks, hz)
	r.PSTime = timer.Micros(r.PSTicks, hz)

	if _, err = r.WriteTo(b.out); err != nil {
		return r, errors.Wrap(err, "write report")
	}
	b.sum.add(&r)
	b.iter.Inc()
	return r, nil
}

// Run runs the benchmark loop for n iterations, or forever if n <= 0. It
// returns nil once n iterations are done or when the input is exhausted, and
// ctx.Err() if ctx is done.
//
// ctx is checked between iterations: a pending console read is not
// interrupted.
//
func (b *Bench) Run(ctx context.Context, n int) error {
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := b.Next(); err != nil {
			if errors.Cause(err) == io.EOF {
				return nil
			}
			return err
		}
	}
	return nil
}

// Iterations returns the number of completed iterations. It is safe to call
// concurrently with Run.
//
func (b *Bench) Iterations() int64 { return b.iter.Load() }

// Summary returns timing statistics for the completed iterations.
//
func (b *Bench) Summary() Summary { return b.sum }
