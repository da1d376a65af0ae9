// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package mmio provides access to a small block of 32 bits memory-mapped
// registers, such as the AXI-Lite slave interface of an accelerator in
// programmable logic.
//
package mmio

import (
	"math"

	"github.com/pkg/errors"
)

// A Block is a window of 32 bits registers addressed by byte offset.
//
// Register access is assumed to always succeed. Implementations panic on
// invalid offsets and the platform raises SIGBUS on bus errors: there is no
// recovery from a failed register access.
//
type Block interface {
	Read32(off uint32) uint32
	Write32(off, v uint32)
}

// Default register map of the multiplier core.
//
const (
	DefaultBase = 0x40000000

	OffCtrl   = 0x00
	OffA      = 0x04
	OffB      = 0x08
	OffResult = 0x0C

	// DefaultSize is the size in bytes of the register window.
	DefaultSize = 0x10
)

// Control register bits.
//
const (
	CtrlStart = 1 << 0
	CtrlDone  = 1 << 1
)

// Layout describes where the registers of the core live.
//
type Layout struct {
	Base   uint64 // physical base address
	Size   uint32 // window size in bytes
	Ctrl   uint32 // control register offset
	A      uint32 // operand A offset
	B      uint32 // operand B offset
	Result uint32 // result register offset
}

// DefaultLayout returns the register layout of the reference design.
//
func DefaultLayout() Layout {
	return Layout{
		Base:   DefaultBase,
		Size:   DefaultSize,
		Ctrl:   OffCtrl,
		A:      OffA,
		B:      OffB,
		Result: OffResult,
	}
}

// Validate checks that the base address and all register offsets are 32 bits
// aligned, that the registers fit in the window and do not overlap.
//
func (l Layout) Validate() error {
	if l.Base%4 != 0 {
		return errors.Errorf("base address %#x is not 32 bits aligned", l.Base)
	}
	if l.Size == 0 || l.Size%4 != 0 {
		return errors.Errorf("invalid register window size %#x", l.Size)
	}
	regs := []struct {
		name string
		off  uint32
	}{
		{"control", l.Ctrl},
		{"operand A", l.A},
		{"operand B", l.B},
		{"result", l.Result},
	}
	for i, r := range regs {
		if r.off%4 != 0 {
			return errors.Errorf("%s register offset %#x is not 32 bits aligned", r.name, r.off)
		}
		if r.off > l.Size-4 {
			return errors.Errorf("%s register offset %#x out of window [0, %#x)", r.name, r.off, l.Size)
		}
		for _, o := range regs[:i] {
			if o.off == r.off {
				return errors.Errorf("%s and %s registers share offset %#x", o.name, r.name, r.off)
			}
		}
	}
	return nil
}

// WriteFloat32 stores the IEEE-754 bit pattern of f at offset off.
// No value conversion takes place.
//
func WriteFloat32(b Block, off uint32, f float32) {
	b.Write32(off, math.Float32bits(f))
}

// ReadFloat32 loads the 32 bits register at offset off and reinterprets it as
// an IEEE-754 value.
//
func ReadFloat32(b Block, off uint32) float32 {
	return math.Float32frombits(b.Read32(off))
}
