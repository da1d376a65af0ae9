// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mmio

import "log"

type tracer struct {
	b    Block
	base uint64
	l    *log.Logger
}

// Trace wraps b so that every register access is logged to l. base is only
// used to print absolute addresses.
//
func Trace(b Block, base uint64, l *log.Logger) Block {
	return &tracer{b, base, l}
}

func (t *tracer) Read32(off uint32) uint32 {
	v := t.b.Read32(off)
	t.l.Printf("read  %#010x -> %#010x", t.base+uint64(off), v)
	return v
}

func (t *tracer) Write32(off, v uint32) {
	t.l.Printf("write %#010x <- %#010x", t.base+uint64(off), v)
	t.b.Write32(off, v)
}
