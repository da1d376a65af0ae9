// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build !linux

package mmio

import "github.com/pkg/errors"

// DevMem is a register Block backed by a mapping of physical memory. It is
// only available on Linux.
//
type DevMem struct{}

// Open always fails on this platform.
//
func Open(path string, l Layout) (*DevMem, error) {
	return nil, errors.Errorf("cannot map %s: physical memory mapping requires linux", path)
}

// Map always fails on this platform.
//
func Map(path string, base uint64, size uint32) (*DevMem, error) {
	return nil, errors.Errorf("cannot map %s: physical memory mapping requires linux", path)
}

// Read32 implements Block.
func (*DevMem) Read32(off uint32) uint32 { panic("mmio: no register mapping") }

// Write32 implements Block.
func (*DevMem) Write32(off, v uint32) { panic("mmio: no register mapping") }

// Close is a no-op.
func (*DevMem) Close() error { return nil }
