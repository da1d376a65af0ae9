// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mmio

import (
	"strconv"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DevMem is a register Block backed by a shared mapping of a physical memory
// device (usually /dev/mem).
//
type DevMem struct {
	mem  []byte // whole mapping, page aligned
	regs []byte // register window inside mem
}

// Open maps the register window described by l from the device at path.
// The mapping is uncached (O_SYNC) and shared so that stores reach the bus.
//
// Callers must call Close once the registers are no longer needed.
//
func Open(path string, l Layout) (*DevMem, error) {
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid register layout")
	}
	return Map(path, l.Base, l.Size)
}

// Map maps size bytes of the device at path, starting at physical address
// base. Both base and size must be multiples of 4.
//
func Map(path string, base uint64, size uint32) (*DevMem, error) {
	if base%4 != 0 || size == 0 || size%4 != 0 {
		return nil, errors.Errorf("cannot map %#x bytes at %#x: not 32 bits aligned", size, base)
	}
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer unix.Close(fd)

	ps := uint64(unix.Getpagesize())
	pageBase := base &^ (ps - 1)
	delta := base - pageBase
	length := (delta + uint64(size) + ps - 1) &^ (ps - 1)

	mem, err := unix.Mmap(fd, int64(pageBase), int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %s at %#x", path, pageBase)
	}
	return &DevMem{
		mem:  mem,
		regs: mem[delta : delta+uint64(size)],
	}, nil
}

func (m *DevMem) reg(off uint32) *uint32 {
	if off%4 != 0 || uint64(off)+4 > uint64(len(m.regs)) {
		panic("mmio: invalid register offset 0x" + strconv.FormatUint(uint64(off), 16))
	}
	return (*uint32)(unsafe.Pointer(&m.regs[off]))
}

// Read32 implements Block.
//
func (m *DevMem) Read32(off uint32) uint32 {
	return atomic.LoadUint32(m.reg(off))
}

// Write32 implements Block.
//
func (m *DevMem) Write32(off, v uint32) {
	atomic.StoreUint32(m.reg(off), v)
}

// Close unmaps the register window.
//
func (m *DevMem) Close() error {
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem, m.regs = nil, nil
	return errors.Wrap(err, "munmap")
}
