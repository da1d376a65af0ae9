// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command fpubench compares float32 multiplication on the processor with the
// same operation offloaded to a multiplier core in programmable logic.
//
// Operands are read from the standard input. The register window is mapped
// from /dev/mem, which usually requires root privileges, unless --simulate is
// given.
//
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/db47h/fpubench"
	"github.com/db47h/fpubench/mmio"
	"github.com/db47h/fpubench/plsim"
	"github.com/db47h/fpubench/timer"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("fpubench", "Benchmark float32 multiplication on the PS against the PL multiplier core.")

	device  = app.Flag("device", "Physical memory device.").Default("/dev/mem").Envar("FPUBENCH_DEVICE").String()
	base    = app.Flag("base", "Register window base address.").Default("0x40000000").Envar("FPUBENCH_BASE").Uint64()
	window  = app.Flag("window", "Register window size in bytes.").Default("0x10").Envar("FPUBENCH_WINDOW").Uint32()
	offCtrl = app.Flag("ctrl", "Control register offset.").Default("0x00").Envar("FPUBENCH_CTRL").Uint32()
	offA    = app.Flag("op-a", "Operand A register offset.").Default("0x04").Envar("FPUBENCH_OP_A").Uint32()
	offB    = app.Flag("op-b", "Operand B register offset.").Default("0x08").Envar("FPUBENCH_OP_B").Uint32()
	offRes  = app.Flag("result", "Result register offset.").Default("0x0c").Envar("FPUBENCH_RESULT").Uint32()

	simulate = app.Flag("simulate", "Use a simulated multiplier core instead of /dev/mem.").Envar("FPUBENCH_SIMULATE").Bool()
	latency  = app.Flag("latency", "Simulated core latency in bus cycles.").Default("0").Envar("FPUBENCH_LATENCY").Uint()
	trigger  = app.Flag("trigger", "Write the start bit to the control register after the operands.").Envar("FPUBENCH_TRIGGER").Bool()

	counter    = app.Flag("counter", "Tick source: monotonic, generic (ARM generic timer) or global (Cortex-A9 global timer).").Default("monotonic").Envar("FPUBENCH_COUNTER").Enum("monotonic", "generic", "global")
	counterHz  = app.Flag("counter-hz", "Monotonic or global counter frequency in Hz.").Default("100000000").Envar("FPUBENCH_COUNTER_HZ").Uint64()
	globalBase = app.Flag("global-base", "Global timer base address.").Default("0xf8f00200").Envar("FPUBENCH_GLOBAL_BASE").Uint64()

	iterations = app.Flag("iterations", "Number of iterations, 0 to run until end of input.").Short('n').Default("0").Envar("FPUBENCH_ITERATIONS").Int()
	trace      = app.Flag("trace", "Log register accesses.").Envar("FPUBENCH_TRACE").Bool()
	summary    = app.Flag("summary", "Log timing statistics on exit.").Envar("FPUBENCH_SUMMARY").Bool()
)

func registers(l mmio.Layout) (mmio.Block, func() error, error) {
	if *simulate {
		f, err := plsim.New(l, *latency)
		return f, func() error { return nil }, err
	}
	m, err := mmio.Open(*device, l)
	if err != nil {
		return nil, nil, err
	}
	return m, m.Close, nil
}

func tickSource() (timer.Counter, func() error, error) {
	nop := func() error { return nil }
	switch *counter {
	case "generic":
		c, err := timer.Generic()
		return c, nop, err
	case "global":
		m, err := mmio.Map(*device, *globalBase, timer.GlobalTimerSize)
		if err != nil {
			return nil, nil, errors.Wrap(err, "global timer")
		}
		c, err := timer.Global(m, *counterHz)
		if err != nil {
			m.Close()
			return nil, nil, err
		}
		return c, m.Close, nil
	}
	c, err := timer.Monotonic(*counterHz)
	return c, nop, err
}

func run() error {
	l := mmio.Layout{
		Base:   *base,
		Size:   *window,
		Ctrl:   *offCtrl,
		A:      *offA,
		B:      *offB,
		Result: *offRes,
	}
	regs, closeRegs, err := registers(l)
	if err != nil {
		return errors.Wrap(err, "register access")
	}
	defer closeRegs()
	if *trace {
		regs = mmio.Trace(regs, l.Base, log.New(os.Stderr, "mmio: ", 0))
	}

	c, closeCounter, err := tickSource()
	if err != nil {
		return err
	}
	defer closeCounter()

	b := fpubench.New(regs, l, c, os.Stdin, os.Stdout)
	b.Trigger = *trigger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// restore default signal handling so that a second interrupt
			// quits during a pending console read.
			stop()
			log.Printf("interrupted after %d iterations, stopping after the current one", b.Iterations())
		case <-done:
		}
	}()

	err = b.Run(ctx, *iterations)
	if *summary {
		log.Print(b.Summary())
	}
	if err == context.Canceled {
		return nil
	}
	return err
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("fpubench: ")
	app.Version("0.1.0")
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(); err != nil {
		log.Fatal(err)
	}
}
