// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package fpubench_test

import (
	"fmt"
	"os"

	"github.com/db47h/fpubench"
	"github.com/db47h/fpubench/mmio"
	"github.com/db47h/fpubench/plsim"
	"github.com/db47h/fpubench/timer"
)

// Run the individual steps of an iteration against a simulated core with the
// start command enabled.
func ExampleBench() {
	l := mmio.DefaultLayout()
	pl, err := plsim.New(l, 0)
	if err != nil {
		panic(err)
	}
	b := fpubench.New(pl, l, &stepper{step: 12}, nil, os.Stdout)
	b.Trigger = true

	r := fpubench.Report{A: 2, B: 3.5}
	r.PLTicks = b.Offload(r.A, r.B)
	r.PS, r.PSTicks = b.Local(r.A, r.B)
	r.PL = b.Result()
	r.PLTime = timer.Micros(r.PLTicks, timer.DefaultFrequency)
	r.PSTime = timer.Micros(r.PSTicks, timer.DefaultFrequency)
	r.WriteTo(os.Stdout)

	fmt.Printf("A register: %#08x\n", pl.Peek(l.A))
	fmt.Printf("B register: %#08x\n", pl.Peek(l.B))

	// Output:
	// FPU Result from PL: 7.000000
	// Time taken for PL FPU multiplication: 0.12 microseconds
	// FPU Result from PS: 7.000000
	// Time taken for PS FPU multiplication: 0.12 microseconds
	// **********************************************************
	// A register: 0x40000000
	// B register: 0x40600000
}
