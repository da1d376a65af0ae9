// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package fpubench_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/db47h/fpubench"
	"github.com/db47h/fpubench/mmio"
	"github.com/db47h/fpubench/plsim"
)

func TestReport_WriteTo(t *testing.T) {
	td := []struct {
		pl, ps uint32 // result bit patterns
		plText string
		psText string
	}{
		{0x7fc00000, 0xff800000, "nan", "-inf"},
		{0xffc00000, 0x7f800000, "-nan", "inf"},
		{math.Float32bits(7), 0x80000000, "7.000000", "-0.000000"},
		{0x7f7fffff, 0x00000001, "340282346638528859811704183484516925440.000000", "0.000000"},
	}
	for _, d := range td {
		var b strings.Builder
		r := fpubench.Report{
			PL:     math.Float32frombits(d.pl),
			PLTime: 0.125,
			PS:     math.Float32frombits(d.ps),
			PSTime: 1234.5678,
		}
		n, err := r.WriteTo(&b)
		if err != nil {
			t.Fatal(err)
		}
		expected := "\nFPU Result from PL: " + d.plText + "\n" +
			"Time taken for PL FPU multiplication: 0.12 microseconds\n" +
			"FPU Result from PS: " + d.psText + "\n" +
			"Time taken for PS FPU multiplication: 1234.57 microseconds\n" +
			strings.Repeat("*", 58) + "\n"
		if b.String() != expected {
			t.Fatalf("expected %q, got %q", expected, b.String())
		}
		if n != int64(len(expected)) {
			t.Fatalf("expected %d bytes written, got %d", len(expected), n)
		}
	}
}

// uneven advances by a different amount on each pair of reads.
type uneven struct {
	now   uint64
	reads int
	steps []uint64
}

func (u *uneven) Ticks() uint64 {
	t := u.now
	if u.reads%2 == 0 {
		u.now += u.steps[(u.reads/2)%len(u.steps)]
	}
	u.reads++
	return t
}

func (u *uneven) Frequency() uint64 { return 100 }

func TestSummary(t *testing.T) {
	var s fpubench.Summary
	if s.String() != "no iterations" || s.MeanPL() != 0 || s.MeanPS() != 0 {
		t.Fatalf("unexpected empty summary %v", s)
	}

	f, err := plsim.New(mmio.DefaultLayout(), 0)
	if err != nil {
		t.Fatal(err)
	}
	// 100 Hz counter: ticks are hundredths of seconds. PL deltas are 1, 3, 5,
	// PS deltas 2, 4, 6.
	c := &uneven{steps: []uint64{1, 2, 3, 4, 5, 6}}
	b := fpubench.New(f, mmio.DefaultLayout(), c, strings.NewReader("1 1 2 2 3 3"), &strings.Builder{})
	if err = b.Run(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	s = b.Summary()
	if s.Count != 3 {
		t.Fatalf("expected 3 iterations, got %d", s.Count)
	}
	if s.PL.Min != 10000 || s.PL.Max != 50000 || s.MeanPL() != 30000 {
		t.Fatalf("unexpected PL stats %+v", s.PL)
	}
	if s.PS.Min != 20000 || s.PS.Max != 60000 || s.MeanPS() != 40000 {
		t.Fatalf("unexpected PS stats %+v", s.PS)
	}
	expected := "3 iterations, PL: avg 30000.00 us (min 10000.00, max 50000.00), PS: avg 40000.00 us (min 20000.00, max 60000.00)"
	if s.String() != expected {
		t.Fatalf("expected %q, got %q", expected, s.String())
	}
}
