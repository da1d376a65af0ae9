// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package fpubench

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var separator = strings.Repeat("*", 58) + "\n"

// A Report holds the outcome of one benchmark iteration.
//
type Report struct {
	A, B float32 // operands

	PL      float32 // value read back from the result register
	PLTicks uint64  // ticks spent writing the operand registers
	PLTime  float64 // PLTicks in microseconds

	PS      float32 // local product
	PSTicks uint64
	PSTime  float64
}

// WriteTo writes the results and timings of r to w, followed by a separator
// line.
//
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "\nFPU Result from PL: %s\n"+
		"Time taken for PL FPU multiplication: %0.2f microseconds\n"+
		"FPU Result from PS: %s\n"+
		"Time taken for PS FPU multiplication: %0.2f microseconds\n"+
		"%s",
		cfloat(r.PL, 6), r.PLTime, cfloat(r.PS, 6), r.PSTime, separator)
	return int64(n), err
}

// cfloat formats f with prec decimals. Non-finite values are spelled the way
// C's printf does: nan, -nan, inf and -inf.
func cfloat(f float32, prec int) string {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		if math.Float32bits(f)>>31 != 0 {
			return "-nan"
		}
		return "nan"
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	return strconv.FormatFloat(x, 'f', prec, 32)
}

// Stats accumulates timings of one path.
//
type Stats struct {
	Total    float64
	Min, Max float64
}

func (s *Stats) add(n int, us float64) {
	s.Total += us
	if n == 1 {
		s.Min, s.Max = us, us
		return
	}
	s.Min = math.Min(s.Min, us)
	s.Max = math.Max(s.Max, us)
}

// Summary aggregates the timings of all iterations of a benchmark run.
//
type Summary struct {
	Count int
	PL    Stats
	PS    Stats
}

func (s *Summary) add(r *Report) {
	s.Count++
	s.PL.add(s.Count, r.PLTime)
	s.PS.add(s.Count, r.PSTime)
}

// MeanPL returns the average PL path time in microseconds.
func (s Summary) MeanPL() float64 { return s.mean(s.PL) }

// MeanPS returns the average PS path time in microseconds.
func (s Summary) MeanPS() float64 { return s.mean(s.PS) }

func (s Summary) mean(st Stats) float64 {
	if s.Count == 0 {
		return 0
	}
	return st.Total / float64(s.Count)
}

func (s Summary) String() string {
	if s.Count == 0 {
		return "no iterations"
	}
	return fmt.Sprintf("%d iterations, PL: avg %0.2f us (min %0.2f, max %0.2f), PS: avg %0.2f us (min %0.2f, max %0.2f)",
		s.Count,
		s.MeanPL(), s.PL.Min, s.PL.Max,
		s.MeanPS(), s.PS.Min, s.PS.Max)
}
