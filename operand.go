// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package fpubench

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// An InputError is returned when operand text cannot be parsed as a floating
// point number.
//
type InputError struct {
	Operand string // "A" or "B"
	Text    string // offending input
	Err     error
}

func (e *InputError) Error() string {
	return "operand " + e.Operand + ": invalid float " + strconv.Quote(e.Text) + ": " + e.Err.Error()
}

// Unwrap returns the underlying parse error.
func (e *InputError) Unwrap() error { return e.Err }

// ParseOperand parses text as a float32 operand.
//
// Out of range values saturate to ±Inf or ±0 instead of failing. Any other
// syntax error is reported as an *InputError.
//
func ParseOperand(name, text string) (float32, error) {
	f, err := strconv.ParseFloat(text, 32)
	if ne, ok := err.(*strconv.NumError); ok {
		if ne.Err == strconv.ErrRange {
			return float32(f), nil
		}
		err = ne.Err
	}
	if err != nil {
		return 0, &InputError{Operand: name, Text: text, Err: err}
	}
	return float32(f), nil
}

// An OperandReader prompts for and reads operand pairs from a text stream.
// Operands are whitespace separated, so that a pair can be typed on a single
// line or on two lines.
//
type OperandReader struct {
	s      *bufio.Scanner
	prompt io.Writer
}

// NewOperandReader returns a new OperandReader reading from r. Prompts are
// written to prompt, which may be nil.
//
func NewOperandReader(r io.Reader, prompt io.Writer) *OperandReader {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	if prompt == nil {
		prompt = io.Discard
	}
	return &OperandReader{s, prompt}
}

func (o *OperandReader) read(name, prompt string) (float32, error) {
	if _, err := io.WriteString(o.prompt, prompt); err != nil {
		return 0, errors.Wrap(err, "write prompt")
	}
	if !o.s.Scan() {
		if err := o.s.Err(); err != nil {
			return 0, errors.Wrapf(err, "read operand %s", name)
		}
		return 0, io.EOF
	}
	return ParseOperand(name, o.s.Text())
}

// ReadPair reads the next pair of operands. It returns io.EOF if the input
// ends before operand A and io.ErrUnexpectedEOF if it ends between A and B.
//
func (o *OperandReader) ReadPair() (a, b float32, err error) {
	a, err = o.read("A", "Enter Operand A (float): ")
	if err != nil {
		return 0, 0, err
	}
	b, err = o.read("B", "\nEnter Operand B (float): ")
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
