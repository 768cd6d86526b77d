package emit

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName indicates a value or destination without a name.
	ErrEmptyName = errors.New("emit: name must not be empty")
	// ErrRaggedMatrix indicates matrix rows of differing length.
	ErrRaggedMatrix = errors.New("emit: matrix rows must have equal length")
	// ErrClosed indicates a write to a sink that was already closed.
	ErrClosed = errors.New("emit: sink is closed")
)

// Kind selects how a scalar is rendered.
type Kind int

const (
	// KindDec renders an integer count in decimal.
	KindDec Kind = iota
	// KindHex renders a bitmask as 8 zero-padded hex digits.
	KindHex
	// KindFloat renders a floating-point constant.
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindDec:
		return "dec"
	case KindHex:
		return "hex"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a named scalar constant. Counts and masks carry Int, floats carry Float.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
}

// Dec returns a decimal integer value.
func Dec(v int64) Value { return Value{Kind: KindDec, Int: v} }

// Hex returns a bitmask value.
func Hex(v uint32) Value { return Value{Kind: KindHex, Int: int64(v)} }

// Float returns a floating-point value.
func Float(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// Sink accepts named tables and constants for a destination.
//
// A Sink is not safe for concurrent use. Any returned error is terminal:
// callers stop generation and report it.
type Sink interface {
	Scalar(dest, name string, v Value) error
	Vector(dest, name string, values []float64) error
	Matrix(dest, name string, rows [][]float64) error
}

func validateNames(dest, name string) error {
	if dest == "" || name == "" {
		return fmt.Errorf("%w: dest=%q name=%q", ErrEmptyName, dest, name)
	}
	return nil
}

func matrixWidth(rows [][]float64) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	w := len(rows[0])
	for i, r := range rows {
		if len(r) != w {
			return 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedMatrix, i, len(r), w)
		}
	}
	return w, nil
}
