// Package window provides the window functions used to taper interpolation
// kernels and preview signals.
package window

import (
	"math"

	"github.com/cwbudde/algo-synthtab/internal/crmath"
	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
)

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	default:
		return "Unknown"
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
	half     half
}

type half int

const (
	halfNone half = iota
	halfRising
	halfFalling
)

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithRisingHalf returns the first half of a window twice the requested
// length, for fade-ins.
func WithRisingHalf() Option {
	return func(c *config) {
		c.half = halfRising
	}
}

// WithFallingHalf returns the second half of a window twice the requested
// length, for fade-outs.
func WithFallingHalf() Option {
	return func(c *config) {
		c.half = halfFalling
	}
}

// Hann evaluates a Hann window centered on a kernel of the given order.
// arg is π times the tap offset from the kernel center, so the window is 1
// at the center and reaches 0 at offsets of ±order/2:
//
//	w = 0.5 * (1 + cos(2*arg/order))
//
// The argument is taken in radians so callers that already computed π·d for
// a sinc evaluation share it bit for bit.
func Hann(arg, order float64) float64 {
	return 0.5 * (1.0 + math.Cos(2.0*arg/order))
}

// HannExact is Hann with the cosine rounded once to the nearest float64.
// It is much slower than Hann and meant for offline table generation.
func HannExact(arg, order float64) float64 {
	return 0.5 * (1.0 + crmath.Cos(2.0*arg/order))
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size, offset := length, 0
	switch cfg.half {
	case halfRising:
		size = 2 * length
	case halfFalling:
		size, offset = 2*length, length
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i+offset, size, cfg.periodic)
		out[i] = evalWindow(t, x)
	}
	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// evalWindow evaluates t at normalized position x in [0,1].
func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		// Same curve as Hann with the center moved to x = 0.5.
		return Hann(math.Pi*(x-0.5), 1)
	default:
		return 1
	}
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
