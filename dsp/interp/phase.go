package interp

import (
	"math"

	"github.com/cwbudde/algo-synthtab/gentab/kernel"
)

// Phase is a fixed-point sample position: index in the high 32 bits,
// fraction in the low 32 bits.
type Phase uint64

const fractScale = 4294967296.0 // 2^32

// MaxPhase is the largest representable position, just below 2^32 samples.
const MaxPhase = Phase(math.MaxUint64)

// PhaseFromFloat converts a non-negative position in samples to a Phase.
// The fraction is truncated, not rounded. Positions of 2^32 samples or more
// saturate at MaxPhase.
func PhaseFromFloat(pos float64) Phase {
	if pos <= 0 || math.IsNaN(pos) {
		return 0
	}
	if pos >= fractScale {
		return MaxPhase
	}
	whole := math.Floor(pos)
	return Phase(uint64(uint32(whole))<<32 | uint64(uint32((pos-whole)*fractScale)))
}

// Index returns the whole sample index.
func (p Phase) Index() int { return int(p >> 32) }

// Fract returns the 32-bit fraction.
func (p Phase) Fract() uint32 { return uint32(p) }

// Row returns the coefficient table row selected by the fraction.
func (p Phase) Row() int {
	return int((p.Fract() & kernel.InterpBitsMask) >> kernel.InterpBitsShift)
}

// Float returns the position in samples.
func (p Phase) Float() float64 {
	return float64(p>>32) + float64(p.Fract())/fractScale
}
