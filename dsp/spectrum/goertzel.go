package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// ErrFrequency indicates a frequency outside [0, sampleRate/2] or an
// invalid sample rate.
var ErrFrequency = errors.New("spectrum: frequency must be in [0, sampleRate/2] with sampleRate > 0")

// Goertzel evaluates a single DFT term over all samples processed since the
// last Reset. Power equals |X(f)|^2 of a direct DFT of the same samples at
// frequency f; f does not have to fall on an FFT bin.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel returns an analyzer for frequency at sampleRate. Both are in
// the same unit; callers measuring a polyphase kernel pass the phase count
// as the rate and frequencies in input sample rates.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) ||
		!(frequency >= 0 && frequency <= sampleRate/2) {
		return nil, fmt.Errorf("%w: %v at %v", ErrFrequency, frequency, sampleRate)
	}
	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessBlock feeds input through the resonator.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// Power returns |X(f)|^2.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X(f)|. Rounding can push Power slightly below zero for
// a null; that reads as 0.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}
	return math.Sqrt(p)
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// AnalyzeBlock returns |X(f)| of input in one shot.
func AnalyzeBlock(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(input)
	return g.Magnitude(), nil
}
