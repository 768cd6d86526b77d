// Package kernelresp measures the frequency response of polyphase
// interpolation tables.
//
// A table with R rows (phases) and T taps describes one continuous kernel
// sampled at R times the input rate. [ImpulseResponse] interleaves the rows
// back into that kernel and [Analyze] evaluates its spectrum with a
// zero-padded FFT. Frequencies are reported in units of the input sample
// rate, so 0.5 is the input Nyquist frequency and images of the baseband
// appear around 1, 2, 3, ...
package kernelresp

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synthtab/dsp/spectrum"
)

var (
	// ErrEmptyTable indicates a table without rows or taps.
	ErrEmptyTable = errors.New("kernelresp: table must not be empty")
	// ErrRaggedTable indicates rows of differing length.
	ErrRaggedTable = errors.New("kernelresp: all rows must have the same tap count")
	// ErrFFTSize indicates an FFT size that is not a power of two or too short.
	ErrFFTSize = errors.New("kernelresp: fft size must be a power of two >= kernel length")
)

// StopbandStart is the lowest frequency (in input sample rates) counted as
// stopband: everything from the first image's upper half on.
const StopbandStart = 1.5

// Result holds the measured response. Gains are in dB relative to unity.
type Result struct {
	Phases int
	Taps   int
	// FFTSize is the transform length used.
	FFTSize int

	DCGainDB          float64
	HalfNyquistGainDB float64
	NyquistGainDB     float64
	// StopbandPeakDB is the largest gain at or above StopbandStart.
	StopbandPeakDB float64
	// MaxRowSumError is max |sum(row) - 1| over all phases.
	MaxRowSumError float64
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	fftSize int
}

// WithFFTSize sets the transform length. It must be a power of two no
// shorter than the kernel. Zero selects eight times the next power of two.
func WithFFTSize(n int) Option {
	return func(c *config) {
		c.fftSize = n
	}
}

// ImpulseResponse interleaves a polyphase table into one kernel of length
// rows*taps. Row r, tap k lands at (taps-1-k)*rows + r.
func ImpulseResponse(rows [][]float64) ([]float64, error) {
	taps, err := validate(rows)
	if err != nil {
		return nil, err
	}
	phases := len(rows)
	h := make([]float64, phases*taps)
	for r, row := range rows {
		for k, v := range row {
			h[(taps-1-k)*phases+r] = v
		}
	}
	return h, nil
}

// Analyze measures the response of a polyphase table.
func Analyze(rows [][]float64, opts ...Option) (Result, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	h, err := ImpulseResponse(rows)
	if err != nil {
		return Result{}, err
	}
	phases := len(rows)
	taps := len(rows[0])

	fftSize := cfg.fftSize
	if fftSize == 0 {
		fftSize = 8 * nextPowerOf2(len(h))
	}
	if fftSize < len(h) || fftSize&(fftSize-1) != 0 {
		return Result{}, fmt.Errorf("%w: %d for kernel length %d", ErrFFTSize, fftSize, len(h))
	}

	mag, err := magnitude(h, fftSize)
	if err != nil {
		return Result{}, err
	}
	// The kernel is sampled at phases x the input rate; a unity-gain
	// kernel sums to phases.
	vecmath.ScaleBlockInPlace(mag, 1/float64(phases))

	binOf := func(f float64) int {
		return int(math.Round(f * float64(fftSize) / float64(phases)))
	}

	stop := math.Inf(-1)
	for b := binOf(StopbandStart); b <= fftSize/2; b++ {
		stop = math.Max(stop, toDB(mag[b]))
	}

	rowErr := 0.0
	for _, row := range rows {
		rowErr = math.Max(rowErr, math.Abs(vecmath.Sum(row)-1))
	}

	return Result{
		Phases:            phases,
		Taps:              taps,
		FFTSize:           fftSize,
		DCGainDB:          toDB(mag[0]),
		HalfNyquistGainDB: toDB(mag[binOf(0.25)]),
		NyquistGainDB:     toDB(mag[binOf(0.5)]),
		StopbandPeakDB:    stop,
		MaxRowSumError:    rowErr,
	}, nil
}

// GainAt returns the gain in dB at frequency f (input sample rates),
// evaluated directly on the kernel without FFT binning. f must lie in
// [0, rows/2], the Nyquist frequency of the interleaved kernel.
func GainAt(rows [][]float64, f float64) (float64, error) {
	h, err := ImpulseResponse(rows)
	if err != nil {
		return 0, err
	}
	phases := float64(len(rows))
	mag, err := spectrum.AnalyzeBlock(h, f, phases)
	if err != nil {
		return 0, fmt.Errorf("kernelresp: %w", err)
	}
	return toDB(mag / phases), nil
}

func magnitude(h []float64, fftSize int) ([]float64, error) {
	in := make([]complex128, fftSize)
	for i, v := range h {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("kernelresp: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("kernelresp: fft: %w", err)
	}
	return spectrum.Magnitude(out[:fftSize/2+1]), nil
}

func validate(rows [][]float64) (int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, ErrEmptyTable
	}
	taps := len(rows[0])
	for i, r := range rows {
		if len(r) != taps {
			return 0, fmt.Errorf("%w: row %d has %d taps, want %d", ErrRaggedTable, i, len(r), taps)
		}
	}
	return taps, nil
}

func toDB(g float64) float64 {
	if g <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(g)
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
