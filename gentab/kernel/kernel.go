// Package kernel generates the resampling coefficient tables of the voice
// renderer: 2-tap linear, 4-tap cubic and 7-tap windowed-sinc weights for
// each of the 256 fractional sample phases.
//
// The phase of a voice is a 64-bit fixed-point value whose low 32 bits are
// the fraction. The renderer selects a table row from the top
// InterpBits bits of that fraction:
//
//	row = (fract & InterpBitsMask) >> InterpBitsShift
//
// These constants are emitted next to the tables and must stay in sync with
// the renderer's phase arithmetic.
package kernel

import (
	"math"
	"slices"
	"sync"

	"github.com/cwbudde/algo-synthtab/dsp/window"
	"github.com/cwbudde/algo-synthtab/gentab/emit"
	"github.com/cwbudde/algo-synthtab/internal/crmath"
)

const (
	// InterpBits is the number of fraction bits that select a table row.
	InterpBits = 8
	// InterpBitsMask selects the top InterpBits bits of the 32-bit fraction.
	InterpBitsMask = 0xFF000000
	// InterpBitsShift moves the masked bits down to a row index.
	InterpBitsShift = 24
	// InterpMax is the number of fractional phases per sample.
	InterpMax = 256

	// LinearOrder is the tap count of the linear table.
	LinearOrder = 2
	// CubicOrder is the tap count of the 4-point cubic table.
	CubicOrder = 4
	// SincOrder is the tap count of the windowed-sinc table.
	SincOrder = 7

	// sincEpsilon gates the sinc(0) limit. The tap offset is accumulated
	// in floating point and may miss an exact zero.
	sincEpsilon = 0.000001
)

// Destinations of the emitted values.
const (
	DestTables = "fluid_rvoice_tables"
	DestConst  = "fluid_phase_const"
)

// Tables holds the three coefficient tables, indexed [row][tap].
type Tables struct {
	Linear [InterpMax][LinearOrder]float64
	Cubic  [InterpMax][CubicOrder]float64
	// Sinc7 is row-reversed: naive phase i is stored at row InterpMax-1-i.
	Sinc7 [InterpMax][SincOrder]float64
}

// LinearRow returns the linear blend weights [1-x, x] at phase i, x = i/256.
func LinearRow(i int) [LinearOrder]float64 {
	x := float64(i) / InterpMax
	return [LinearOrder]float64{1.0 - x, x}
}

// CubicRow returns the 4-point weights at phase i. The polynomials are
// Olli Niemitalo's, posted to the music-dsp list; they weight the samples
// at offsets -1, 0, 1, 2 from the current one. x has 8 significant bits, so
// every weight is exact in float64.
func CubicRow(i int) [CubicOrder]float64 {
	x := float64(i) / InterpMax
	return [CubicOrder]float64{
		x * (-0.5 + x*(1-0.5*x)),
		1.0 + x*x*(1.5*x-2.5),
		x * (0.5 + x*(2.0-1.5*x)),
		0.5 * x * x * (x - 1.0),
	}
}

// SincOffset returns the distance of tap k from the kernel center at naive
// phase i.
func SincOffset(k, i int) float64 {
	return float64(k) - SincOrder/2.0 + float64(i)/InterpMax
}

// SincTap returns the Hann-windowed sinc weight of tap k at naive phase i.
// Offsets within sincEpsilon of the center take the limit value 1. The sine
// and the window cosine are each rounded once to float64.
func SincTap(k, i int) float64 {
	d := SincOffset(k, i)
	if math.Abs(d) <= sincEpsilon {
		return 1.0
	}
	arg := math.Pi * d
	return crmath.Sin(arg) / arg * window.HannExact(arg, SincOrder)
}

// SincRow maps naive phase i to its row in Tables.Sinc7. The renderer
// walks the taps expecting this order; storing at row i instead yields a
// time-reversed filter.
func SincRow(i int) int {
	return InterpMax - 1 - i
}

var generated = sync.OnceValue(generate)

// Generate computes all coefficient tables. The values are computed once
// per process; each call returns an independent copy.
func Generate() *Tables {
	t := *generated()
	return &t
}

func generate() *Tables {
	t := new(Tables)
	for i := range InterpMax {
		t.Linear[i] = LinearRow(i)
		t.Cubic[i] = CubicRow(i)
	}
	for k := range SincOrder {
		for i := range InterpMax {
			t.Sinc7[SincRow(i)][k] = SincTap(k, i)
		}
	}
	return t
}

// LinearRows returns a copy of the linear table as slices.
func (t *Tables) LinearRows() [][]float64 {
	out := make([][]float64, InterpMax)
	for i := range t.Linear {
		out[i] = slices.Clone(t.Linear[i][:])
	}
	return out
}

// CubicRows returns a copy of the cubic table as slices.
func (t *Tables) CubicRows() [][]float64 {
	out := make([][]float64, InterpMax)
	for i := range t.Cubic {
		out[i] = slices.Clone(t.Cubic[i][:])
	}
	return out
}

// SincRows returns a copy of the sinc table as slices.
func (t *Tables) SincRows() [][]float64 {
	out := make([][]float64, InterpMax)
	for i := range t.Sinc7 {
		out[i] = slices.Clone(t.Sinc7[i][:])
	}
	return out
}

// Emit writes the matrices to DestTables and the phase constants to
// DestConst.
func (t *Tables) Emit(sink emit.Sink) error {
	for _, m := range []struct {
		name string
		rows [][]float64
	}{
		{"interp_coeff_linear", t.LinearRows()},
		{"interp_coeff", t.CubicRows()},
		{"sinc_table7", t.SincRows()},
	} {
		if err := sink.Matrix(DestTables, m.name, m.rows); err != nil {
			return err
		}
	}

	for _, c := range []struct {
		name string
		v    emit.Value
	}{
		{"FLUID_INTERP_BITS", emit.Dec(InterpBits)},
		{"FLUID_INTERP_BITS_MASK", emit.Hex(InterpBitsMask)},
		{"FLUID_INTERP_BITS_SHIFT", emit.Dec(InterpBitsShift)},
		{"FLUID_INTERP_MAX", emit.Dec(InterpMax)},
		{"SINC_INTERP_ORDER", emit.Dec(SincOrder)},
	} {
		if err := sink.Scalar(DestConst, c.name, c.v); err != nil {
			return err
		}
	}
	return nil
}
