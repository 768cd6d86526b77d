// Package curve generates the conversion tables used by the synthesizer's
// modulation and attenuation paths: cents to frequency ratio, centibels to
// linear amplitude, the concave and convex velocity curves, and the sine-law
// pan table.
//
// All sizes are fixed at build time. The engine indexes the emitted tables
// directly, so none of the constants below may change without regenerating
// the engine sources.
package curve

import (
	"math"
	"slices"
	"sync"

	"github.com/cwbudde/algo-synthtab/gentab/emit"
	"github.com/cwbudde/algo-synthtab/internal/crmath"
)

const (
	// CentsHzSize covers one octave in cents.
	CentsHzSize = 1200
	// CBAmpSize covers 0 to 144 dB of attenuation in centibels.
	CBAmpSize = 1441
	// VelCBSize is the number of MIDI control values.
	VelCBSize = 128
	// PanSize is the number of pan positions.
	PanSize = 1002

	// PeakAttenuation is the velocity curve reference attenuation in centibels.
	PeakAttenuation = 960.0
)

// Destinations of the emitted values.
const (
	DestTables = "fluid_conv_tables"
	DestConst  = "fluid_conv_const"
)

// Tables holds one generated set of conversion tables.
type Tables struct {
	CentsHz []float64
	CBAmp   []float64
	Concave []float64
	Convex  []float64
	Pan     []float64
}

// CentsToHz returns the frequency ratio for i cents, 2^(i/1200), rounded
// once to the nearest float64.
func CentsToHz(i int) float64 {
	return crmath.Exp2(float64(i) / 1200.0)
}

// CentibelToAmp returns the linear gain for an attenuation of i centibels,
// 10^(-i/200). Only non-negative attenuation has a table entry.
func CentibelToAmp(i int) float64 {
	return crmath.Exp10(float64(i) / -200.0)
}

// VelocityStep returns the quantity shared by the velocity curves at
// interior index i in [1, VelCBSize-2]:
//
//	x = (-200/960) * 2 * log10(i/127)
//
// convex[i] is 1-x and concave[127-i] is x.
func VelocityStep(i int) float64 {
	// The conversion keeps the product from fusing with 1-x in the caller.
	return float64((-200.0 / PeakAttenuation) * 2 * crmath.Log10(float64(i)/(VelCBSize-1)))
}

// halfPi is rounded to float64 before the division in Pan, so the pan step
// is computed in double precision like the engine's reference tables.
var halfPi = math.Pi / 2.0

// Pan returns the gain at pan position i, a quarter-period sine sweep.
func Pan(i int) float64 {
	step := halfPi / (PanSize - 1.0)
	return crmath.Sin(float64(i) * step)
}

var generated = sync.OnceValue(generate)

// Generate computes all conversion tables. The values are computed once per
// process; each call returns an independent copy.
func Generate() *Tables {
	src := generated()
	return &Tables{
		CentsHz: slices.Clone(src.CentsHz),
		CBAmp:   slices.Clone(src.CBAmp),
		Concave: slices.Clone(src.Concave),
		Convex:  slices.Clone(src.Convex),
		Pan:     slices.Clone(src.Pan),
	}
}

func generate() *Tables {
	t := &Tables{
		CentsHz: make([]float64, CentsHzSize),
		CBAmp:   make([]float64, CBAmpSize),
		Pan:     make([]float64, PanSize),
	}
	for i := range t.CentsHz {
		t.CentsHz[i] = CentsToHz(i)
	}
	// SF2.01 8.1.3: initial attenuation is 0..144 dB, never negative.
	for i := range t.CBAmp {
		t.CBAmp[i] = CentibelToAmp(i)
	}
	t.Concave, t.Convex = velocityCurves()
	for i := range t.Pan {
		t.Pan[i] = Pan(i)
	}
	return t
}

// velocityCurves builds the concave and convex unipolar curves together.
// The equations follow the plots on SF2.01 page 73 rather than the text,
// which disagrees with them; the engine depends on this exact shape.
func velocityCurves() (concave, convex []float64) {
	concave = make([]float64, VelCBSize)
	convex = make([]float64, VelCBSize)

	concave[0] = 0
	concave[VelCBSize-1] = 1
	convex[0] = 0
	convex[VelCBSize-1] = 1

	for i := 1; i < VelCBSize-1; i++ {
		x := VelocityStep(i)
		convex[i] = 1.0 - x
		concave[VelCBSize-1-i] = x
	}
	return concave, convex
}

// Emit writes the size constants and tables to DestTables and the peak
// attenuation to DestConst.
func (t *Tables) Emit(sink emit.Sink) error {
	for _, c := range []struct {
		name string
		v    int64
	}{
		{"FLUID_CENTS_HZ_SIZE", CentsHzSize},
		{"FLUID_VEL_CB_SIZE", VelCBSize},
		{"FLUID_CB_AMP_SIZE", CBAmpSize},
		{"FLUID_PAN_SIZE", PanSize},
	} {
		if err := sink.Scalar(DestTables, c.name, emit.Dec(c.v)); err != nil {
			return err
		}
	}

	for _, v := range []struct {
		name string
		tab  []float64
	}{
		{"fluid_ct2hz_tab", t.CentsHz},
		{"fluid_cb2amp_tab", t.CBAmp},
		{"fluid_concave_tab", t.Concave},
		{"fluid_convex_tab", t.Convex},
		{"fluid_pan_tab", t.Pan},
	} {
		if err := sink.Vector(DestTables, v.name, v.tab); err != nil {
			return err
		}
	}

	return sink.Scalar(DestConst, "FLUID_PEAK_ATTENUATION", emit.Float(PeakAttenuation))
}
