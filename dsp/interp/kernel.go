package interp

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-synthtab/gentab/kernel"
)

// ErrBadKernel indicates a kernel whose rows do not match its tap count.
var ErrBadKernel = errors.New("interp: kernel rows must have Taps columns")

// Kernel is one coefficient table together with its tap layout. Center is
// the number of taps that precede the current sample, so the row is
// applied to data[Index-Center : Index-Center+Taps].
type Kernel struct {
	Name   string
	Rows   [][]float64
	Taps   int
	Center int
}

// Kernels returns the three generated tables in renderer order.
func Kernels(t *kernel.Tables) []Kernel {
	return []Kernel{
		{Name: "linear", Rows: t.LinearRows(), Taps: kernel.LinearOrder, Center: 0},
		{Name: "cubic", Rows: t.CubicRows(), Taps: kernel.CubicOrder, Center: 1},
		{Name: "sinc7", Rows: t.SincRows(), Taps: kernel.SincOrder, Center: kernel.SincOrder / 2},
	}
}

// Validate checks the table shape.
func (k Kernel) Validate() error {
	if k.Taps <= 0 || len(k.Rows) != kernel.InterpMax {
		return fmt.Errorf("%w: %s has %d rows, %d taps", ErrBadKernel, k.Name, len(k.Rows), k.Taps)
	}
	for i, r := range k.Rows {
		if len(r) != k.Taps {
			return fmt.Errorf("%w: %s row %d has %d columns", ErrBadKernel, k.Name, i, len(r))
		}
	}
	return nil
}

// At interpolates data at phase p. Samples outside data read as zero.
// scratch must hold at least Taps values; At uses it to gather the window.
func (k Kernel) At(data, scratch []float64, p Phase) float64 {
	win := scratch[:k.Taps]
	start := p.Index() - k.Center
	for j := range win {
		n := start + j
		if n >= 0 && n < len(data) {
			win[j] = data[n]
		} else {
			win[j] = 0
		}
	}
	return Dot(k.Rows[p.Row()], win)
}
