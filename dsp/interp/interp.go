package interp

import "github.com/cwbudde/algo-vecmath"

// Dot applies one table row to the samples under the kernel.
// coeffs and samples must have the same length.
func Dot(coeffs, samples []float64) float64 {
	return vecmath.DotProduct(coeffs, samples)
}
