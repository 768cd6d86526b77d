// Package spectrum turns FFT bins and single DFT terms of a kernel into
// gains.
//
// The package does not implement an FFT. [Magnitude] works on bins from any
// backend; [Goertzel] evaluates one DFT term directly, which is cheaper than
// a full transform when only a handful of frequencies matter.
package spectrum
