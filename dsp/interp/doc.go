// Package interp evaluates the generated coefficient tables the way the
// voice renderer consumes them.
//
// A read position is a [Phase]: a 64-bit fixed-point value with the whole
// sample index in the high 32 bits and the fraction in the low 32 bits.
// The top bits of the fraction select one table row, and the row is applied
// to a window of neighboring samples with [Dot].
package interp
