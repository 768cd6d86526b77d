// Package emit turns generated tables into C header text.
//
// Generators hand named scalars, vectors and matrices to a [Sink] together
// with a destination identifier. The destination selects the header a value
// ends up in, for example "fluid_conv_tables" or "fluid_phase_const".
//
// Available sinks:
//
//   - [Router]:     one [Header] per destination, writers opened on demand
//   - [NewDirSink]: a Router writing <dir>/<dest>.h files
//   - [Memory]:     records everything in call order (tests, analysis)
//
// Floating-point values are written with 15 digits after the decimal point
// in scientific notation (16 significant digits). Counts are written in
// decimal and bitmasks as 8 zero-padded hex digits; the caller picks the
// [Kind].
package emit
