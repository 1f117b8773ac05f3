// Package interp provides the fractional-read kernels used by the tape loop.
//
// Two methods are available, selectable per chain:
//
//   - [Linear]: 2-point linear interpolation (uses less CPU)
//   - [Sinc]:   7-point Blackman-tapered windowed sinc (cleaner audio)
//
// The sinc kernel is evaluated through a [SincTable]: closed-form
// sinc×Blackman samples stored once, read back with a piecewise-quadratic fit
// over an odd number of points so adjacent segments share their end points.
package interp
