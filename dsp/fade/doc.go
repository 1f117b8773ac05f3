// Package fade provides click-avoidance primitives.
//
// A [Crossfader] blends linearly between two values whenever its boolean
// target flips. A [Smoother] ducks a gain to zero, runs a callback at the
// silent point, and ramps back to unity; it hides any discontinuous state
// change such as clearing a buffer or switching a routing mode.
package fade
