// Package clock turns an external clock voltage into a delay time.
//
// A [Receiver] detects rising edges with hysteresis. A [Sync] measures the
// period between edges (pulse-train format) or converts a rate voltage
// (1 V/oct format), and flags the clock as dead when edges stop arriving.
// [PickClosestFraction] snaps a clock multiplier onto one of 17 rhythmically
// meaningful ratios.
package clock
