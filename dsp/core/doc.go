// Package core holds small numeric helpers and processing options shared by
// the echo DSP packages.
package core
