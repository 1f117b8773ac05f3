// Package tape implements the variable-length tape loop at the heart of the
// echo: a circular buffer per channel, a motor model that turns requested
// delay times into click-free actual delay times, forward and reverse
// playback heads, crossfaded wrap-around reads and overload recovery.
package tape
