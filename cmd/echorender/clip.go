package main

import "time"

// clip is planar audio normalised to [-1, 1].
type clip struct {
	sampleRate int
	channels   [][]float64
}

func newClip(sampleRate, numChannels, frames int) *clip {
	c := &clip{sampleRate: sampleRate, channels: make([][]float64, numChannels)}
	for i := range c.channels {
		c.channels[i] = make([]float64, frames)
	}

	return c
}

func (c *clip) frames() int {
	if len(c.channels) == 0 {
		return 0
	}

	return len(c.channels[0])
}

func (c *clip) duration() time.Duration {
	if c.sampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(c.frames()) / float64(c.sampleRate) * float64(time.Second))
}
