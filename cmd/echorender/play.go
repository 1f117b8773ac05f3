package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

func playClip(c *clip) error {
	otoContextOptions := &oto.NewContextOptions{
		SampleRate:   c.sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	}
	ctx, readyChan, err := oto.NewContext(otoContextOptions)
	if err != nil {
		return err
	}
	<-readyChan

	logger.Info("playing", "seconds", c.duration().Seconds())

	p := ctx.NewPlayer(bytes.NewReader(stereoFloat32LE(c)))
	p.Play()
	for p.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}

	return p.Close()
}

// stereoFloat32LE interleaves c as little-endian float32 stereo. Mono is
// duplicated; channels past the second are folded into left and right
// alternately.
func stereoFloat32LE(c *clip) []byte {
	frames := c.frames()
	out := make([]byte, frames*2*4)

	for i := range frames {
		var l, r float64
		switch len(c.channels) {
		case 0:
		case 1:
			l = c.channels[0][i]
			r = l
		default:
			for ch, samples := range c.channels {
				if ch%2 == 0 {
					l += samples[i]
				} else {
					r += samples[i]
				}
			}
		}

		binary.LittleEndian.PutUint32(out[i*8:], math.Float32bits(float32(l)))
		binary.LittleEndian.PutUint32(out[i*8+4:], math.Float32bits(float32(r)))
	}

	return out
}
