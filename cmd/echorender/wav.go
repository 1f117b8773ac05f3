package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/echo"
)

const wavFormatPCM = 1

func readWAV(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := decodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

func decodeWAV(r io.ReadSeeker) (*clip, error) {
	d := wav.NewDecoder(r)

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	if buf.Format == nil {
		return nil, errors.New("decode wav: missing format chunk")
	}

	nc := buf.Format.NumChannels
	if nc < 1 || nc > echo.MaxChannels {
		return nil, fmt.Errorf("channel count must be in [1, %d]: %d", echo.MaxChannels, nc)
	}

	bits := buf.SourceBitDepth
	if bits != 16 && bits != 24 && bits != 32 {
		return nil, fmt.Errorf("unsupported bit depth: %d", bits)
	}

	scale := 1 / float64(int64(1)<<(bits-1))
	frames := len(buf.Data) / nc
	c := newClip(buf.Format.SampleRate, nc, frames)
	for i := range frames {
		for ch := range nc {
			c.channels[ch][i] = float64(buf.Data[i*nc+ch]) * scale
		}
	}

	return c, nil
}

func writeWAV(path string, c *clip, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encodeWAV(f, c, bitDepth); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

func encodeWAV(w io.WriteSeeker, c *clip, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("bit depth must be 16, 24 or 32: %d", bitDepth)
	}

	nc := len(c.channels)
	if nc == 0 {
		return errors.New("no channels to write")
	}

	peak := float64(int64(1)<<(bitDepth-1) - 1)
	frames := c.frames()
	data := make([]int, frames*nc)
	for i := range frames {
		for ch := range nc {
			data[i*nc+ch] = int(math.Round(core.Clamp(c.channels[ch][i], -1, 1) * peak))
		}
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nc, SampleRate: c.sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	e := wav.NewEncoder(w, c.sampleRate, bitDepth, nc, wavFormatPCM)
	if err := e.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}

	return e.Close()
}
