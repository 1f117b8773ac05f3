package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/echo"
)

const (
	clockHighVolts    = 5.0
	clockPulseSeconds = 0.005
	secondsPerQuarter = 60.0
)

func loadChainConfig(path string) (echo.ChainConfig, error) {
	if path == "" {
		return echo.DefaultChainConfig(0), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return echo.ChainConfig{}, err
	}
	defer f.Close()

	cfg, err := echo.LoadConfig(f)
	if err != nil {
		return echo.ChainConfig{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// renderer drives a chain frame by frame and reports status changes once
// per block.
type renderer struct {
	chain    *echo.Chain
	proc     core.ProcessorConfig
	clockBPM float64

	inputs []echo.Input
	status echo.Status
}

func newRenderer(cfg echo.ChainConfig, sampleRate float64, blockSize int) (*renderer, error) {
	proc := core.ApplyProcessorOptions(core.WithSampleRate(sampleRate), core.WithBlockSize(blockSize))
	if proc.SampleRate != sampleRate {
		return nil, fmt.Errorf("sample rate must be positive: %v", sampleRate)
	}

	chain, err := echo.New(echo.WithSettings(cfg))
	if err != nil {
		return nil, err
	}

	return &renderer{chain: chain, proc: proc, inputs: make([]echo.Input, 1)}, nil
}

// clockVoltage returns the pulse clock at frame n.
func (r *renderer) clockVoltage(n int) float64 {
	period := secondsPerQuarter / r.clockBPM * r.proc.SampleRate
	phase := float64(n) - period*float64(int(float64(n)/period))
	if phase < clockPulseSeconds*r.proc.SampleRate {
		return clockHighVolts
	}

	return 0
}

// render processes in followed by tail of silence. Mono input comes out
// as stereo.
func (r *renderer) render(in *clip, tail time.Duration) *clip {
	tailFrames := max(0, int(tail.Seconds()*r.proc.SampleRate))
	total := in.frames() + tailFrames
	nc := len(in.channels)

	out := newClip(in.sampleRate, max(2, nc), total)
	head := &r.inputs[0]

	for start := 0; start < total; start += r.proc.BlockSize {
		end := min(start+r.proc.BlockSize, total)

		for n := start; n < end; n++ {
			head.Audio.Reset(nc)
			if n < in.frames() {
				for ch := range nc {
					head.Audio.Sample[ch] = in.channels[ch][n]
				}
			}

			if r.clockBPM > 0 {
				head.Clock = echo.NewFrame(r.clockVoltage(n))
			}

			outputs := r.chain.Step(r.proc.SampleRate, r.inputs)
			mix := &outputs[len(outputs)-1].Audio
			for ch := range out.channels {
				out.channels[ch][n] = mix.Poly(ch)
			}
		}

		r.report(float64(end) / r.proc.SampleRate)
	}

	return out
}

func (r *renderer) report(seconds float64) {
	s := r.chain.Status()

	if s.Overflow != r.status.Overflow {
		if s.Overflow {
			logger.Warn("loop overload, recording paused", "at", seconds)
		} else {
			logger.Info("loop recovered", "at", seconds)
		}
	}

	if s.ClockWarning != r.status.ClockWarning {
		if s.ClockWarning {
			logger.Warn("clock input dead, falling back to seconds", "at", seconds)
		} else {
			logger.Info("clock input recovered", "at", seconds)
		}
	}

	r.status = s
	logger.Debug("block", "at", seconds)
}
