package echo

import (
	"github.com/cwbudde/algo-echo/dsp/clock"
	"github.com/cwbudde/algo-echo/dsp/envelope"
	"github.com/cwbudde/algo-echo/dsp/tape"
)

// ChannelInfo is the per-channel state of a loop unit.
type ChannelInfo struct {
	Loop  *tape.Loop
	Clock clock.Sync
	Env   envelope.Follower
}

// Reset clears the loop, the clock measurement and the envelope. The
// loop's buffer allocation is kept.
func (ci *ChannelInfo) Reset() {
	if ci.Loop != nil {
		ci.Loop.Reset()
	}

	ci.Clock.Reset()
	ci.Env.Reset()
}
