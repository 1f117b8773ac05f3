package tape

import (
	"math"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/interp"
)

// Loop is a circular tape buffer for one audio channel.
//
// The buffer is sized for MaxDelaySeconds plus the crossover window at the
// current sample rate and is only reallocated when the sample rate changes.
type Loop struct {
	buffer            []float64
	recordIndex       int
	sampleRate        float64
	delayTimeSec      float64
	reverseHead       float64
	recoveryCountdown int

	motor *Motor
	kind  interp.Kind
	sinc  *interp.SincTable
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithInterpolator selects the read kernel.
func WithInterpolator(kind interp.Kind) LoopOption {
	return func(l *Loop) {
		l.SetInterpolator(kind)
	}
}

// WithMotor replaces the default motor.
func WithMotor(m *Motor) LoopOption {
	return func(l *Loop) {
		if m != nil {
			l.motor = m
		}
	}
}

// NewLoop returns an empty loop. No buffer is allocated until the first
// successful SetDelayTime call tells the loop its sample rate.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		motor: NewMotor(),
		kind:  interp.Linear,
		sinc:  interp.DefaultSincTable(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l
}

// SetInterpolator selects the read kernel. Unknown kinds are ignored.
func (l *Loop) SetInterpolator(kind interp.Kind) {
	if kind.Valid() {
		l.kind = kind
	}
}

// Interpolator returns the read kernel.
func (l *Loop) Interpolator() interp.Kind { return l.kind }

// Motor returns the loop's delay-time motor.
func (l *Loop) Motor() *Motor { return l.motor }

// Len returns the buffer length in samples.
func (l *Loop) Len() int { return len(l.buffer) }

// SampleRate returns the sample rate the buffer is sized for, or 0.
func (l *Loop) SampleRate() float64 { return l.sampleRate }

// DelayTime returns the actual (motor-smoothed) delay time in seconds.
func (l *Loop) DelayTime() float64 { return l.delayTimeSec }

// Recovering reports whether the loop is silenced after an overload.
func (l *Loop) Recovering() bool { return l.recoveryCountdown > 0 }

// ReversePlaybackHead returns the reverse head position in seconds.
func (l *Loop) ReversePlaybackHead() float64 { return l.reverseHead }

// SetDelayTime requests a new delay time. It returns false and changes
// nothing when seconds is not finite or the sample rate is below
// MinSampleRate. A sample-rate change resizes and clears the buffer.
func (l *Loop) SetDelayTime(seconds, sampleRateHz float64) bool {
	if !core.IsFinite(seconds) {
		return false
	}

	if !core.IsFinite(sampleRateHz) || sampleRateHz < MinSampleRate {
		return false
	}

	if sampleRateHz != l.sampleRate {
		l.sampleRate = sampleRateHz
		l.resize()
	}

	l.delayTimeSec = l.motor.Process(seconds, sampleRateHz)

	return true
}

// Write records sample*gain at the record head and advances it.
//
// A non-finite sample, or one whose magnitude exceeds RecordCeiling, clears
// the whole buffer and starts a recovery period of RecoverySeconds during
// which silence is recorded. Write returns false while recovering.
func (l *Loop) Write(sample, gain float64) bool {
	if l.recoveryCountdown > 0 {
		l.recoveryCountdown--
		l.record(0)

		return false
	}

	if !core.IsFinite(sample) || math.Abs(sample) > RecordCeiling {
		l.Clear()
		l.recoveryCountdown = l.recoverySamples()
		l.record(0)

		return false
	}

	l.record(core.FlushDenormals(sample * gain))

	return true
}

// ReadForward returns the sample one loop length behind the record head.
func (l *Loop) ReadForward() float64 {
	return l.Recall(0)
}

// ReadReverse returns the sample under the reverse playback head.
func (l *Loop) ReadReverse() float64 {
	return l.Recall(l.reverseHead)
}

// UpdateReversePlaybackHead advances the reverse head by one sample period
// at ReverseRate, wrapping modulo the delay time.
func (l *Loop) UpdateReversePlaybackHead() {
	if l.sampleRate <= 0 || l.delayTimeSec <= 0 {
		return
	}

	l.reverseHead = core.Wrap(l.reverseHead+ReverseRate/l.sampleRate, l.delayTimeSec)
}

// Recall reads the tape secondsIntoPast behind the record head, modulo the
// delay time; an offset of zero means one full loop length.
// Within CrossoverSeconds of the record head the result fades linearly into
// the value one loop length further back, hiding the seam where new
// material meets old.
func (l *Loop) Recall(secondsIntoPast float64) float64 {
	if len(l.buffer) == 0 || l.delayTimeSec <= 0 {
		return 0
	}

	d := l.delayTimeSec
	offset := core.Wrap(secondsIntoPast, d)
	if offset == 0 {
		offset = d
	}

	v := l.interpolate(offset)
	if offset < CrossoverSeconds {
		w := offset / CrossoverSeconds
		v = w*v + (1-w)*l.interpolate(offset+d)
	}

	return v
}

// Clear zeros the buffer without moving the heads.
func (l *Loop) Clear() {
	for i := range l.buffer {
		l.buffer[i] = 0
	}
}

// Reset clears the buffer, the heads, the motor and any overload state.
// The buffer allocation is kept.
func (l *Loop) Reset() {
	l.Clear()
	l.recordIndex = 0
	l.reverseHead = 0
	l.recoveryCountdown = 0
	l.delayTimeSec = 0
	l.motor.Reset()
}

func (l *Loop) resize() {
	n := int(math.Ceil(l.sampleRate*(MaxDelaySeconds+CrossoverSeconds))) + cushion
	if cap(l.buffer) >= n {
		l.buffer = l.buffer[:n]
	} else {
		l.buffer = make([]float64, n)
	}

	l.Clear()
	l.recordIndex = 0
	l.reverseHead = 0
}

func (l *Loop) recoverySamples() int {
	if l.sampleRate < MinSampleRate {
		return DefaultRecoverySamples
	}

	return int(math.Round(RecoverySeconds * l.sampleRate))
}

func (l *Loop) record(x float64) {
	if len(l.buffer) == 0 {
		return
	}

	l.buffer[l.recordIndex] = x
	l.recordIndex++
	if l.recordIndex >= len(l.buffer) {
		l.recordIndex = 0
	}
}

// at returns the sample at an absolute position, wrapping in both directions.
func (l *Loop) at(position int) float64 {
	n := len(l.buffer)
	i := position % n
	if i < 0 {
		i += n
	}

	return l.buffer[i]
}

// interpolate reads secondsBack behind the record head.
func (l *Loop) interpolate(secondsBack float64) float64 {
	pos := float64(l.recordIndex) - secondsBack*l.sampleRate
	base := math.Floor(pos)
	frac := pos - base
	i0 := int(base)

	if l.kind == interp.Sinc {
		var w interp.SincWindow
		for k := -interp.SincHalfWidth; k <= interp.SincHalfWidth; k++ {
			w[k+interp.SincHalfWidth] = l.at(i0 + k)
		}

		return l.sinc.Interpolate(frac, &w)
	}

	return interp.Linear2(frac, l.at(i0), l.at(i0+1))
}
