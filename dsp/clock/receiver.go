package clock

import "math"

const (
	// TriggerHighVoltage is the level a rising voltage must reach to fire a trigger.
	TriggerHighVoltage = 1.0
	// TriggerLowVoltage is the level a voltage must fall below to re-arm the receiver.
	TriggerLowVoltage = 0.1
	// TriggerDeadTimeSeconds suppresses triggers arriving this soon after the previous one.
	TriggerDeadTimeSeconds = 0.001
)

// Receiver is a hysteresis gate/trigger detector.
//
// The gate opens when the voltage rises past TriggerHighVoltage and closes
// when it falls below TriggerLowVoltage. A trigger is reported on the
// sample where a closed gate opens, unless it falls inside the dead time
// of the previous trigger.
type Receiver struct {
	prev    float64
	gate    bool
	trigger bool
	seen    bool
	elapsed int
}

// Reset returns the receiver to its initial closed state.
func (r *Receiver) Reset() {
	*r = Receiver{}
}

// Update consumes one voltage sample and reports whether it fired a trigger.
func (r *Receiver) Update(voltage, sampleRateHz float64) bool {
	r.trigger = false
	r.elapsed++

	if math.IsNaN(voltage) {
		voltage = 0
	}

	switch {
	case r.prev < TriggerHighVoltage && voltage >= TriggerHighVoltage:
		if !r.gate && (!r.seen || r.elapsed >= deadTimeSamples(sampleRateHz)) {
			r.trigger = true
			r.seen = true
			r.elapsed = 0
		}
		r.gate = true
	case r.prev >= TriggerLowVoltage && voltage < TriggerLowVoltage:
		r.gate = false
	}

	r.prev = voltage

	return r.trigger
}

// Gate reports whether the gate is open.
func (r *Receiver) Gate() bool { return r.gate }

// Triggered reports whether the most recent Update fired a trigger.
func (r *Receiver) Triggered() bool { return r.trigger }

// Seen reports whether any trigger has fired since the last Reset.
func (r *Receiver) Seen() bool { return r.seen }

// SamplesSinceTrigger returns the number of samples since the last trigger,
// or since the last Reset if none has fired.
func (r *Receiver) SamplesSinceTrigger() int { return r.elapsed }

func deadTimeSamples(sampleRateHz float64) int {
	if sampleRateHz <= 0 {
		return 0
	}

	return int(math.Round(TriggerDeadTimeSeconds * sampleRateHz))
}
