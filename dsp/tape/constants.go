package tape

const (
	// MinDelaySeconds is the shortest loop length.
	MinDelaySeconds = 0.1
	// MaxDelaySeconds is the longest loop length.
	MaxDelaySeconds = 10.0
	// DefaultDelaySeconds is the loop length of a freshly initialized tap.
	DefaultDelaySeconds = 1.0

	// CrossoverSeconds is the window behind the record head over which reads
	// fade into the sample one loop length further back.
	CrossoverSeconds = 0.05

	// ReverseRate is the speed of the reverse playback head relative to real
	// time. Against a record head moving forward at 1x, the net read speed is
	// -1x; the resulting flutter at wrap points is intended.
	ReverseRate = 2.0

	// RecordCeiling is the absolute sample value above which a write is
	// treated as an overload.
	RecordCeiling = 100.0

	// RecoverySeconds is how long a loop stays silent after an overload.
	RecoverySeconds = 1.0

	// DefaultRecoverySamples is the recovery length used before the sample
	// rate is known.
	DefaultRecoverySamples = 48000

	// MinSampleRate is the lowest sample rate a loop accepts.
	MinSampleRate = 1000.0

	// MaxMotorSpeed bounds how fast the actual delay time may change, in
	// delay-seconds per second of real time.
	MaxMotorSpeed = 0.9

	// cushion gives the interpolators room around the buffer boundary.
	cushion = 16
)
