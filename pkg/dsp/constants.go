package dsp

// Rendering constants shared by the graph engine and output devices.
const (
	// DefaultSampleRate is the rate used when no configuration overrides it.
	DefaultSampleRate = 44100

	// RenderQuantum is the number of frames rendered per graph pull.
	RenderQuantum = 128

	// Mono is the channel count of every rendered stream.
	Mono = 1

	// DefaultQ is the Butterworth quality factor used by new filters.
	DefaultQ = 0.7071

	// MasterGain is the level of the shared output gain stage.
	MasterGain = 0.3

	// ClipThreshold bounds samples handed to the device.
	ClipThreshold = 1.0
)
