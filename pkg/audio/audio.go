// Package audio defines the rendering-context surface shared by every
// backend: the pure Go graph engine, the browser Web Audio binding and any
// test double.
//
// Times are seconds on the context's monotonic clock. Nodes are created by a
// Context and may only be connected to nodes and parameters of the same
// Context.
package audio

import "errors"

var (
	// ErrUnsupported reports that no real-time audio output is available.
	ErrUnsupported = errors.New("audio: platform unsupported")

	// ErrInvalidState reports an operation that is illegal in the node's or
	// context's current state, such as stopping a node that already ended.
	ErrInvalidState = errors.New("audio: invalid state")

	// ErrForeignNode reports a connection between different contexts.
	ErrForeignNode = errors.New("audio: node belongs to another context")
)

// State is the lifecycle state of a rendering context.
type State int

const (
	// StateSuspended renders silence and holds the clock.
	StateSuspended State = iota
	// StateRunning renders the graph and advances the clock.
	StateRunning
	// StateClosed is terminal.
	StateClosed
)

// String returns the Web Audio name of the state.
func (s State) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Waveform selects an oscillator timbre.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// String returns the Web Audio oscillator type name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// FilterType selects a biquad response.
type FilterType int

const (
	Lowpass FilterType = iota
	Highpass
	Bandpass
)

// String returns the Web Audio filter type name.
func (f FilterType) String() string {
	switch f {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return "unknown"
	}
}

// Param is an automatable node parameter. Node outputs connected to a Param
// are added to its automated value every sample.
type Param interface {
	Value() float64
	SetValue(v float64)
	SetValueAtTime(v, t float64)
	LinearRampToValueAtTime(v, t float64)
	ExponentialRampToValueAtTime(v, t float64)
	// CancelScheduledValues drops every event at or after t.
	CancelScheduledValues(t float64)
}

// Node is any unit of the processing graph.
type Node interface {
	Connect(dst Node) error
	ConnectParam(dst Param) error
	// Disconnect removes every outgoing connection.
	Disconnect()
}

// Scheduled is a source node with a start and stop time.
type Scheduled interface {
	Node
	Start(when float64) error
	Stop(when float64) error
}

// Oscillator is a periodic source.
type Oscillator interface {
	Scheduled
	SetType(w Waveform)
	Frequency() Param
}

// Gain scales its summed input.
type Gain interface {
	Node
	Gain() Param
}

// BiquadFilter is a second order filter.
type BiquadFilter interface {
	Node
	SetType(t FilterType)
	Frequency() Param
	Q() Param
}

// Delay is a delay line. It is the only node allowed inside a cycle.
type Delay interface {
	Node
	DelayTime() Param
}

// BufferSource plays a mono sample buffer once.
type BufferSource interface {
	Scheduled
	SetBuffer(samples []float32)
}

// WaveShaper maps its input through a transfer curve.
type WaveShaper interface {
	Node
	SetCurve(curve []float32)
}

// Context owns the clock, the output bus and every node it creates.
type Context interface {
	SampleRate() float64
	CurrentTime() float64
	State() State
	Resume() error
	Destination() Node

	NewOscillator() Oscillator
	NewGain() Gain
	NewBiquadFilter() BiquadFilter
	NewDelay(maxSeconds float64) Delay
	NewBufferSource() BufferSource
	NewWaveShaper() WaveShaper
}
