// Package filter provides digital signal processing filters
package filter

import "math"

// Kind selects a biquad response
type Kind int

const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
)

// Biquad implements a second-order IIR filter (biquad)
// Direct Form I implementation with pre-allocated state
type Biquad struct {
	// Normalised so a0 is 1
	a1, a2     float32
	b0, b1, b2 float32

	// State variables (per-channel)
	x1, x2 []float32 // input delay line
	y1, y2 []float32 // output delay line

	// Last design, so per-block reconfiguration with unchanged
	// parameters costs nothing
	kind       Kind
	sampleRate float64
	frequency  float64
	q          float64
	designed   bool
}

// NewBiquad creates a new biquad filter for the specified number of channels
func NewBiquad(channels int) *Biquad {
	return &Biquad{
		b0: 1,
		x1: make([]float32, channels),
		x2: make([]float32, channels),
		y1: make([]float32, channels),
		y2: make([]float32, channels),
	}
}

// Configure designs the filter unless kind, rate, frequency and q match the
// previous design. The frequency is clamped below Nyquist.
func (b *Biquad) Configure(kind Kind, sampleRate, frequency, q float64) {
	if b.designed && kind == b.kind && sampleRate == b.sampleRate &&
		frequency == b.frequency && q == b.q {
		return
	}
	b.kind, b.sampleRate, b.frequency, b.q = kind, sampleRate, frequency, q
	b.designed = true

	f := math.Max(1, math.Min(frequency, sampleRate/2*0.999))
	if q <= 0 {
		q = 0.0001
	}

	// RBJ cookbook; bandpass is the constant 0 dB peak form.
	w := 2 * math.Pi * f / sampleRate
	cosw := math.Cos(w)
	alpha := math.Sin(w) / (2 * q)

	var n0, n1, n2 float64
	switch kind {
	case KindHighpass:
		n0, n1, n2 = (1+cosw)/2, -(1 + cosw), (1+cosw)/2
	case KindBandpass:
		n0, n1, n2 = alpha, 0, -alpha
	default:
		n0, n1, n2 = (1-cosw)/2, 1-cosw, (1-cosw)/2
	}
	norm := 1 + alpha
	b.b0 = float32(n0 / norm)
	b.b1 = float32(n1 / norm)
	b.b2 = float32(n2 / norm)
	b.a1 = float32(-2 * cosw / norm)
	b.a2 = float32((1 - alpha) / norm)
}

// Process applies the filter to a buffer (single channel) - no allocations
func (b *Biquad) Process(buffer []float32, channel int) {
	// Get state for this channel
	x1 := b.x1[channel]
	x2 := b.x2[channel]
	y1 := b.y1[channel]
	y2 := b.y2[channel]

	for i := range buffer {
		x0 := buffer[i]

		// Direct Form I
		y0 := b.b0*x0 + b.b1*x1 + b.b2*x2 - b.a1*y1 - b.a2*y2

		// Update state
		x2 = x1
		x1 = x0
		y2 = y1
		y1 = y0

		buffer[i] = y0
	}

	// Save state
	b.x1[channel] = x1
	b.x2[channel] = x2
	b.y1[channel] = y1
	b.y2[channel] = y2
}
