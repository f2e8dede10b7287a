// Package oscillator provides audio oscillators for synthesis
package oscillator

import "math"

// Shape selects the waveform produced by Next.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSquare
	ShapeSaw
	ShapeTriangle
)

// Oscillator generates periodic waveforms
type Oscillator struct {
	sampleRate float64
	frequency  float64
	phase      float64
	phaseInc   float64
}

// New creates a new oscillator
func New(sampleRate float64) *Oscillator {
	return &Oscillator{
		sampleRate: sampleRate,
		frequency:  440.0,
		phase:      0.0,
		phaseInc:   440.0 / sampleRate,
	}
}

// SetFrequency sets the oscillator frequency
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.phaseInc = freq / o.sampleRate
}

// updatePhase advances the phase and wraps it. A negative increment, which
// frequency modulation can produce, runs the phase backwards.
func (o *Oscillator) updatePhase() {
	o.phase += o.phaseInc
	if o.phase >= 1.0 || o.phase < 0.0 {
		o.phase -= math.Floor(o.phase)
	}
}

// Sine generates a sine wave sample
func (o *Oscillator) Sine() float32 {
	sample := float32(math.Sin(2.0 * math.Pi * o.phase))
	o.updatePhase()
	return sample
}

// Saw generates a sawtooth wave sample
func (o *Oscillator) Saw() float32 {
	sample := float32(2.0*o.phase - 1.0)
	o.updatePhase()
	return sample
}

// Square generates a square wave sample
func (o *Oscillator) Square() float32 {
	var sample float32
	if o.phase < 0.5 {
		sample = 1.0
	} else {
		sample = -1.0
	}
	o.updatePhase()
	return sample
}

// Triangle generates a triangle wave sample
func (o *Oscillator) Triangle() float32 {
	var sample float32
	if o.phase < 0.5 {
		sample = float32(4.0*o.phase - 1.0)
	} else {
		sample = float32(3.0 - 4.0*o.phase)
	}
	o.updatePhase()
	return sample
}

// Next generates one sample of shape at freq. The frequency may change on
// every call, which is how audio-rate modulation reaches the oscillator.
func (o *Oscillator) Next(shape Shape, freq float64) float32 {
	if freq != o.frequency {
		o.SetFrequency(freq)
	}
	switch shape {
	case ShapeSquare:
		return o.Square()
	case ShapeSaw:
		return o.Saw()
	case ShapeTriangle:
		return o.Triangle()
	default:
		return o.Sine()
	}
}

// Process fills buffer with shape, reading one frequency per sample from
// freqs - no allocations
func (o *Oscillator) Process(shape Shape, freqs, buffer []float32) {
	for i := range buffer {
		buffer[i] = o.Next(shape, float64(freqs[i]))
	}
}
