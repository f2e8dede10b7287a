// Package delay provides delay line implementations for audio effects
package delay

// Line implements a basic delay line with linear interpolation
type Line struct {
	buffer     []float32
	bufferSize int
	writePos   int
	sampleRate float64
}

// New creates a new delay line with the specified maximum delay time
func New(maxDelaySeconds, sampleRate float64) *Line {
	bufferSize := int(maxDelaySeconds*sampleRate) + 2
	return &Line{
		buffer:     make([]float32, bufferSize),
		bufferSize: bufferSize,
		writePos:   0,
		sampleRate: sampleRate,
	}
}

// MaxDelaySamples returns the longest delay the line can hold
func (d *Line) MaxDelaySamples() float64 {
	return float64(d.bufferSize - 1)
}

// Write adds a sample to the delay line
func (d *Line) Write(sample float32) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= d.bufferSize {
		d.writePos = 0
	}
}

// WriteBuffer appends a block of samples - no allocations
func (d *Line) WriteBuffer(samples []float32) {
	for _, s := range samples {
		d.Write(s)
	}
}

// read gets a delayed sample (delay in samples, measured back from the next
// write position). Delays are clamped to [1, MaxDelaySamples].
func (d *Line) read(delaySamples float64) float32 {
	if delaySamples < 1 {
		delaySamples = 1
	}
	if limit := d.MaxDelaySamples(); delaySamples > limit {
		delaySamples = limit
	}

	// Calculate read position
	readPos := float64(d.writePos) - delaySamples
	if readPos < 0 {
		readPos += float64(d.bufferSize)
	}

	// Linear interpolation
	readPosInt := int(readPos)
	frac := float32(readPos - float64(readPosInt))

	// Get two samples for interpolation
	s1 := d.buffer[readPosInt%d.bufferSize]
	s2 := d.buffer[(readPosInt+1)%d.bufferSize]

	return s1*(1.0-frac) + s2*frac
}

// ReadAhead reads the output for the sample `ahead` positions after the
// next write, before those samples are written. A block renderer uses it to
// produce a whole block of output ahead of the block's input, which is valid
// while delaySamples exceeds the block length.
func (d *Line) ReadAhead(delaySamples float64, ahead int) float32 {
	return d.read(delaySamples - float64(ahead))
}
