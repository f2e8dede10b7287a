// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"
)

// MinDB is the floor reported for silent signals.
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// Multiply scales each sample by the matching entry of gains, as an
// audio-rate gain parameter does. Extra samples beyond len(gains) are left
// untouched.
func Multiply(buffer, gains []float32) {
	n := len(buffer)
	if len(gains) < n {
		n = len(gains)
	}
	for i := 0; i < n; i++ {
		buffer[i] *= gains[i]
	}
}

// HardClip applies hard clipping to limit signal amplitude.
func HardClip(input, threshold float32) float32 {
	if input > threshold {
		return threshold
	}
	if input < -threshold {
		return -threshold
	}
	return input
}

// HardClipBuffer applies hard clipping to an entire buffer.
func HardClipBuffer(buffer []float32, threshold float32) {
	for i := range buffer {
		buffer[i] = HardClip(buffer[i], threshold)
	}
}
