package analysis

import (
	"math"
	"sync"

	"github.com/sonikatlas/sonik/pkg/dsp"
	"github.com/sonikatlas/sonik/pkg/dsp/gain"
)

// PeakMeter measures peak signal levels with a 20 dB/s fall-back.
type PeakMeter struct {
	peak       float64
	decayRate  float64
	sampleRate float64
	mu         sync.Mutex
}

// NewPeakMeter creates a new peak meter
func NewPeakMeter(sampleRate float64) *PeakMeter {
	return &PeakMeter{
		sampleRate: sampleRate,
		decayRate:  20.0, // dB/second
	}
}

// Process updates the peak meter with a rendered block
func (pm *PeakMeter) Process(samples []float32) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	blockPeak := float64(dsp.Peak(samples))

	decayPerSample := pm.decayRate / pm.sampleRate / 20.0 * math.Ln10
	pm.peak *= math.Exp(-decayPerSample * float64(len(samples)))

	if blockPeak > pm.peak {
		pm.peak = blockPeak
	}
}

// GetPeak returns the current peak level (linear)
func (pm *PeakMeter) GetPeak() float64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.peak
}

// RMSMeter measures RMS (Root Mean Square) levels over a sliding window
type RMSMeter struct {
	windowSize int
	buffer     []float64
	writePos   int
	sum        float64
	count      int
	mu         sync.Mutex
}

// NewRMSMeter creates a new RMS meter with specified window size
func NewRMSMeter(windowSizeSamples int) *RMSMeter {
	if windowSizeSamples < 1 {
		windowSizeSamples = 1
	}
	return &RMSMeter{
		windowSize: windowSizeSamples,
		buffer:     make([]float64, windowSizeSamples),
	}
}

// Process updates the RMS meter with new samples
func (rm *RMSMeter) Process(samples []float32) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for _, s := range samples {
		sample := float64(s)
		oldValue := rm.buffer[rm.writePos]
		rm.sum -= oldValue * oldValue

		rm.buffer[rm.writePos] = sample
		rm.sum += sample * sample

		rm.writePos = (rm.writePos + 1) % rm.windowSize
		if rm.count < rm.windowSize {
			rm.count++
		}
	}
}

// GetRMS returns the current RMS level (linear)
func (rm *RMSMeter) GetRMS() float64 {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.count == 0 || rm.sum <= 0 {
		return 0
	}
	return math.Sqrt(rm.sum / float64(rm.count))
}

// Level is the peak and RMS of one analysis window.
type Level struct {
	Start float64 // in windows; seconds when the window is one second long
	Peak  float64
	RMS   float64
}

// PeakDB returns the window peak in dBFS.
func (l Level) PeakDB() float64 { return gain.LinearToDb(l.Peak) }

// RMSDB returns the window RMS in dBFS.
func (l Level) RMSDB() float64 { return gain.LinearToDb(l.RMS) }

// Measure splits samples into windows of window frames and reports the
// level of each. A trailing partial window is included.
func Measure(samples []float32, window int) []Level {
	if window < 1 || len(samples) == 0 {
		return nil
	}
	levels := make([]Level, 0, (len(samples)+window-1)/window)
	for start := 0; start < len(samples); start += window {
		end := start + window
		if end > len(samples) {
			end = len(samples)
		}
		chunk := samples[start:end]
		levels = append(levels, Level{
			Start: float64(start) / float64(window),
			Peak:  float64(dsp.Peak(chunk)),
			RMS:   float64(dsp.RMS(chunk)),
		})
	}
	return levels
}
