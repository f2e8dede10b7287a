package analysis

import (
	"math"
	"testing"

	"github.com/sonikatlas/sonik/pkg/dsp/gain"
)

func TestPeakMeter(t *testing.T) {
	pm := NewPeakMeter(44100.0)
	if pm.GetPeak() != 0 {
		t.Errorf("Empty meter peak = %f", pm.GetPeak())
	}

	pm.Process([]float32{0.1, 0.5, 0.3, -0.7, 0.2})

	if peak := pm.GetPeak(); math.Abs(peak-0.7) > 0.001 {
		t.Errorf("Peak mismatch: expected 0.7, got %f", peak)
	}
}

func TestPeakMeterDecay(t *testing.T) {
	sampleRate := 44100.0
	pm := NewPeakMeter(sampleRate)

	pm.Process([]float32{1.0})
	initialPeak := pm.GetPeak()

	pm.Process(make([]float32, int(0.1*sampleRate)))

	decayedPeak := pm.GetPeak()
	if decayedPeak >= initialPeak {
		t.Fatalf("Peak didn't decay: initial %f, after decay %f", initialPeak, decayedPeak)
	}

	// 20 dB/s over 100 ms
	expectedDB := gain.LinearToDb(initialPeak) - 2.0
	if actualDB := gain.LinearToDb(decayedPeak); math.Abs(actualDB-expectedDB) > 0.5 {
		t.Errorf("Decay amount incorrect: expected ~%f dB, got %f dB", expectedDB, actualDB)
	}
}

func TestRMSMeter(t *testing.T) {
	rm := NewRMSMeter(4)

	if rm.GetRMS() != 0 {
		t.Errorf("Empty meter RMS = %f", rm.GetRMS())
	}

	rm.Process([]float32{0.5, -0.5, 0.5, -0.5})
	if got := rm.GetRMS(); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("RMS = %f, want 0.5", got)
	}

	// window slides past the first block
	rm.Process([]float32{1, 1, 1, 1})
	if got := rm.GetRMS(); math.Abs(got-1) > 1e-6 {
		t.Errorf("RMS after slide = %f, want 1", got)
	}
}

func TestMeasure(t *testing.T) {
	samples := make([]float32, 10)
	for i := 0; i < 4; i++ {
		samples[i] = 0.5
	}
	samples[9] = -1

	levels := Measure(samples, 4)
	if len(levels) != 3 {
		t.Fatalf("len(levels) = %d, want 3", len(levels))
	}
	if levels[0].Peak != 0.5 || math.Abs(levels[0].RMS-0.5) > 1e-6 {
		t.Errorf("window 0 = %+v", levels[0])
	}
	if levels[1].Peak != 0 || levels[1].RMSDB() != gain.MinDB {
		t.Errorf("window 1 should be silent: %+v", levels[1])
	}
	if levels[2].Peak != 1 || levels[2].Start != 2 {
		t.Errorf("window 2 = %+v", levels[2])
	}

	if Measure(nil, 4) != nil || Measure(samples, 0) != nil {
		t.Error("Measure should return nil for empty input or window")
	}
}
