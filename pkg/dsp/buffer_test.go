package dsp

import (
	"math"
	"testing"
)

func TestBufferHelpers(t *testing.T) {
	buf := []float32{0.5, -1, 1.5}

	Add(buf, []float32{0.5, 1})
	if buf[0] != 1 || buf[1] != 0 || buf[2] != 1.5 {
		t.Errorf("Add = %v", buf)
	}

	if got := Peak(buf); got != 1.5 {
		t.Errorf("Peak = %f, want 1.5", got)
	}

	Clear(buf)
	for i, s := range buf {
		if s != 0 {
			t.Errorf("Clear left buf[%d] = %f", i, s)
		}
	}
}

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %f", got)
	}

	square := []float32{1, -1, 1, -1}
	if got := RMS(square); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("RMS(square) = %f, want 1", got)
	}
}
