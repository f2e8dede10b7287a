package gain

import (
	"math"
	"testing"
)

func TestDbConversion(t *testing.T) {
	tests := []struct {
		name    string
		linear  float64
		db      float64
		epsilon float64
	}{
		{"Unity gain", 1.0, 0.0, 0.001},
		{"Half amplitude", 0.5, -6.02, 0.01},
		{"Master level", 0.3, -10.46, 0.01},
		{"Zero amplitude", 0.0, MinDB, 0.001},
		{"Negative amplitude", -1.0, MinDB, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDb := LinearToDb(tt.linear)
			if math.Abs(gotDb-tt.db) > tt.epsilon {
				t.Errorf("LinearToDb(%f) = %f, want %f", tt.linear, gotDb, tt.db)
			}
		})
	}
}

func TestMultiply(t *testing.T) {
	buffer := []float32{1, 1, 1, 1}
	Multiply(buffer, []float32{0, 0.5, 1})

	expected := []float32{0, 0.5, 1, 1}
	for i, v := range buffer {
		if v != expected[i] {
			t.Errorf("Multiply: buffer[%d] = %f, want %f", i, v, expected[i])
		}
	}
}

func TestHardClipBuffer(t *testing.T) {
	buffer := []float32{0.5, 1.5, -1.5, 0}
	HardClipBuffer(buffer, 1)

	expected := []float32{0.5, 1, -1, 0}
	for i, v := range buffer {
		if v != expected[i] {
			t.Errorf("HardClipBuffer: buffer[%d] = %f, want %f", i, v, expected[i])
		}
	}
}

func TestHardClip(t *testing.T) {
	tests := []struct {
		input     float32
		threshold float32
		expected  float32
	}{
		{0.5, 1.0, 0.5},
		{1.5, 1.0, 1.0},
		{-1.5, 1.0, -1.0},
		{0.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		result := HardClip(tt.input, tt.threshold)
		if result != tt.expected {
			t.Errorf("HardClip(%f, %f) = %f, want %f", tt.input, tt.threshold, result, tt.expected)
		}
	}
}

func BenchmarkMultiply(b *testing.B) {
	buffer := make([]float32, 128)
	gains := make([]float32, 128)
	for i := range gains {
		gains[i] = 0.5
	}
	for i := 0; i < b.N; i++ {
		Multiply(buffer, gains)
	}
}
