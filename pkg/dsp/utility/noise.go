// Package utility provides common DSP utility functions and processors.
package utility

import (
	"math/rand"
)

// NoiseGenerator generates white noise from an injected random source, so
// a seeded source reproduces the same table.
type NoiseGenerator struct {
	rand *rand.Rand
}

// NewNoiseGenerator creates a new noise generator drawing from rng. A nil
// rng uses a source seeded from the global generator.
func NewNoiseGenerator(rng *rand.Rand) *NoiseGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &NoiseGenerator{rand: rng}
}

// Next generates a sample in [-1, 1).
func (n *NoiseGenerator) Next() float32 {
	return float32(n.rand.Float64()*2.0 - 1.0)
}

// Generate fills a buffer with noise.
func (n *NoiseGenerator) Generate(buffer []float32) {
	for i := range buffer {
		buffer[i] = n.Next()
	}
}

// Table allocates and fills a noise table of the given length.
func (n *NoiseGenerator) Table(length int) []float32 {
	if length < 0 {
		length = 0
	}
	buf := make([]float32, length)
	n.Generate(buf)
	return buf
}
