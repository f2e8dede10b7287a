// Package distortion provides nonlinear waveshaping as sampled transfer
// curves, the form a graph waveshaper node reads.
package distortion

import (
	"math"
)

// Curve is a transfer function sampled uniformly over [-1, 1]
type Curve []float32

// Sigmoid samples the rational sigmoid (pi+k)x/(pi+k|x|) into an n-point
// curve, where drive is k. Large k gives a harsh, nearly square transfer.
func Sigmoid(n int, drive float64) Curve {
	if n < 2 {
		n = 2
	}
	k := math.Max(0, drive)
	c := make(Curve, n)
	for i := range c {
		x := float64(i)*2.0/float64(n) - 1.0
		c[i] = float32((math.Pi + k) * x / (math.Pi + k*math.Abs(x)))
	}
	return c
}

// Shape maps x through the curve with linear interpolation. Inputs beyond
// [-1, 1] take the end values. An empty curve passes x through.
func (c Curve) Shape(x float32) float32 {
	n := len(c)
	if n == 0 {
		return x
	}
	if n == 1 {
		return c[0]
	}
	v := float64(n-1) / 2.0 * (float64(x) + 1.0)
	if v <= 0 {
		return c[0]
	}
	if v >= float64(n-1) {
		return c[n-1]
	}
	k := int(v)
	f := float32(v - float64(k))
	return c[k]*(1-f) + c[k+1]*f
}

// Process shapes a buffer in place - no allocations
func (c Curve) Process(buffer []float32) {
	if len(c) == 0 {
		return
	}
	for i, s := range buffer {
		buffer[i] = c.Shape(s)
	}
}
