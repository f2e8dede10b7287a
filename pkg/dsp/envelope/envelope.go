// Package envelope provides parameter automation timelines for audio
// synthesis: set-at-time steps and linear or exponential ramps evaluated on
// a continuous clock.
package envelope

import (
	"math"
	"sort"
)

// Kind identifies how an automation event reaches its value
type Kind int

const (
	// SetValue jumps to Value at Time
	SetValue Kind = iota
	// LinearRamp moves linearly from the previous event to Value at Time
	LinearRamp
	// ExponentialRamp moves exponentially from the previous event to Value at Time
	ExponentialRamp
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case SetValue:
		return "set"
	case LinearRamp:
		return "linear"
	case ExponentialRamp:
		return "exponential"
	default:
		return "unknown"
	}
}

// Event is one automation point
type Event struct {
	Kind  Kind
	Time  float64 // seconds
	Value float64
}

// Automation is an ordered list of events over an intrinsic value.
// The zero value is not usable; call NewAutomation.
type Automation struct {
	value  float64
	events []Event
}

// NewAutomation creates a timeline holding value until the first event
func NewAutomation(value float64) *Automation {
	return &Automation{value: value}
}

// Value returns the intrinsic value
func (a *Automation) Value() float64 {
	return a.value
}

// SetValue sets the intrinsic value used before the first event
func (a *Automation) SetValue(v float64) {
	a.value = v
}

// Events returns a copy of the scheduled events in time order
func (a *Automation) Events() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// Add inserts an event, keeping time order. Events at equal times keep
// their insertion order.
func (a *Automation) Add(e Event) {
	i := sort.Search(len(a.events), func(k int) bool {
		return a.events[k].Time > e.Time
	})
	a.events = append(a.events, Event{})
	copy(a.events[i+1:], a.events[i:])
	a.events[i] = e
}

// CancelAfter removes every event at or after t
func (a *Automation) CancelAfter(t float64) {
	i := sort.Search(len(a.events), func(k int) bool {
		return a.events[k].Time >= t
	})
	a.events = a.events[:i]
}

// ValueAt evaluates the timeline at time t. A ramp with no earlier event
// starts from the intrinsic value at time zero.
func (a *Automation) ValueAt(t float64) float64 {
	n := len(a.events)
	if n == 0 {
		return a.value
	}

	// First event strictly after t
	i := sort.Search(n, func(k int) bool {
		return a.events[k].Time > t
	})

	if i < n && a.events[i].Kind != SetValue {
		t0, v0 := 0.0, a.value
		if i > 0 {
			t0, v0 = a.events[i-1].Time, a.events[i-1].Value
		}
		next := a.events[i]
		return ramp(next.Kind, t0, v0, next.Time, next.Value, t)
	}

	if i == 0 {
		return a.value
	}
	return a.events[i-1].Value
}

// Fill writes the value at t0, t0+dt, ... into out - no allocations
func (a *Automation) Fill(out []float32, t0, dt float64) {
	n := len(a.events)
	if n == 0 || a.events[n-1].Time <= t0 {
		v := float32(a.ValueAt(t0))
		for i := range out {
			out[i] = v
		}
		return
	}
	for i := range out {
		out[i] = float32(a.ValueAt(t0 + float64(i)*dt))
	}
}

// ramp interpolates between (t0, v0) and (t1, v1) at time t
func ramp(kind Kind, t0, v0, t1, v1, t float64) float64 {
	if t1 <= t0 {
		return v1
	}
	frac := (t - t0) / (t1 - t0)
	if kind == LinearRamp {
		return v0 + (v1-v0)*frac
	}
	// Exponential ramps need a non-zero start of the same sign as the end
	if v0 == 0 || v0*v1 <= 0 {
		return v0
	}
	return v0 * math.Pow(v1/v0, frac)
}
