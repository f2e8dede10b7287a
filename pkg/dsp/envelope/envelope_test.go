package envelope

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAutomationIntrinsicValue(t *testing.T) {
	a := NewAutomation(0.3)
	if got := a.ValueAt(12); got != 0.3 {
		t.Errorf("ValueAt with no events = %f, want 0.3", got)
	}
	a.SetValue(0.5)
	if got := a.ValueAt(0); got != 0.5 {
		t.Errorf("ValueAt after SetValue = %f, want 0.5", got)
	}
}

func TestAutomationLinearRamp(t *testing.T) {
	a := NewAutomation(0)
	a.Add(Event{Kind: SetValue, Time: 1, Value: 0})
	a.Add(Event{Kind: LinearRamp, Time: 3, Value: 0.1})

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, 0.05},
		{3, 0.1},
		{10, 0.1},
	}
	for _, tt := range tests {
		if got := a.ValueAt(tt.t); !almostEqual(got, tt.want) {
			t.Errorf("ValueAt(%f) = %f, want %f", tt.t, got, tt.want)
		}
	}
}

func TestAutomationExponentialRamp(t *testing.T) {
	a := NewAutomation(0)
	a.Add(Event{Kind: SetValue, Time: 0, Value: 150})
	a.Add(Event{Kind: ExponentialRamp, Time: 0.1, Value: 40})

	mid := a.ValueAt(0.05)
	want := 150 * math.Pow(40.0/150.0, 0.5)
	if !almostEqual(mid, want) {
		t.Errorf("midpoint = %f, want %f", mid, want)
	}
	if got := a.ValueAt(0.1); got != 40 {
		t.Errorf("end = %f, want 40", got)
	}

	// Monotonic decay between the endpoints
	prev := a.ValueAt(0)
	for i := 1; i <= 100; i++ {
		v := a.ValueAt(float64(i) * 0.001)
		if v > prev {
			t.Fatalf("exponential ramp rose at step %d: %f > %f", i, v, prev)
		}
		prev = v
	}
}

func TestAutomationExponentialFromZeroHolds(t *testing.T) {
	a := NewAutomation(0)
	a.Add(Event{Kind: SetValue, Time: 0, Value: 0})
	a.Add(Event{Kind: ExponentialRamp, Time: 1, Value: 1})
	if got := a.ValueAt(0.5); got != 0 {
		t.Errorf("ramp from zero = %f, want hold at 0", got)
	}
}

func TestAutomationOrderingAndCancel(t *testing.T) {
	a := NewAutomation(0)
	a.Add(Event{Kind: SetValue, Time: 2, Value: 2})
	a.Add(Event{Kind: SetValue, Time: 1, Value: 1})
	a.Add(Event{Kind: SetValue, Time: 1, Value: 1.5})

	events := a.Events()
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	if events[0].Value != 1 || events[1].Value != 1.5 || events[2].Value != 2 {
		t.Errorf("unexpected order: %+v", events)
	}
	if got := a.ValueAt(1.2); got != 1.5 {
		t.Errorf("equal-time events: ValueAt = %f, want last inserted 1.5", got)
	}

	a.CancelAfter(2)
	if n := len(a.Events()); n != 2 {
		t.Errorf("events after CancelAfter = %d, want 2", n)
	}
}

func TestAutomationFill(t *testing.T) {
	a := NewAutomation(0)
	a.Add(Event{Kind: SetValue, Time: 0, Value: 0})
	a.Add(Event{Kind: LinearRamp, Time: 1, Value: 1})

	out := make([]float32, 5)
	a.Fill(out, 0, 0.25)
	want := []float32{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(float64(out[i]-want[i])) > 1e-6 {
			t.Errorf("out[%d] = %f, want %f", i, out[i], want[i])
		}
	}

	// Past the last event the value is constant
	a.Fill(out, 3, 0.25)
	for i, v := range out {
		if v != 1 {
			t.Errorf("constant fill out[%d] = %f, want 1", i, v)
		}
	}
}
