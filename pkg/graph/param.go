package graph

import (
	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp"
	"github.com/sonikatlas/sonik/pkg/dsp/envelope"
)

// Param is an a-rate parameter: an automation timeline plus the summed
// output of every node connected to it.
type Param struct {
	ctx    *Context
	name   string
	auto   *envelope.Automation
	inputs []*node
	buf    []float32
}

var _ audio.Param = (*Param)(nil)

func (c *Context) newParam(name string, value float64) *Param {
	return &Param{
		ctx:  c,
		name: name,
		auto: envelope.NewAutomation(value),
		buf:  make([]float32, c.quantum),
	}
}

// Value returns the automated value at the current time, without inputs.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.auto.ValueAt(p.ctx.time())
}

// SetValue sets the value held before the first automation event.
func (p *Param) SetValue(v float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.auto.SetValue(v)
}

// SetValueAtTime jumps to v at time t.
func (p *Param) SetValueAtTime(v, t float64) {
	p.add(envelope.SetValue, v, t)
}

// LinearRampToValueAtTime ramps linearly from the previous event to v at t.
func (p *Param) LinearRampToValueAtTime(v, t float64) {
	p.add(envelope.LinearRamp, v, t)
}

// ExponentialRampToValueAtTime ramps exponentially from the previous event
// to v at t. A ramp between values of different sign, or from zero, holds
// the start value until t.
func (p *Param) ExponentialRampToValueAtTime(v, t float64) {
	p.add(envelope.ExponentialRamp, v, t)
}

// CancelScheduledValues drops every event at or after t. The value then
// holds whatever the remaining events lead to.
func (p *Param) CancelScheduledValues(t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.auto.CancelAfter(t)
}

// Events returns the scheduled automation.
func (p *Param) Events() []envelope.Event {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.auto.Events()
}

func (p *Param) add(kind envelope.Kind, v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	if kind != envelope.SetValue {
		p.anchor(t)
	}
	p.auto.Add(envelope.Event{Kind: kind, Time: t, Value: v})
}

// anchor pins the current value at the current time when a ramp ending at t
// has no earlier event to start from.
func (p *Param) anchor(t float64) {
	if events := p.auto.Events(); len(events) > 0 && events[0].Time <= t {
		return
	}
	now := p.ctx.time()
	if now > t {
		now = t
	}
	p.auto.Add(envelope.Event{Kind: envelope.SetValue, Time: now, Value: p.auto.ValueAt(now)})
}

// values computes the parameter for every frame of the current quantum.
func (p *Param) values() []float32 {
	c := p.ctx
	p.auto.Fill(p.buf, c.time(), 1/c.sampleRate)
	for _, in := range p.inputs {
		dsp.Add(p.buf, in.pull())
	}
	return p.buf
}
