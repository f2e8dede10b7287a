package graph

import (
	"fmt"
	"math"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp"
	"github.com/sonikatlas/sonik/pkg/dsp/oscillator"
)

// schedule is the start/stop window of a source node, in frames.
type schedule struct {
	start   int64
	stop    int64
	started bool
}

func newSchedule() schedule {
	return schedule{stop: math.MaxInt64}
}

func (s *schedule) begin(c *Context, name string, when float64) error {
	if s.started {
		return fmt.Errorf("%s: start called twice: %w", name, audio.ErrInvalidState)
	}
	s.started = true
	s.start = max(c.frameAt(when), c.frame)
	return nil
}

// end sets the stop frame. length is the natural length of the source in
// frames, or -1 for sources that run until stopped.
func (s *schedule) end(c *Context, name string, when float64, length int64) error {
	if !s.started {
		return fmt.Errorf("%s: stop before start: %w", name, audio.ErrInvalidState)
	}
	if s.finished(c.frame, length) {
		return fmt.Errorf("%s: already ended: %w", name, audio.ErrInvalidState)
	}
	s.stop = max(c.frameAt(when), c.frame)
	return nil
}

func (s *schedule) finished(frame, length int64) bool {
	if !s.started {
		return false
	}
	end := s.stop
	if length >= 0 && s.start+length < end {
		end = s.start + length
	}
	return frame >= end
}

func (s *schedule) active(frame int64) bool {
	return s.started && frame >= s.start && frame < s.stop
}

// overlaps reports whether any frame of [frame, frame+n) is active.
func (s *schedule) overlaps(frame int64, n int) bool {
	return s.started && s.start < frame+int64(n) && s.stop > frame
}

type oscillatorNode struct {
	*node
	sched     schedule
	shape     oscillator.Shape
	osc       *oscillator.Oscillator
	frequency *Param
}

// NewOscillator creates a stopped sine oscillator at 440 Hz.
func (c *Context) NewOscillator() audio.Oscillator {
	o := &oscillatorNode{
		node:      c.newNode("oscillator", false),
		sched:     newSchedule(),
		shape:     oscillator.ShapeSine,
		osc:       oscillator.New(c.sampleRate),
		frequency: c.newParam("frequency", 440),
	}
	o.proc = o
	return o
}

func (o *oscillatorNode) SetType(w audio.Waveform) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	switch w {
	case audio.Square:
		o.shape = oscillator.ShapeSquare
	case audio.Sawtooth:
		o.shape = oscillator.ShapeSaw
	case audio.Triangle:
		o.shape = oscillator.ShapeTriangle
	default:
		o.shape = oscillator.ShapeSine
	}
}

func (o *oscillatorNode) Frequency() audio.Param {
	return o.frequency
}

func (o *oscillatorNode) Start(when float64) error {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	return o.sched.begin(o.ctx, o.name, when)
}

func (o *oscillatorNode) Stop(when float64) error {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	return o.sched.end(o.ctx, o.name, when, -1)
}

func (o *oscillatorNode) process(out []float32) {
	frame := o.ctx.frame
	if !o.sched.overlaps(frame, len(out)) {
		dsp.Clear(out)
		return
	}
	freqs := o.frequency.values()
	if o.sched.active(frame) && o.sched.active(frame+int64(len(out))-1) {
		o.osc.Process(o.shape, freqs, out)
		return
	}
	for i := range out {
		if o.sched.active(frame + int64(i)) {
			out[i] = o.osc.Next(o.shape, float64(freqs[i]))
		} else {
			out[i] = 0
		}
	}
}

type bufferSourceNode struct {
	*node
	sched   schedule
	samples []float32
}

// NewBufferSource creates a stopped source with no buffer.
func (c *Context) NewBufferSource() audio.BufferSource {
	b := &bufferSourceNode{
		node:  c.newNode("buffer source", false),
		sched: newSchedule(),
	}
	b.proc = b
	return b
}

// SetBuffer copies samples into the source.
func (b *bufferSourceNode) SetBuffer(samples []float32) {
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	b.samples = append([]float32(nil), samples...)
}

func (b *bufferSourceNode) Start(when float64) error {
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	return b.sched.begin(b.ctx, b.name, when)
}

func (b *bufferSourceNode) Stop(when float64) error {
	b.ctx.mu.Lock()
	defer b.ctx.mu.Unlock()
	return b.sched.end(b.ctx, b.name, when, int64(len(b.samples)))
}

func (b *bufferSourceNode) process(out []float32) {
	frame := b.ctx.frame
	for i := range out {
		f := frame + int64(i)
		out[i] = 0
		if !b.sched.active(f) {
			continue
		}
		if idx := f - b.sched.start; idx < int64(len(b.samples)) {
			out[i] = b.samples[idx]
		}
	}
}
