//go:build js

package webaudio

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/sonikatlas/sonik/pkg/audio"
)

type node struct {
	ctx *Context
	obj *js.Object
}

func (n *node) jsObject() *js.Object { return n.obj }

func (n *node) Connect(dst audio.Node) error {
	target, ok := dst.(interface{ jsObject() *js.Object })
	if !ok {
		return audio.ErrForeignNode
	}
	return try("connect", func() { n.obj.Call("connect", target.jsObject()) })
}

func (n *node) ConnectParam(dst audio.Param) error {
	p, ok := dst.(*param)
	if !ok {
		return audio.ErrForeignNode
	}
	return try("connect param", func() { n.obj.Call("connect", p.obj) })
}

func (n *node) Disconnect() {
	_ = try("disconnect", func() { n.obj.Call("disconnect") })
}

type param struct {
	obj *js.Object
}

func (n *node) param(name string) audio.Param {
	return &param{obj: n.obj.Get(name)}
}

func (p *param) Value() float64 { return p.obj.Get("value").Float() }

func (p *param) SetValue(v float64) { p.obj.Set("value", v) }

func (p *param) SetValueAtTime(v, t float64) {
	_ = try("setValueAtTime", func() { p.obj.Call("setValueAtTime", v, t) })
}

func (p *param) LinearRampToValueAtTime(v, t float64) {
	_ = try("linearRampToValueAtTime", func() { p.obj.Call("linearRampToValueAtTime", v, t) })
}

// ExponentialRampToValueAtTime throws in the browser for zero targets; that
// case is dropped.
func (p *param) ExponentialRampToValueAtTime(v, t float64) {
	_ = try("exponentialRampToValueAtTime", func() { p.obj.Call("exponentialRampToValueAtTime", v, t) })
}

func (p *param) CancelScheduledValues(t float64) {
	_ = try("cancelScheduledValues", func() { p.obj.Call("cancelScheduledValues", t) })
}

type source struct {
	*node
}

func (s source) Start(when float64) error {
	return try("start", func() { s.obj.Call("start", when) })
}

func (s source) Stop(when float64) error {
	return try("stop", func() { s.obj.Call("stop", when) })
}

type oscillator struct {
	source
}

func (o *oscillator) SetType(w audio.Waveform) { o.obj.Set("type", w.String()) }

func (o *oscillator) Frequency() audio.Param { return o.param("frequency") }

type gainNode struct {
	*node
}

func (g *gainNode) Gain() audio.Param { return g.param("gain") }

type biquad struct {
	*node
}

func (b *biquad) SetType(t audio.FilterType) { b.obj.Set("type", t.String()) }

func (b *biquad) Frequency() audio.Param { return b.param("frequency") }

func (b *biquad) Q() audio.Param { return b.param("Q") }

type delayNode struct {
	*node
}

func (d *delayNode) DelayTime() audio.Param { return d.param("delayTime") }

type bufferSource struct {
	source
}

// SetBuffer copies samples into a mono AudioBuffer at the context rate.
func (b *bufferSource) SetBuffer(samples []float32) {
	length := len(samples)
	if length == 0 {
		length = 1
	}
	buf := b.ctx.obj.Call("createBuffer", 1, length, b.ctx.SampleRate())
	data := buf.Call("getChannelData", 0)
	for i, s := range samples {
		data.SetIndex(i, s)
	}
	b.obj.Set("buffer", buf)
}

type shaper struct {
	*node
}

func (s *shaper) SetCurve(curve []float32) {
	if len(curve) == 0 {
		s.obj.Set("curve", nil)
		return
	}
	s.obj.Set("curve", float32Array(curve))
}
