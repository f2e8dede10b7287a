//go:build js

// Package webaudio implements audio.Context on the browser's Web Audio API.
// Exceptions thrown by the browser surface as errors wrapping
// audio.ErrInvalidState.
package webaudio

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"

	"github.com/sonikatlas/sonik/pkg/audio"
)

// Context wraps a browser AudioContext.
type Context struct {
	obj  *js.Object
	dest *node
}

var _ audio.Context = (*Context)(nil)

// New creates an AudioContext, falling back to the prefixed constructor.
func New() (*Context, error) {
	ctor := js.Global.Get("AudioContext")
	if ctor == nil || ctor == js.Undefined {
		ctor = js.Global.Get("webkitAudioContext")
	}
	if ctor == nil || ctor == js.Undefined {
		return nil, audio.ErrUnsupported
	}

	var obj *js.Object
	if err := try("create context", func() { obj = ctor.New() }); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupported, err)
	}
	c := &Context{obj: obj}
	c.dest = &node{ctx: c, obj: obj.Get("destination")}
	return c, nil
}

// try runs fn and converts a thrown JavaScript exception into an error.
func try(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			jsErr, ok := r.(*js.Error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%s: %s: %w", op, jsErr.Error(), audio.ErrInvalidState)
		}
	}()
	fn()
	return nil
}

func (c *Context) SampleRate() float64 {
	return c.obj.Get("sampleRate").Float()
}

func (c *Context) CurrentTime() float64 {
	return c.obj.Get("currentTime").Float()
}

func (c *Context) State() audio.State {
	switch c.obj.Get("state").String() {
	case "running":
		return audio.StateRunning
	case "closed":
		return audio.StateClosed
	default:
		return audio.StateSuspended
	}
}

// Resume asks the browser to resume a suspended context. The returned
// promise is not awaited; browsers resume once a user gesture allows it.
func (c *Context) Resume() error {
	switch c.State() {
	case audio.StateClosed:
		return fmt.Errorf("resume closed context: %w", audio.ErrInvalidState)
	case audio.StateSuspended:
		return try("resume", func() { c.obj.Call("resume") })
	}
	return nil
}

func (c *Context) Destination() audio.Node {
	return c.dest
}

func (c *Context) create(method string) *node {
	return &node{ctx: c, obj: c.obj.Call(method)}
}

func (c *Context) NewOscillator() audio.Oscillator {
	return &oscillator{source{c.create("createOscillator")}}
}

func (c *Context) NewGain() audio.Gain {
	return &gainNode{c.create("createGain")}
}

func (c *Context) NewBiquadFilter() audio.BiquadFilter {
	return &biquad{c.create("createBiquadFilter")}
}

func (c *Context) NewDelay(maxSeconds float64) audio.Delay {
	if maxSeconds <= 0 {
		maxSeconds = 1
	}
	return &delayNode{&node{ctx: c, obj: c.obj.Call("createDelay", maxSeconds)}}
}

func (c *Context) NewBufferSource() audio.BufferSource {
	return &bufferSource{source{c.create("createBufferSource")}}
}

func (c *Context) NewWaveShaper() audio.WaveShaper {
	return &shaper{c.create("createWaveShaper")}
}

// float32Array copies samples into a new Float32Array.
func float32Array(samples []float32) *js.Object {
	arr := js.Global.Get("Float32Array").New(len(samples))
	for i, s := range samples {
		arr.SetIndex(i, s)
	}
	return arr
}
