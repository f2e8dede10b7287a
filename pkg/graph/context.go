// Package graph is a pure Go rendering context. Nodes form a directed graph
// that ends at the context's destination; every call to Render pulls
// fixed-size quanta from the destination, evaluating each node at most once
// per quantum and advancing the context clock by the frames rendered.
//
// Feedback is allowed only through delay nodes. A delay produces a whole
// quantum of output from its line before its input for that quantum is
// known, so its delay time is never shorter than one quantum. Any other
// cycle is cut at the edge that closes it, which contributes silence.
package graph

import (
	"fmt"
	"math"
	"sync"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp"
	"github.com/sonikatlas/sonik/pkg/dsp/gain"
)

// Option configures a Context.
type Option func(*Context)

// WithBlockSize sets the number of frames rendered per quantum.
func WithBlockSize(frames int) Option {
	return func(c *Context) {
		if frames > 0 {
			c.quantum = frames
		}
	}
}

// Context is an offline-capable implementation of audio.Context. It is safe
// for concurrent use: Render is normally driven by an output device on its
// own goroutine while nodes are created and scheduled elsewhere.
type Context struct {
	mu sync.Mutex

	sampleRate float64
	quantum    int
	state      audio.State

	frame int64  // first frame of the next quantum
	stamp uint64 // render pass, used to memoize node output

	dest    *node
	silence []float32

	block []float32 // last rendered quantum
	pos   int       // frames of block already handed out

	delays []*delayNode // delays pulled during the current pass
}

var _ audio.Context = (*Context)(nil)

// New creates a suspended context rendering at sampleRate.
func New(sampleRate float64, opts ...Option) *Context {
	c := &Context{
		sampleRate: sampleRate,
		quantum:    dsp.RenderQuantum,
		state:      audio.StateSuspended,
		stamp:      1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.silence = make([]float32, c.quantum)
	c.block = make([]float32, c.quantum)
	c.pos = c.quantum
	c.dest = c.newNode("destination", true)
	c.dest.proc = mixer{c.dest}
	return c
}

// SampleRate returns the rendering rate in Hz.
func (c *Context) SampleRate() float64 {
	return c.sampleRate
}

// BlockSize returns the frames rendered per quantum.
func (c *Context) BlockSize() int {
	return c.quantum
}

// CurrentTime returns the time of the next frame to be rendered.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.time()
}

// State returns the lifecycle state.
func (c *Context) State() audio.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resume starts rendering the graph. Resuming a running context is a no-op.
func (c *Context) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == audio.StateClosed {
		return fmt.Errorf("resume closed context: %w", audio.ErrInvalidState)
	}
	c.state = audio.StateRunning
	return nil
}

// Suspend holds the clock and renders silence until the next Resume.
func (c *Context) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == audio.StateClosed {
		return fmt.Errorf("suspend closed context: %w", audio.ErrInvalidState)
	}
	c.state = audio.StateSuspended
	return nil
}

// Close stops rendering for good.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = audio.StateClosed
	return nil
}

// Destination returns the output bus.
func (c *Context) Destination() audio.Node {
	return c.dest
}

// Render fills out with the next frames of the graph. Unless the context is
// running it writes silence and the clock does not move.
func (c *Context) Render(out []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != audio.StateRunning {
		dsp.Clear(out)
		return
	}

	for len(out) > 0 {
		if c.pos >= len(c.block) {
			c.renderQuantum()
			c.pos = 0
		}
		n := copy(out, c.block[c.pos:])
		c.pos += n
		out = out[n:]
	}
}

func (c *Context) renderQuantum() {
	c.stamp++
	c.delays = c.delays[:0]

	copy(c.block, c.dest.pull())

	// Delays pulled while feeding other delays are appended as we go.
	for i := 0; i < len(c.delays); i++ {
		c.delays[i].commit()
	}

	gain.HardClipBuffer(c.block, dsp.ClipThreshold)
	c.frame += int64(c.quantum)
}

func (c *Context) time() float64 {
	return float64(c.frame) / c.sampleRate
}

func (c *Context) frameAt(t float64) int64 {
	return int64(math.Round(t * c.sampleRate))
}

func (c *Context) newNode(name string, sink bool) *node {
	return &node{
		ctx:  c,
		name: name,
		sink: sink,
		buf:  make([]float32, c.quantum),
	}
}
