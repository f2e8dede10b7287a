package graph

import (
	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp"
	"github.com/sonikatlas/sonik/pkg/dsp/delay"
	"github.com/sonikatlas/sonik/pkg/dsp/distortion"
	"github.com/sonikatlas/sonik/pkg/dsp/filter"
	"github.com/sonikatlas/sonik/pkg/dsp/gain"
)

type gainNode struct {
	*node
	gain *Param
}

// NewGain creates a unity gain stage.
func (c *Context) NewGain() audio.Gain {
	g := &gainNode{
		node: c.newNode("gain", true),
		gain: c.newParam("gain", 1),
	}
	g.proc = g
	return g
}

func (g *gainNode) Gain() audio.Param {
	return g.gain
}

func (g *gainNode) process(out []float32) {
	g.mix(out)
	gain.Multiply(out, g.gain.values())
}

type filterNode struct {
	*node
	kind      filter.Kind
	biquad    *filter.Biquad
	frequency *Param
	q         *Param
}

// NewBiquadFilter creates a 350 Hz lowpass with a Butterworth Q.
func (c *Context) NewBiquadFilter() audio.BiquadFilter {
	f := &filterNode{
		node:      c.newNode("biquad filter", true),
		kind:      filter.KindLowpass,
		biquad:    filter.NewBiquad(dsp.Mono),
		frequency: c.newParam("frequency", 350),
		q:         c.newParam("Q", dsp.DefaultQ),
	}
	f.proc = f
	return f
}

func (f *filterNode) SetType(t audio.FilterType) {
	f.ctx.mu.Lock()
	defer f.ctx.mu.Unlock()
	switch t {
	case audio.Highpass:
		f.kind = filter.KindHighpass
	case audio.Bandpass:
		f.kind = filter.KindBandpass
	default:
		f.kind = filter.KindLowpass
	}
}

func (f *filterNode) Frequency() audio.Param { return f.frequency }

func (f *filterNode) Q() audio.Param { return f.q }

// process designs the filter once per quantum from the first frame's
// frequency and Q.
func (f *filterNode) process(out []float32) {
	f.mix(out)
	freq := f.frequency.values()[0]
	q := f.q.values()[0]
	f.biquad.Configure(f.kind, f.ctx.sampleRate, float64(freq), float64(q))
	f.biquad.Process(out, 0)
}

type delayNode struct {
	*node
	line      *delay.Line
	delayTime *Param
	in        []float32
}

// NewDelay creates a delay line holding up to maxSeconds, one second when
// maxSeconds is not positive. The delay time starts at zero, which renders
// as one quantum.
func (c *Context) NewDelay(maxSeconds float64) audio.Delay {
	if maxSeconds <= 0 {
		maxSeconds = 1
	}
	minSeconds := float64(c.quantum) / c.sampleRate
	d := &delayNode{
		node:      c.newNode("delay", true),
		line:      delay.New(maxSeconds+minSeconds, c.sampleRate),
		delayTime: c.newParam("delayTime", 0),
		in:        make([]float32, c.quantum),
	}
	d.proc = d
	return d
}

func (d *delayNode) DelayTime() audio.Param {
	return d.delayTime
}

// process reads the whole quantum from the line before this quantum's input
// has been written. commit writes it afterwards.
func (d *delayNode) process(out []float32) {
	c := d.ctx
	c.delays = append(c.delays, d)

	minDelay := float64(c.quantum)
	times := d.delayTime.values()
	for i := range out {
		samples := float64(times[i]) * c.sampleRate
		if samples < minDelay {
			samples = minDelay
		}
		out[i] = d.line.ReadAhead(samples, i)
	}
}

func (d *delayNode) commit() {
	d.mix(d.in)
	d.line.WriteBuffer(d.in)
}

type shaperNode struct {
	*node
	curve distortion.Curve
}

// NewWaveShaper creates a shaper with no curve, which passes input through.
func (c *Context) NewWaveShaper() audio.WaveShaper {
	s := &shaperNode{node: c.newNode("waveshaper", true)}
	s.proc = s
	return s
}

// SetCurve copies the transfer curve. Inputs in [-1, 1] map across it.
func (s *shaperNode) SetCurve(curve []float32) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.curve = append(distortion.Curve(nil), curve...)
}

func (s *shaperNode) process(out []float32) {
	s.mix(out)
	s.curve.Process(out)
}
