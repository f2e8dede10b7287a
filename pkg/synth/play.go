package synth

import (
	"fmt"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp/envelope"
)

// Registrar records every node a score creates so it can be released.
type Registrar interface {
	Register(n audio.Node)
}

type realised struct {
	node   audio.Node
	params map[string]audio.Param
}

// Play realises s on ctx with origin at the context's current time and
// routes Output edges to dest. Each node is registered as soon as it is
// created, so a failure part way leaves nothing untracked. It returns the
// origin.
func Play(ctx audio.Context, dest audio.Node, reg Registrar, s *Score) (float64, error) {
	origin := ctx.CurrentTime()
	for i := range s.Voices {
		if err := playVoice(ctx, dest, reg, &s.Voices[i], origin); err != nil {
			return origin, fmt.Errorf("play %s: voice %s: %w", s.Program, s.Voices[i].Name, err)
		}
	}
	return origin, nil
}

func playVoice(ctx audio.Context, dest audio.Node, reg Registrar, v *Voice, origin float64) error {
	nodes := make(map[string]*realised, len(v.Nodes))
	for i := range v.Nodes {
		spec := &v.Nodes[i]
		r, err := create(ctx, spec)
		if err != nil {
			return err
		}
		reg.Register(r.node)
		nodes[spec.Name] = r

		for _, a := range spec.Automation {
			p, ok := r.params[a.Param]
			if !ok {
				return fmt.Errorf("%s has no parameter %q", spec.Name, a.Param)
			}
			schedule(p, a.Event, origin)
		}
	}

	for _, e := range v.Edges {
		from, ok := nodes[e.From]
		if !ok {
			return fmt.Errorf("edge from unknown node %q", e.From)
		}
		if err := connect(from.node, e, nodes, dest); err != nil {
			return fmt.Errorf("connect %s to %s: %w", e.From, e.To, err)
		}
	}

	for i := range v.Nodes {
		spec := &v.Nodes[i]
		if !spec.Kind.Source() {
			continue
		}
		src := nodes[spec.Name].node.(audio.Scheduled)
		if err := src.Start(origin + spec.Start); err != nil {
			return err
		}
		if err := src.Stop(origin + spec.Stop); err != nil {
			return err
		}
	}
	return nil
}

func create(ctx audio.Context, spec *NodeSpec) (*realised, error) {
	r := &realised{params: make(map[string]audio.Param)}
	switch spec.Kind {
	case KindOscillator:
		osc := ctx.NewOscillator()
		osc.SetType(spec.Waveform)
		r.node = osc
		r.params[ParamFrequency] = osc.Frequency()
	case KindGain:
		g := ctx.NewGain()
		r.node = g
		r.params[ParamGain] = g.Gain()
	case KindFilter:
		f := ctx.NewBiquadFilter()
		f.SetType(spec.Filter)
		r.node = f
		r.params[ParamFrequency] = f.Frequency()
		r.params[ParamQ] = f.Q()
		if spec.Q > 0 {
			f.Q().SetValue(spec.Q)
		}
	case KindDelay:
		d := ctx.NewDelay(spec.MaxDelay)
		r.node = d
		r.params[ParamDelayTime] = d.DelayTime()
	case KindNoise:
		b := ctx.NewBufferSource()
		b.SetBuffer(spec.Buffer)
		r.node = b
	case KindShaper:
		ws := ctx.NewWaveShaper()
		ws.SetCurve(spec.Curve)
		r.node = ws
	default:
		return nil, fmt.Errorf("%s: unknown node kind %v", spec.Name, spec.Kind)
	}

	if p, ok := r.params[mainParam(spec.Kind)]; ok {
		p.SetValue(spec.Value)
	}
	return r, nil
}

func mainParam(k Kind) string {
	switch k {
	case KindGain:
		return ParamGain
	case KindDelay:
		return ParamDelayTime
	default:
		return ParamFrequency
	}
}

func connect(from audio.Node, e Edge, nodes map[string]*realised, dest audio.Node) error {
	if e.To == Output {
		return from.Connect(dest)
	}
	to, ok := nodes[e.To]
	if !ok {
		return fmt.Errorf("unknown node %q", e.To)
	}
	if e.Param == "" {
		return from.Connect(to.node)
	}
	p, ok := to.params[e.Param]
	if !ok {
		return fmt.Errorf("%s has no parameter %q", e.To, e.Param)
	}
	return from.ConnectParam(p)
}

func schedule(p audio.Param, ev envelope.Event, origin float64) {
	t := origin + ev.Time
	switch ev.Kind {
	case envelope.LinearRamp:
		p.LinearRampToValueAtTime(ev.Value, t)
	case envelope.ExponentialRamp:
		p.ExponentialRampToValueAtTime(ev.Value, t)
	default:
		p.SetValueAtTime(ev.Value, t)
	}
}
