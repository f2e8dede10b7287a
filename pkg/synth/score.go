// Package synth describes preview programs as data. A Program composes a
// Score: voices made of node specs, the edges between them, and automation
// on a timeline relative to the moment playback begins. Play realises a
// Score on an audio.Context.
package synth

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp/envelope"
)

// Output names the destination bus in an Edge.
const Output = "out"

// Parameter names usable in edges and automation.
const (
	ParamFrequency = "frequency"
	ParamGain      = "gain"
	ParamQ         = "Q"
	ParamDelayTime = "delayTime"
)

// timeEpsilon absorbs float error when comparing schedule times.
const timeEpsilon = 1e-9

// Kind is the type of a node spec.
type Kind int

const (
	KindOscillator Kind = iota
	KindGain
	KindFilter
	KindDelay
	KindNoise
	KindShaper
)

func (k Kind) String() string {
	switch k {
	case KindOscillator:
		return "oscillator"
	case KindGain:
		return "gain"
	case KindFilter:
		return "filter"
	case KindDelay:
		return "delay"
	case KindNoise:
		return "noise"
	case KindShaper:
		return "shaper"
	default:
		return "unknown"
	}
}

// Source reports whether nodes of this kind are started and stopped.
func (k Kind) Source() bool {
	return k == KindOscillator || k == KindNoise
}

func (k Kind) hasParam(name string) bool {
	switch k {
	case KindOscillator:
		return name == ParamFrequency
	case KindGain:
		return name == ParamGain
	case KindFilter:
		return name == ParamFrequency || name == ParamQ
	case KindDelay:
		return name == ParamDelayTime
	default:
		return false
	}
}

// ParamEvent is automation on one parameter of a node.
type ParamEvent struct {
	Param string
	envelope.Event
}

// NodeSpec describes one node of a voice. Value is the intrinsic value of
// the node's main parameter: frequency for oscillators and filters, gain
// for gains and delay time for delays.
type NodeSpec struct {
	Name     string
	Kind     Kind
	Waveform audio.Waveform
	Filter   audio.FilterType
	Value    float64
	Q        float64 // zero keeps the node default
	MaxDelay float64
	Buffer   []float32 // noise samples
	Curve    []float32 // shaper transfer curve

	// Start and Stop are offsets from the score origin, used by sources.
	Start, Stop float64

	Automation []ParamEvent
}

// Edge connects node From to node To, or to parameter Param of To when
// Param is set. To may be Output.
type Edge struct {
	From  string
	To    string
	Param string
}

// Voice is one sound event: a small subgraph of nodes.
type Voice struct {
	Name  string
	Nodes []NodeSpec
	Edges []Edge
}

// Score is a complete audition.
type Score struct {
	Program  string
	Duration float64
	Voices   []Voice
}

// Entry is one start or stop on the flattened timeline.
type Entry struct {
	Time   float64
	Voice  string
	Node   string
	Action string
}

// Env is what a program may consult while composing.
type Env struct {
	SampleRate float64
	Rand       *rand.Rand
}

func (e Env) rng() *rand.Rand {
	if e.Rand != nil {
		return e.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (e Env) sampleRate() float64 {
	if e.SampleRate > 0 {
		return e.SampleRate
	}
	return 44100
}

// Program composes a Score. Compose must not block.
type Program interface {
	Name() string
	Compose(env Env) *Score
}

// Timeline returns every source start and stop in time order.
func (s *Score) Timeline() []Entry {
	var entries []Entry
	for _, v := range s.Voices {
		for _, n := range v.Nodes {
			if !n.Kind.Source() {
				continue
			}
			entries = append(entries,
				Entry{Time: n.Start, Voice: v.Name, Node: n.Name, Action: "start"},
				Entry{Time: n.Stop, Voice: v.Name, Node: n.Name, Action: "stop"},
			)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})
	return entries
}

// Onsets returns the earliest source start of each voice whose name has the
// given prefix, in voice order.
func (s *Score) Onsets(prefix string) []float64 {
	var onsets []float64
	for _, v := range s.Voices {
		if !strings.HasPrefix(v.Name, prefix) {
			continue
		}
		first, found := 0.0, false
		for _, n := range v.Nodes {
			if n.Kind.Source() && (!found || n.Start < first) {
				first, found = n.Start, true
			}
		}
		if found {
			onsets = append(onsets, first)
		}
	}
	return onsets
}

// NodeCount returns the number of nodes the score creates.
func (s *Score) NodeCount() int {
	n := 0
	for _, v := range s.Voices {
		n += len(v.Nodes)
	}
	return n
}

// Validate checks that the score can be played and keeps its schedule:
// every source has a stop time no earlier than its start, automation on
// each parameter is time ordered, and every time lies within Duration.
func (s *Score) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("score %q: duration %v must be positive", s.Program, s.Duration)
	}
	var err error
	for _, v := range s.Voices {
		err = multierr.Append(err, s.validateVoice(v))
	}
	return err
}

func (s *Score) validateVoice(v Voice) error {
	var err error
	inRange := func(t float64) bool {
		return t >= -timeEpsilon && t <= s.Duration+timeEpsilon
	}

	kinds := make(map[string]Kind, len(v.Nodes))
	for _, n := range v.Nodes {
		if n.Name == "" || n.Name == Output {
			err = multierr.Append(err, fmt.Errorf("voice %s: invalid node name %q", v.Name, n.Name))
			continue
		}
		if _, dup := kinds[n.Name]; dup {
			err = multierr.Append(err, fmt.Errorf("voice %s: duplicate node %q", v.Name, n.Name))
		}
		kinds[n.Name] = n.Kind

		if n.Kind.Source() {
			if n.Stop < n.Start {
				err = multierr.Append(err, fmt.Errorf("voice %s: %s stops at %v before it starts at %v", v.Name, n.Name, n.Stop, n.Start))
			}
			if !inRange(n.Start) || !inRange(n.Stop) {
				err = multierr.Append(err, fmt.Errorf("voice %s: %s runs outside [0, %v]", v.Name, n.Name, s.Duration))
			}
		}

		last := make(map[string]float64)
		for _, a := range n.Automation {
			if !n.Kind.hasParam(a.Param) {
				err = multierr.Append(err, fmt.Errorf("voice %s: %s has no parameter %q", v.Name, n.Name, a.Param))
				continue
			}
			if prev, ok := last[a.Param]; ok && a.Time < prev {
				err = multierr.Append(err, fmt.Errorf("voice %s: %s.%s automation goes back in time", v.Name, n.Name, a.Param))
			}
			last[a.Param] = a.Time
			if !inRange(a.Time) {
				err = multierr.Append(err, fmt.Errorf("voice %s: %s.%s event at %v outside [0, %v]", v.Name, n.Name, a.Param, a.Time, s.Duration))
			}
		}
	}

	reachesOutput := false
	for _, e := range v.Edges {
		if _, ok := kinds[e.From]; !ok {
			err = multierr.Append(err, fmt.Errorf("voice %s: edge from unknown node %q", v.Name, e.From))
		}
		if e.To == Output {
			reachesOutput = true
			if e.Param != "" {
				err = multierr.Append(err, fmt.Errorf("voice %s: output has no parameters", v.Name))
			}
			continue
		}
		kind, ok := kinds[e.To]
		switch {
		case !ok:
			err = multierr.Append(err, fmt.Errorf("voice %s: edge to unknown node %q", v.Name, e.To))
		case e.Param != "" && !kind.hasParam(e.Param):
			err = multierr.Append(err, fmt.Errorf("voice %s: %s has no parameter %q", v.Name, e.To, e.Param))
		case e.Param == "" && kind.Source():
			err = multierr.Append(err, fmt.Errorf("voice %s: source %s has no input", v.Name, e.To))
		}
	}
	if !reachesOutput {
		err = multierr.Append(err, fmt.Errorf("voice %s: nothing reaches the output", v.Name))
	}
	return err
}
