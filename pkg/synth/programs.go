package synth

import (
	"fmt"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/dsp/distortion"
	"github.com/sonikatlas/sonik/pkg/dsp/envelope"
	"github.com/sonikatlas/sonik/pkg/dsp/utility"
)

func set(param string, v, t float64) ParamEvent {
	return ParamEvent{Param: param, Event: envelope.Event{Kind: envelope.SetValue, Time: t, Value: v}}
}

func linear(param string, v, t float64) ParamEvent {
	return ParamEvent{Param: param, Event: envelope.Event{Kind: envelope.LinearRamp, Time: t, Value: v}}
}

func exponential(param string, v, t float64) ParamEvent {
	return ParamEvent{Param: param, Event: envelope.Event{Kind: envelope.ExponentialRamp, Time: t, Value: v}}
}

// Drone layers three detuned oscillators on a minor seventh chord, one
// octave down, each fading in over two seconds.
type Drone struct{}

// Drone constants.
var (
	DroneChord = []float64{220, 329.63, 196}
)

const (
	DroneDuration = 5.0
	DroneAttack   = 2.0
	DroneLevel    = 0.1
	DroneLFODepth = 2.0
)

func (Drone) Name() string { return "drone" }

func (Drone) Compose(Env) *Score {
	s := &Score{Program: "drone", Duration: DroneDuration}
	for i, freq := range DroneChord {
		wave := audio.Sine
		if i == 2 {
			wave = audio.Sawtooth
		}
		s.Voices = append(s.Voices, Voice{
			Name: fmt.Sprintf("pad-%d", i),
			Nodes: []NodeSpec{
				{Name: "osc", Kind: KindOscillator, Waveform: wave, Value: freq / 2, Stop: DroneDuration},
				{Name: "lfo", Kind: KindOscillator, Waveform: audio.Sine, Value: 0.1 + float64(i)*0.05, Stop: DroneDuration},
				{Name: "depth", Kind: KindGain, Value: DroneLFODepth},
				{Name: "amp", Kind: KindGain, Automation: []ParamEvent{
					set(ParamGain, 0, 0),
					linear(ParamGain, DroneLevel, DroneAttack),
				}},
			},
			Edges: []Edge{
				{From: "lfo", To: "depth"},
				{From: "depth", To: "osc", Param: ParamFrequency},
				{From: "osc", To: "amp"},
				{From: "amp", To: Output},
			},
		})
	}
	return s
}

// Rhythm schedules eight beats of kick with off-beat hi-hats.
type Rhythm struct{}

// Rhythm constants.
const (
	RhythmTempo = 135.0
	RhythmBeats = 8
	RhythmLead  = 0.1
	KickLength  = 0.5
	HatLength   = 0.1
)

// Beat returns the beat interval in seconds.
func (Rhythm) Beat() float64 { return 60 / RhythmTempo }

func (Rhythm) Name() string { return "rhythm" }

func (r Rhythm) Compose(env Env) *Score {
	beat := r.Beat()
	s := &Score{
		Program:  "rhythm",
		Duration: RhythmLead + float64(RhythmBeats-1)*beat + KickLength,
	}
	noise := utility.NewNoiseGenerator(env.rng())
	hatFrames := int(env.sampleRate() * HatLength)

	for i := 0; i < RhythmBeats; i++ {
		t := RhythmLead + float64(i)*beat
		s.Voices = append(s.Voices, kick(i, t), hat(i, t+beat/2, noise.Table(hatFrames)))
	}
	return s
}

func kick(i int, t float64) Voice {
	return Voice{
		Name: fmt.Sprintf("kick-%d", i),
		Nodes: []NodeSpec{
			{Name: "osc", Kind: KindOscillator, Waveform: audio.Sine, Value: 150, Start: t, Stop: t + KickLength,
				Automation: []ParamEvent{
					set(ParamFrequency, 150, t),
					exponential(ParamFrequency, 40, t+0.1),
				}},
			{Name: "filter", Kind: KindFilter, Filter: audio.Lowpass, Value: 400},
			{Name: "amp", Kind: KindGain, Automation: []ParamEvent{
				set(ParamGain, 1, t),
				exponential(ParamGain, 0.001, t+0.4),
			}},
		},
		Edges: []Edge{
			{From: "osc", To: "filter"},
			{From: "filter", To: "amp"},
			{From: "amp", To: Output},
		},
	}
}

func hat(i int, t float64, samples []float32) Voice {
	return Voice{
		Name: fmt.Sprintf("hat-%d", i),
		Nodes: []NodeSpec{
			{Name: "noise", Kind: KindNoise, Buffer: samples, Start: t, Stop: t + HatLength},
			{Name: "filter", Kind: KindFilter, Filter: audio.Highpass, Value: 8000},
			{Name: "amp", Kind: KindGain, Automation: []ParamEvent{
				set(ParamGain, 0.3, t),
				exponential(ParamGain, 0.01, t+0.05),
			}},
		},
		Edges: []Edge{
			{From: "noise", To: "filter"},
			{From: "filter", To: "amp"},
			{From: "amp", To: Output},
		},
	}
}

// Generative plucks random pentatonic notes at irregular gaps, each through
// its own feedback echo.
type Generative struct{}

// Generative constants.
var (
	PentatonicScale = []float64{261.63, 293.66, 329.63, 392, 440, 523.25}
)

const (
	GenerativeNotes    = 10
	GenerativeMinGap   = 0.2
	GenerativeGapRange = 0.5
	NoteLength         = 2.0
	EchoDelay          = 0.3
	EchoFeedback       = 0.4
)

func (Generative) Name() string { return "generative" }

func (Generative) Compose(env Env) *Score {
	rng := env.rng()
	s := &Score{Program: "generative"}

	t := 0.0
	for i := 0; i < GenerativeNotes; i++ {
		t += rng.Float64()*GenerativeGapRange + GenerativeMinGap
		freq := PentatonicScale[rng.Intn(len(PentatonicScale))]
		s.Voices = append(s.Voices, pluck(i, t, freq))
	}
	s.Duration = t + NoteLength
	return s
}

func pluck(i int, t, freq float64) Voice {
	return Voice{
		Name: fmt.Sprintf("note-%d", i),
		Nodes: []NodeSpec{
			{Name: "osc", Kind: KindOscillator, Waveform: audio.Triangle, Value: freq, Start: t, Stop: t + NoteLength},
			{Name: "amp", Kind: KindGain, Automation: []ParamEvent{
				set(ParamGain, 0, t),
				linear(ParamGain, 0.2, t+0.05),
				exponential(ParamGain, 0.001, t+0.5),
			}},
			{Name: "echo", Kind: KindDelay, Value: EchoDelay, MaxDelay: 1},
			{Name: "feedback", Kind: KindGain, Value: EchoFeedback},
		},
		Edges: []Edge{
			{From: "osc", To: "amp"},
			{From: "amp", To: Output},
			{From: "amp", To: "echo"},
			{From: "echo", To: "feedback"},
			{From: "feedback", To: "echo"},
			{From: "echo", To: Output},
		},
	}
}

// Industrial strikes four inharmonic FM clangs through a hard sigmoid.
type Industrial struct{}

// Industrial constants.
const (
	ClangCount   = 4
	ClangSpacing = 0.6
	ClangLength  = 0.5
	CarrierFreq  = 200.0
	ModRatio     = 2.43
	CurvePoints  = 44100
	CurveDrive   = 50.0
)

func (Industrial) Name() string { return "industrial" }

func (Industrial) Compose(Env) *Score {
	s := &Score{
		Program:  "industrial",
		Duration: float64(ClangCount-1)*ClangSpacing + ClangLength,
	}
	curve := distortion.Sigmoid(CurvePoints, CurveDrive)
	for i := 0; i < ClangCount; i++ {
		s.Voices = append(s.Voices, clang(i, float64(i)*ClangSpacing, curve))
	}
	return s
}

func clang(i int, t float64, curve []float32) Voice {
	return Voice{
		Name: fmt.Sprintf("clang-%d", i),
		Nodes: []NodeSpec{
			{Name: "carrier", Kind: KindOscillator, Waveform: audio.Sine, Value: CarrierFreq, Start: t, Stop: t + ClangLength},
			{Name: "modulator", Kind: KindOscillator, Waveform: audio.Sine, Value: CarrierFreq * ModRatio, Start: t, Stop: t + ClangLength},
			{Name: "index", Kind: KindGain, Automation: []ParamEvent{
				set(ParamGain, 1000, t),
				exponential(ParamGain, 10, t+0.5),
			}},
			{Name: "amp", Kind: KindGain, Automation: []ParamEvent{
				set(ParamGain, 0.5, t),
				exponential(ParamGain, 0.01, t+0.4),
			}},
			{Name: "shaper", Kind: KindShaper, Curve: curve},
		},
		Edges: []Edge{
			{From: "modulator", To: "index"},
			{From: "index", To: "carrier", Param: ParamFrequency},
			{From: "carrier", To: "amp"},
			{From: "amp", To: "shaper"},
			{From: "shaper", To: Output},
		},
	}
}
