package main

import (
	"fmt"
	"io"
	"math"

	"github.com/jonboulle/clockwork"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/config"
	"github.com/sonikatlas/sonik/pkg/debug"
	"github.com/sonikatlas/sonik/pkg/dsp/analysis"
	"github.com/sonikatlas/sonik/pkg/graph"
	"github.com/sonikatlas/sonik/pkg/synth"
)

// discard registers nothing; the offline context is dropped whole.
type discard struct{}

func (discard) Register(audio.Node) {}

func runInspect(w io.Writer, cfg config.Config, id string) error {
	clock := clockwork.NewRealClock()
	prof := debug.NewProfiler(clock)

	ctx := graph.New(float64(cfg.SampleRate), graph.WithBlockSize(cfg.BlockSize))
	defer ctx.Close()

	program := synth.DefaultRouter().Select(id)
	done := prof.Start("compose")
	score := program.Compose(synth.Env{SampleRate: ctx.SampleRate(), Rand: newRand(cfg.Seed, clock)})
	done()
	if err := score.Validate(); err != nil {
		return err
	}

	master := ctx.NewGain()
	master.Gain().SetValue(cfg.MasterGain)
	if err := master.Connect(ctx.Destination()); err != nil {
		return err
	}
	done = prof.Start("play")
	_, err := synth.Play(ctx, master, discard{}, score)
	done()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s -> %s: %d voices, %d nodes, %.2fs\n\n",
		id, program.Name(), len(score.Voices), score.NodeCount(), score.Duration)
	for _, e := range score.Timeline() {
		fmt.Fprintf(w, "%7.3fs  %-5s  %s/%s\n", e.Time, e.Action, e.Voice, e.Node)
	}

	if err := ctx.Resume(); err != nil {
		return err
	}
	frames := int(math.Ceil(score.Duration * ctx.SampleRate()))
	out := make([]float32, frames)
	block := cfg.BlockSize
	for start := 0; start < frames; start += block {
		end := min(start+block, frames)
		done = prof.Start("render")
		ctx.Render(out[start:end])
		done()
	}

	fmt.Fprintf(w, "\n  second   peak dB    rms dB\n")
	for _, l := range analysis.Measure(out, cfg.SampleRate) {
		fmt.Fprintf(w, "  %6.0f  %8.1f  %8.1f\n", l.Start, l.PeakDB(), l.RMSDB())
	}
	fmt.Fprintf(w, "\n%s", prof.Report())
	return nil
}
