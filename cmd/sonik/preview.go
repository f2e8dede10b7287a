package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/sonikatlas/sonik/pkg/config"
	"github.com/sonikatlas/sonik/pkg/debug"
	"github.com/sonikatlas/sonik/pkg/device"
	"github.com/sonikatlas/sonik/pkg/dsp/gain"
	"github.com/sonikatlas/sonik/pkg/patch"
	"github.com/sonikatlas/sonik/pkg/preview"
)

// ErrNotStarted is returned when the first toggle does not start playback.
var ErrNotStarted = errors.New("preview: playback did not start")

type meter interface {
	Peak() float64
	RMS() float64
}

func newRand(seed int64, clock clockwork.Clock) *rand.Rand {
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// retarget restarts a running preview when id now resolves to something
// other than current, and returns the target in effect.
func retarget(ctrl *preview.Controller, res resolver, id, current string, log *debug.Logger) string {
	next := res.resolve(id)
	if next == current {
		return current
	}
	log.Info("%s now resolves to %s", id, next)
	if !ctrl.IsPlaying() {
		return next
	}
	ctrl.Stop()
	if !ctrl.Toggle(next) {
		log.Warn("restart %s failed", next)
	}
	return next
}

func runPreview(cfg config.Config, res resolver, loader *patch.Loader, id string, log *debug.Logger) error {
	clock := clockwork.NewRealClock()
	manager := preview.NewManager(
		device.Factory(device.Options{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize}),
		cfg.MasterGain,
		log.Named("device"),
	)
	defer manager.Close()

	ctrl := preview.New(manager,
		preview.WithClock(clock),
		preview.WithRand(newRand(cfg.Seed, clock)),
		preview.WithAutoStop(cfg.AutoStop),
		preview.WithLogger(log.Named("preview")),
	)
	preview.SetDefault(ctrl)
	defer preview.SetDefault(nil)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var reloaded <-chan struct{}
	if loader != nil {
		done := make(chan struct{})
		defer close(done)
		go func() {
			if err := loader.WatchAndReload(done); err != nil {
				log.Warn("catalog watch: %v", err)
			}
		}()
		reloaded = loader.Reloaded()
	}

	target := res.resolve(id)
	if !preview.TogglePreview(target) {
		return ErrNotStarted
	}

	states := ctrl.Watch(ctx, cfg.PollInterval)
	ticker := clock.NewTicker(cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			preview.StopPreview()
			return nil
		case <-reloaded:
			target = retarget(ctrl, res, id, target, log)
		case playing, ok := <-states:
			if !ok {
				return nil
			}
			// a restart between two polls reports false while a new
			// session is already running
			if !playing && !preview.IsPlaying() {
				return nil
			}
		case <-ticker.Chan():
			if m, ok := manager.Context().(meter); ok {
				log.Debug("t=%.2fs peak %.1f dBFS rms %.1f dBFS",
					manager.Now(), gain.LinearToDb(m.Peak()), gain.LinearToDb(m.RMS()))
			}
		}
	}
}
