//go:build !headless && !js

package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/sonikatlas/sonik/pkg/audio"
)

// latency is the device buffer requested from oto.
const latency = 40 * time.Millisecond

// Stream plays a renderer through the system audio device.
type Stream struct {
	mu      sync.Mutex
	ctx     *oto.Context
	player  *oto.Player
	r       *reader
	started bool
}

// Open creates the device. Failure to reach a device is reported as
// audio.ErrUnsupported.
func Open(sampleRate int, src Renderer) (*Stream, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   latency,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w: %w", audio.ErrUnsupported, err)
	}
	<-ready

	r := newReader(sampleRate, src)
	return &Stream{
		ctx:    ctx,
		player: ctx.NewPlayer(r),
		r:      r,
	}, nil
}

// Start begins pulling from the renderer.
func (s *Stream) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started && s.player != nil {
		s.player.Play()
		s.started = true
	}
}

// Close stops playback and releases the player.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	s.started = false
	return err
}

// Peak returns the decaying peak level of the audio handed to the device.
func (s *Stream) Peak() float64 {
	return s.r.meter.GetPeak()
}

// RMS returns the level of the last 300 ms of audio handed to the device.
func (s *Stream) RMS() float64 {
	return s.r.rms.GetRMS()
}
