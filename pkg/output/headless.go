//go:build headless && !js

package output

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// tick is how often the headless sink drains the renderer.
const tick = 10 * time.Millisecond

// Stream drains a renderer at wall-clock pace without a device.
type Stream struct {
	mu         sync.Mutex
	clock      clockwork.Clock
	sampleRate int
	r          *reader
	done       chan struct{}
	wg         sync.WaitGroup
	started    bool
}

// Open creates a headless sink on the real clock.
func Open(sampleRate int, src Renderer) (*Stream, error) {
	return OpenWithClock(clockwork.NewRealClock(), sampleRate, src), nil
}

// OpenWithClock creates a headless sink paced by clock.
func OpenWithClock(clock clockwork.Clock, sampleRate int, src Renderer) *Stream {
	return &Stream{
		clock:      clock,
		sampleRate: sampleRate,
		r:          newReader(sampleRate, src),
	}
}

// Start launches the drain loop.
func (s *Stream) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.done)
}

func (s *Stream) loop(done <-chan struct{}) {
	defer s.wg.Done()

	last := s.clock.Now()
	ticker := s.clock.NewTicker(tick)
	defer ticker.Stop()

	var owed float64
	var scratch []byte
	for {
		select {
		case <-done:
			return
		case now := <-ticker.Chan():
			owed += now.Sub(last).Seconds() * float64(s.sampleRate)
			last = now
			frames := int(owed)
			owed -= float64(frames)
			if cap(scratch) < frames*4 {
				scratch = make([]byte, frames*4)
			}
			_, _ = s.r.Read(scratch[:frames*4])
		}
	}
}

// Close stops the drain loop.
func (s *Stream) Close() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// Peak returns the decaying peak level of the audio drained so far.
func (s *Stream) Peak() float64 {
	return s.r.meter.GetPeak()
}

// RMS returns the level of the last 300 ms of audio drained so far.
func (s *Stream) RMS() float64 {
	return s.r.rms.GetRMS()
}
