// Package preview plays short auditions of a sound category. A Controller
// owns the single playback session, a Manager owns the process' rendering
// context and master gain, and a Registry owns the nodes of the session.
package preview

import (
	"io"
	"sync"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/debug"
)

// Factory opens a rendering context.
type Factory func() (audio.Context, error)

// Manager lazily creates the rendering context and a master gain stage
// feeding its destination, and resumes the context when it is suspended.
type Manager struct {
	mu      sync.Mutex
	factory Factory
	level   float64
	log     *debug.Logger

	ctx    audio.Context
	master audio.Gain
}

// NewManager creates a manager whose master gain sits at level.
func NewManager(factory Factory, level float64, log *debug.Logger) *Manager {
	if log == nil {
		log = debug.Default()
	}
	return &Manager{factory: factory, level: level, log: log}
}

// Ensure returns the live context and the master gain to play into. It
// reports false when the platform cannot supply a context; creation is
// retried on the next call.
func (m *Manager) Ensure() (audio.Context, audio.Node, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx == nil {
		ctx, err := m.factory()
		if err != nil {
			m.log.Warn("audio unavailable: %v", err)
			return nil, nil, false
		}
		master := ctx.NewGain()
		master.Gain().SetValue(m.level)
		if err := master.Connect(ctx.Destination()); err != nil {
			m.log.Error("connect master gain: %v", err)
			if c, ok := ctx.(io.Closer); ok {
				if cerr := c.Close(); cerr != nil {
					m.log.Warn("close context: %v", cerr)
				}
			}
			return nil, nil, false
		}
		m.ctx, m.master = ctx, master
		m.log.Debug("opened %.0f Hz context, master gain %.2f", ctx.SampleRate(), m.level)
	}

	if m.ctx.State() == audio.StateSuspended {
		if err := m.ctx.Resume(); err != nil {
			m.log.Warn("resume context: %v", err)
		}
	}
	return m.ctx, m.master, true
}

// Context returns the context if one has been created.
func (m *Manager) Context() audio.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx
}

// Now returns the context time, or zero before a context exists.
func (m *Manager) Now() float64 {
	if ctx := m.Context(); ctx != nil {
		return ctx.CurrentTime()
	}
	return 0
}

// Close releases the context when it holds a device.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx == nil {
		return nil
	}
	var err error
	if c, ok := m.ctx.(io.Closer); ok {
		err = c.Close()
	}
	m.ctx, m.master = nil, nil
	return err
}
