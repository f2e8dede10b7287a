package preview

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/xid"

	"github.com/sonikatlas/sonik/pkg/debug"
	"github.com/sonikatlas/sonik/pkg/synth"
)

// DefaultAutoStop is how long a session plays before stopping by itself.
const DefaultAutoStop = 5 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock driving auto-stop and Watch.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithRand sets the random source handed to programs.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithAutoStop sets the session length.
func WithAutoStop(d time.Duration) Option {
	return func(c *Controller) { c.autoStop = d }
}

// WithRouter replaces the category table.
func WithRouter(r *synth.Router) Option {
	return func(c *Controller) { c.router = r }
}

// WithLogger sets the logger.
func WithLogger(log *debug.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller is the playback state machine. At most one session exists at
// a time: toggling while playing stops the session instead of starting
// another, whatever identifier is passed.
type Controller struct {
	mu       sync.Mutex
	manager  *Manager
	registry *Registry
	router   *synth.Router
	clock    clockwork.Clock
	rng      *rand.Rand
	autoStop time.Duration
	log      *debug.Logger

	playing bool
	session xid.ID
	gen     uint64 // bumped on every start and stop
	timer   clockwork.Timer
}

// New creates a stopped controller playing through m.
func New(m *Manager, opts ...Option) *Controller {
	c := &Controller{
		manager:  m,
		router:   synth.DefaultRouter(),
		clock:    clockwork.NewRealClock(),
		autoStop: DefaultAutoStop,
		log:      debug.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(c.clock.Now().UnixNano()))
	}
	c.registry = NewRegistry(c.log)
	return c
}

// Toggle starts a session for id when stopped and returns true, or stops
// the current session and returns false. It also returns false when no
// audio output is available or the program cannot be played.
func (c *Controller) Toggle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing {
		c.stopLocked("toggle")
		return false
	}

	ctx, dest, ok := c.manager.Ensure()
	if !ok {
		return false
	}

	program := c.router.Select(id)
	score := program.Compose(synth.Env{SampleRate: ctx.SampleRate(), Rand: c.rng})
	if _, err := synth.Play(ctx, dest, c.registry, score); err != nil {
		c.log.Error("%v", err)
		if err := c.registry.ReleaseAll(ctx.CurrentTime()); err != nil {
			c.log.Warn("teardown after failed start: %v", err)
		}
		return false
	}

	c.gen++
	gen := c.gen
	c.session = xid.New()
	c.playing = true
	c.timer = c.clock.AfterFunc(c.autoStop, func() { c.expire(gen) })

	c.log.Info("session %s: %q plays %s (%d nodes, %.2fs)",
		c.session, id, program.Name(), score.NodeCount(), score.Duration)
	return true
}

// Stop ends the current session, if any.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked("stop")
}

// IsPlaying reports whether a session is running.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Session returns the ID of the running session, or "" when stopped.
func (c *Controller) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return ""
	}
	return c.session.String()
}

// Registered returns the number of nodes held by the current session.
func (c *Controller) Registered() int {
	return c.registry.Len()
}

// Watch polls the playing state every interval and sends it whenever it
// changes, starting with the current state. The channel closes when ctx is
// done.
func (c *Controller) Watch(ctx context.Context, interval time.Duration) <-chan bool {
	ch := make(chan bool)
	go func() {
		defer close(ch)
		ticker := c.clock.NewTicker(interval)
		defer ticker.Stop()

		last := c.IsPlaying()
		select {
		case ch <- last:
		case <-ctx.Done():
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				now := c.IsPlaying()
				if now == last {
					continue
				}
				last = now
				select {
				case ch <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch
}

// expire runs on the auto-stop timer. A timer from an earlier session finds
// a different generation and does nothing.
func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || gen != c.gen {
		return
	}
	c.timer = nil
	c.stopLocked("auto-stop")
}

func (c *Controller) stopLocked(reason string) {
	if !c.playing {
		return
	}
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if err := c.registry.ReleaseAll(c.manager.Now()); err != nil {
		c.log.Warn("session %s teardown: %v", c.session, err)
	}
	c.playing = false
	c.log.Info("session %s stopped (%s)", c.session, reason)
}
