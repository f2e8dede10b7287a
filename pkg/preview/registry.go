package preview

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/debug"
)

// Registry tracks every node of the running session so it can be torn
// down at once.
type Registry struct {
	mu    sync.Mutex
	nodes []audio.Node
	log   *debug.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *debug.Logger) *Registry {
	if log == nil {
		log = debug.Default()
	}
	return &Registry{log: log}
}

// Register appends n.
func (r *Registry) Register(n audio.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = append(r.nodes, n)
}

// Len returns the number of tracked nodes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nodes)
}

// ReleaseAll stops every source at now, drops pending gain automation,
// disconnects every node and empties the registry. Sources that never
// started or already ended are expected and ignored; any other failure,
// panics included, is collected without interrupting the teardown of the
// remaining nodes.
func (r *Registry) ReleaseAll(now float64) error {
	r.mu.Lock()
	nodes := r.nodes
	r.nodes = nil
	r.mu.Unlock()

	var err error
	for _, n := range nodes {
		switch v := n.(type) {
		case audio.Scheduled:
			err = multierr.Append(err, stop(v, now))
		case audio.Gain:
			err = multierr.Append(err, cancel(v, now))
		}
		err = multierr.Append(err, disconnect(n))
	}
	if len(nodes) > 0 {
		r.log.Debug("released %d nodes", len(nodes))
	}
	return err
}

func stop(s audio.Scheduled, now float64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("stop %v: %v", s, p)
		}
	}()
	if err := s.Stop(now); err != nil && !errors.Is(err, audio.ErrInvalidState) {
		return fmt.Errorf("stop %v: %w", s, err)
	}
	return nil
}

func cancel(g audio.Gain, now float64) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("cancel %v: %v", g, p)
		}
	}()
	g.Gain().CancelScheduledValues(now)
	return nil
}

func disconnect(n audio.Node) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("disconnect %v: %v", n, p)
		}
	}()
	n.Disconnect()
	return nil
}
