package patch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/sonikatlas/sonik/pkg/debug"
)

// Loader keeps a catalog file loaded and optionally reloads it on change.
// A reload that fails keeps the previous catalog.
type Loader struct {
	path string
	log  *debug.Logger

	mu      sync.RWMutex
	catalog *Catalog
	reloads chan struct{}
}

// NewLoader creates a loader for the catalog at path.
func NewLoader(path string, log *debug.Logger) *Loader {
	if log == nil {
		log = debug.Default()
	}
	return &Loader{path: path, log: log, reloads: make(chan struct{}, 1)}
}

// Load reads the file and replaces the current catalog.
func (l *Loader) Load() (*Catalog, error) {
	c, err := LoadCatalog(l.path)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.catalog = c
	l.mu.Unlock()
	return c, nil
}

// Catalog returns the current catalog, or nil before the first Load.
func (l *Loader) Catalog() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}

// Reloaded receives a value after every successful reload by
// WatchAndReload. Notifications coalesce.
func (l *Loader) Reloaded() <-chan struct{} {
	return l.reloads
}

// WatchAndReload watches the catalog's directory and reloads when the file
// is written or replaced. It blocks until done is closed.
func (l *Loader) WatchAndReload(done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch dir %q: %w", dir, err)
	}
	name := filepath.Clean(l.path)

	for {
		select {
		case <-done:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			c, err := l.Load()
			if err != nil {
				l.log.Warn("reload %s: %v", l.path, err)
				continue
			}
			l.log.Info("reloaded %s: %d styles", l.path, len(c.styles))
			select {
			case l.reloads <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
