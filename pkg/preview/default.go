package preview

import "sync"

var (
	defaultMu         sync.RWMutex
	defaultController *Controller
)

// SetDefault installs the controller behind TogglePreview and IsPlaying.
func SetDefault(c *Controller) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultController = c
}

// Default returns the installed controller, or nil.
func Default() *Controller {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultController
}

// TogglePreview toggles the default controller. Without one there is no
// audio and it returns false.
func TogglePreview(id string) bool {
	c := Default()
	if c == nil {
		return false
	}
	return c.Toggle(id)
}

// IsPlaying reports whether the default controller is playing.
func IsPlaying() bool {
	c := Default()
	return c != nil && c.IsPlaying()
}

// StopPreview stops the default controller's session.
func StopPreview() {
	if c := Default(); c != nil {
		c.Stop()
	}
}
