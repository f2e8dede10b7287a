package preview

import (
	"testing"

	"github.com/jonboulle/clockwork"
)

func TestDefaultSurface(t *testing.T) {
	SetDefault(nil)
	if TogglePreview("techno") {
		t.Error("TogglePreview without a controller should return false")
	}
	if IsPlaying() {
		t.Error("IsPlaying without a controller")
	}
	StopPreview()

	c, _ := newTestController(t, clockwork.NewFakeClock())
	SetDefault(c)
	defer SetDefault(nil)

	if Default() != c {
		t.Fatal("Default did not return the installed controller")
	}
	if !TogglePreview("industrial") || !IsPlaying() {
		t.Fatal("expected playback")
	}
	StopPreview()
	if IsPlaying() {
		t.Error("still playing after StopPreview")
	}
}
