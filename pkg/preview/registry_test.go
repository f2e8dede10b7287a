package preview

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/debug"
)

type fakeSource struct {
	stopErr      error
	stopPanic    bool
	stoppedAt    float64
	stops        int
	disconnected int
}

func (f *fakeSource) Connect(audio.Node) error       { return nil }
func (f *fakeSource) ConnectParam(audio.Param) error { return nil }
func (f *fakeSource) Disconnect()                    { f.disconnected++ }
func (f *fakeSource) Start(float64) error            { return nil }

func (f *fakeSource) Stop(when float64) error {
	if f.stopPanic {
		panic("boom")
	}
	f.stops++
	f.stoppedAt = when
	return f.stopErr
}

func (f *fakeSource) String() string { return "fake" }

type fakeNode struct {
	panics       bool
	disconnected int
}

func (f *fakeNode) Connect(audio.Node) error       { return nil }
func (f *fakeNode) ConnectParam(audio.Param) error { return nil }

func (f *fakeNode) Disconnect() {
	if f.panics {
		panic("detached twice")
	}
	f.disconnected++
}

type fakeParam struct {
	audio.Param
	cancelledAt []float64
}

func (p *fakeParam) CancelScheduledValues(t float64) {
	p.cancelledAt = append(p.cancelledAt, t)
}

type fakeGain struct {
	fakeNode
	gain fakeParam
}

func (f *fakeGain) Gain() audio.Param { return &f.gain }

func quietLogger() *debug.Logger {
	return debug.New(io.Discard, "test", 0)
}

func TestReleaseAllEmpty(t *testing.T) {
	r := NewRegistry(quietLogger())
	if err := r.ReleaseAll(1); err != nil {
		t.Errorf("ReleaseAll on empty registry: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestReleaseAllStopsAndDisconnects(t *testing.T) {
	r := NewRegistry(quietLogger())
	src := &fakeSource{}
	n := &fakeNode{}
	r.Register(src)
	r.Register(n)

	if err := r.ReleaseAll(2.5); err != nil {
		t.Fatalf("ReleaseAll: %v", err)
	}
	if src.stops != 1 || src.stoppedAt != 2.5 {
		t.Errorf("source stopped %d times at %v", src.stops, src.stoppedAt)
	}
	if src.disconnected != 1 || n.disconnected != 1 {
		t.Errorf("disconnects: source %d, node %d", src.disconnected, n.disconnected)
	}
	if r.Len() != 0 {
		t.Errorf("Len after release = %d", r.Len())
	}
}

func TestReleaseAllIgnoresInvalidState(t *testing.T) {
	r := NewRegistry(quietLogger())
	r.Register(&fakeSource{stopErr: audio.ErrInvalidState})
	if err := r.ReleaseAll(0); err != nil {
		t.Errorf("ErrInvalidState should be ignored, got %v", err)
	}
}

func TestReleaseAllCollectsFailures(t *testing.T) {
	r := NewRegistry(quietLogger())
	failing := &fakeSource{stopErr: errors.New("device gone")}
	panicking := &fakeSource{stopPanic: true}
	badNode := &fakeNode{panics: true}
	last := &fakeNode{}
	r.Register(failing)
	r.Register(panicking)
	r.Register(badNode)
	r.Register(last)

	err := r.ReleaseAll(0)
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	for _, want := range []string{"device gone", "boom", "detached twice"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	if last.disconnected != 1 {
		t.Error("teardown stopped before the last node")
	}
	if panicking.disconnected != 1 {
		t.Error("panicking source was not disconnected")
	}
	if r.Len() != 0 {
		t.Errorf("Len after release = %d", r.Len())
	}
}

func TestReleaseAllCancelsGainAutomation(t *testing.T) {
	r := NewRegistry(quietLogger())
	g := &fakeGain{}
	r.Register(g)

	if err := r.ReleaseAll(2.5); err != nil {
		t.Fatal(err)
	}
	if len(g.gain.cancelledAt) != 1 || g.gain.cancelledAt[0] != 2.5 {
		t.Errorf("cancelled at %v, want [2.5]", g.gain.cancelledAt)
	}
	if g.disconnected != 1 {
		t.Errorf("gain disconnected %d times, want 1", g.disconnected)
	}
}
