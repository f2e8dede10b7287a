package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/sonikatlas/sonik/pkg/audio"
	"github.com/sonikatlas/sonik/pkg/debug"
	"github.com/sonikatlas/sonik/pkg/graph"
	"github.com/sonikatlas/sonik/pkg/patch"
	"github.com/sonikatlas/sonik/pkg/preview"
	"github.com/sonikatlas/sonik/pkg/synth"
)

const beatCatalog = `
styles:
  - {id: beat, name: Beat, patchId: %s}
patches:
  - {id: techno-acid-01, name: Acid, difficulty: Beginner}
  - {id: ambient-drift-01, name: Drift, difficulty: Beginner}
`

func quietLog() *debug.Logger {
	return debug.New(io.Discard, "test", 0)
}

func writeCatalog(t *testing.T, path, patchID string) {
	t.Helper()
	data := strings.Replace(beatCatalog, "%s", patchID, 1)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func loadedCatalog(t *testing.T, patchID string) (string, *patch.Loader) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, patchID)
	loader := patch.NewLoader(path, quietLog())
	if _, err := loader.Load(); err != nil {
		t.Fatal(err)
	}
	return path, loader
}

func TestResolveDefaultCatalog(t *testing.T) {
	res := newResolver(patch.DefaultCatalog(), nil)
	for id, want := range map[string]string{
		"dark-ambient":      "ambient-haunt-02",
		"techno":            "techno-acid-01",
		"glitch-circuit-01": "glitch-circuit-01",
		"no-such-style":     "no-such-style",
	} {
		if got := res.resolve(id); got != want {
			t.Errorf("resolve(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestResolveFollowsReload(t *testing.T) {
	path, loader := loadedCatalog(t, "techno-acid-01")
	res := newResolver(nil, loader)
	router := synth.DefaultRouter()

	if got := res.resolve("beat"); got != "techno-acid-01" {
		t.Fatalf("resolve(beat) = %q, want techno-acid-01", got)
	}
	if p := router.Select(res.resolve("beat")); p.Name() != "rhythm" {
		t.Errorf("beat plays %s, want rhythm", p.Name())
	}

	writeCatalog(t, path, "ambient-drift-01")
	if _, err := loader.Load(); err != nil {
		t.Fatal(err)
	}
	if got := res.resolve("beat"); got != "ambient-drift-01" {
		t.Errorf("resolve(beat) after reload = %q, want ambient-drift-01", got)
	}
	if p := router.Select(res.resolve("beat")); p.Name() != "drone" {
		t.Errorf("beat plays %s after reload, want drone", p.Name())
	}
}

func TestResolveBeforeLoad(t *testing.T) {
	res := newResolver(nil, patch.NewLoader(filepath.Join(t.TempDir(), "none.yaml"), quietLog()))
	if got := res.resolve("beat"); got != "beat" {
		t.Errorf("resolve without a catalog = %q, want beat", got)
	}
}

func newController(t *testing.T) *preview.Controller {
	t.Helper()
	m := preview.NewManager(func() (audio.Context, error) {
		return graph.New(44100), nil
	}, 0.3, quietLog())
	t.Cleanup(func() { m.Close() })
	return preview.New(m,
		preview.WithClock(clockwork.NewFakeClock()),
		preview.WithLogger(quietLog()),
	)
}

func TestRetargetRestartsOnReload(t *testing.T) {
	path, loader := loadedCatalog(t, "techno-acid-01")
	res := newResolver(nil, loader)
	ctrl := newController(t)

	target := res.resolve("beat")
	if !ctrl.Toggle(target) {
		t.Fatal("Toggle did not start")
	}
	first := ctrl.Session()

	if got := retarget(ctrl, res, "beat", target, quietLog()); got != target {
		t.Errorf("retarget without a change = %q, want %q", got, target)
	}
	if ctrl.Session() != first {
		t.Error("unchanged catalog restarted the session")
	}

	writeCatalog(t, path, "ambient-drift-01")
	if _, err := loader.Load(); err != nil {
		t.Fatal(err)
	}
	target = retarget(ctrl, res, "beat", target, quietLog())
	if target != "ambient-drift-01" {
		t.Errorf("target after reload = %q, want ambient-drift-01", target)
	}
	if !ctrl.IsPlaying() {
		t.Fatal("preview stopped on reload")
	}
	if ctrl.Session() == first {
		t.Error("reload kept the old session")
	}
}

func TestRetargetWhileStopped(t *testing.T) {
	path, loader := loadedCatalog(t, "techno-acid-01")
	res := newResolver(nil, loader)
	ctrl := newController(t)

	writeCatalog(t, path, "ambient-drift-01")
	if _, err := loader.Load(); err != nil {
		t.Fatal(err)
	}
	if got := retarget(ctrl, res, "beat", "techno-acid-01", quietLog()); got != "ambient-drift-01" {
		t.Errorf("retarget = %q, want ambient-drift-01", got)
	}
	if ctrl.IsPlaying() {
		t.Error("retarget started a stopped preview")
	}
}

const darkTechno = `{
  "name": "Dark Techno Loop",
  "description": "Driving kick with a filtered stab.",
  "modules": [{"name": "VCO-1", "type": "Oscillator"}],
  "connections": [{"from": "VCO-1 [Saw]", "to": "Audio-8 [1]"}],
  "settings": [{"module": "VCO-1", "parameter": "Freq", "value": "C2"}],
  "tips": ["Keep the resonance low."]
}`

func TestLoadRecipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.json")
	if err := os.WriteFile(path, []byte(darkTechno), 0o644); err != nil {
		t.Fatal(err)
	}

	p, id, err := loadRecipe(path, quietLog())
	if err != nil {
		t.Fatalf("loadRecipe: %v", err)
	}
	if p.Name != "Dark Techno Loop" || p.Difficulty != patch.Intermediate {
		t.Errorf("decoded %q / %q", p.Name, p.Difficulty)
	}
	if !strings.HasPrefix(id, patch.CustomPrefix) || !strings.HasSuffix(id, "/dark-techno-loop") {
		t.Errorf("preview id = %q", id)
	}
	if got := synth.DefaultRouter().Select(id).Name(); got != "rhythm" {
		t.Errorf("recipe plays %s, want rhythm", got)
	}
}

func TestLoadRecipeErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := loadRecipe(filepath.Join(dir, "missing.json"), quietLog()); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name": "No modules"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadRecipe(bad, quietLog()); !errors.Is(err, patch.ErrMalformed) {
		t.Errorf("loadRecipe(bad) = %v, want ErrMalformed", err)
	}
}
