package patch

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sonikatlas/sonik/pkg/debug"
)

const oneStyle = `
styles:
  - {id: a, name: A, patchId: p}
patches:
  - {id: p, name: P, difficulty: Beginner}
`

const twoStyles = `
styles:
  - {id: a, name: A, patchId: p}
  - {id: b, name: B, patchId: p}
patches:
  - {id: p, name: P, difficulty: Beginner}
`

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(oneStyle), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(path, debug.New(io.Discard, "test", 0))
	if l.Catalog() != nil {
		t.Fatal("catalog before Load")
	}
	c, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Styles()) != 1 || l.Catalog() != c {
		t.Errorf("unexpected catalog state")
	}
}

func TestLoaderWatchAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(oneStyle), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(path, debug.New(io.Discard, "test", 0))
	if _, err := l.Load(); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	errc := make(chan error, 1)
	go func() { errc <- l.WatchAndReload(done) }()

	// A broken write keeps the old catalog.
	if err := os.WriteFile(path, []byte("styles: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for reloaded := false; !reloaded; {
		select {
		case <-l.Reloaded():
			if len(l.Catalog().Styles()) == 2 {
				reloaded = true
			}
		case <-tick.C:
			if err := os.WriteFile(path, []byte(twoStyles), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("catalog was not reloaded")
		}
	}

	close(done)
	if err := <-errc; err != nil {
		t.Errorf("WatchAndReload: %v", err)
	}
}
