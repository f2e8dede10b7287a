package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sonikatlas/sonik/pkg/debug"
	"github.com/sonikatlas/sonik/pkg/patch"
)

// resolver turns what the user typed into the ID handed to the preview
// router. The catalog is read on every lookup so a reload takes effect on
// the next toggle.
type resolver struct {
	catalog func() *patch.Catalog
}

// newResolver follows loader when it is set and falls back to the fixed
// catalog otherwise.
func newResolver(catalog *patch.Catalog, loader *patch.Loader) resolver {
	if loader != nil {
		return resolver{catalog: loader.Catalog}
	}
	return resolver{catalog: func() *patch.Catalog { return catalog }}
}

// resolve maps a style ID to the patch it demonstrates. Patch IDs and
// unknown IDs come back unchanged; the router still matches them on their
// category keywords.
func (r resolver) resolve(id string) string {
	c := r.catalog()
	if c == nil {
		return id
	}
	if s, ok := c.Style(id); ok {
		return s.PatchID
	}
	return id
}

// loadRecipe decodes a generated recipe file and returns the ID to preview
// it under: the fresh custom ID followed by the slugged patch name, so a
// "Dark Techno Loop" still routes to the techno program.
func loadRecipe(path string, log *debug.Logger) (*patch.Patch, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read recipe: %w", err)
	}
	p, err := patch.Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	log.Info("recipe %s: %q, %s, %d modules, %d connections",
		p.ID, p.Name, p.Difficulty, len(p.Modules), len(p.Connections))
	return p, p.ID + "/" + slug(p.Name), nil
}

func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
