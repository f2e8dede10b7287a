package patch

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Catalog is a validated set of styles and the patches they point at.
type Catalog struct {
	styles  []Style
	patches map[string]*Patch
}

type catalogFile struct {
	Styles  []Style  `yaml:"styles"`
	Patches []*Patch `yaml:"patches"`
}

// ParseCatalog decodes and validates a YAML catalog. Every style must point
// at a patch in the same file and IDs must be unique.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{patches: make(map[string]*Patch, len(f.Patches))}
	var err error
	for _, p := range f.Patches {
		if verr := p.Validate(); verr != nil {
			err = multierr.Append(err, verr)
			continue
		}
		if _, dup := c.patches[p.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("duplicate patch %q", p.ID))
			continue
		}
		c.patches[p.ID] = p
	}

	seen := make(map[string]bool, len(f.Styles))
	for _, s := range f.Styles {
		switch {
		case s.ID == "":
			err = multierr.Append(err, fmt.Errorf("style %q has no id", s.Name))
		case seen[s.ID]:
			err = multierr.Append(err, fmt.Errorf("duplicate style %q", s.ID))
		case c.patches[s.PatchID] == nil:
			err = multierr.Append(err, fmt.Errorf("style %q points at unknown patch %q", s.ID, s.PatchID))
		default:
			seen[s.ID] = true
			c.styles = append(c.styles, s)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// LoadCatalog reads a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(embedded)
	if err != nil {
		panic(err)
	}
	return c
}

// Styles returns the styles in catalog order.
func (c *Catalog) Styles() []Style {
	out := make([]Style, len(c.styles))
	copy(out, c.styles)
	return out
}

// Style looks a style up by ID.
func (c *Catalog) Style(id string) (Style, bool) {
	for _, s := range c.styles {
		if s.ID == id {
			return s, true
		}
	}
	return Style{}, false
}

// Patch looks a patch up by ID.
func (c *Catalog) Patch(id string) (*Patch, bool) {
	p, ok := c.patches[id]
	return p, ok
}

// Len returns the number of patches.
func (c *Catalog) Len() int {
	return len(c.patches)
}
