package patch

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// CustomPrefix starts the ID of every decoded patch.
const CustomPrefix = "custom_"

// ErrMalformed reports generator output that is not a usable patch.
var ErrMalformed = errors.New("patch: malformed recipe")

// wire mirrors Patch with pointer lists so absent keys can be told apart
// from empty ones.
type wire struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Difficulty  Difficulty    `yaml:"difficulty"`
	Modules     *[]Module     `yaml:"modules"`
	Connections *[]Connection `yaml:"connections"`
	Settings    *[]Setting    `yaml:"settings"`
	Tips        *[]string     `yaml:"tips"`
}

// Decode parses a generated recipe, JSON or YAML. Name, modules,
// connections, settings and tips must be present; a missing difficulty
// defaults to Intermediate. Any ID in the input is replaced with a fresh
// custom_<xid> so generated patches never collide with catalog entries.
func Decode(data []byte) (*Patch, error) {
	var w wire
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	var err error
	if w.Name == "" {
		err = multierr.Append(err, errors.New("name is required"))
	}
	if w.Modules == nil {
		err = multierr.Append(err, errors.New("modules are required"))
	}
	if w.Connections == nil {
		err = multierr.Append(err, errors.New("connections are required"))
	}
	if w.Settings == nil {
		err = multierr.Append(err, errors.New("settings are required"))
	}
	if w.Tips == nil {
		err = multierr.Append(err, errors.New("tips are required"))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	p := &Patch{
		ID:          CustomPrefix + xid.New().String(),
		Name:        w.Name,
		Description: w.Description,
		Difficulty:  w.Difficulty,
		Modules:     *w.Modules,
		Connections: *w.Connections,
		Settings:    *w.Settings,
		Tips:        *w.Tips,
	}
	if p.Difficulty == "" {
		p.Difficulty = Intermediate
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return p, nil
}
