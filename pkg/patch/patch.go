// Package patch models modular-synth patch recipes: the modules to load,
// how to cable them, what to set and a few performance tips. Recipes come
// from the embedded style catalog or from an external generator.
package patch

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Difficulty grades how demanding a patch is to build.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the three grades.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Module is one rack module of a patch.
type Module struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Connection is one cable, named by module and jack, e.g. "VCO-1 [Sine]".
type Connection struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
	Note string `yaml:"note,omitempty" json:"note,omitempty"`
}

// Setting is a knob or switch position. Value is free text ("12 o'clock").
type Setting struct {
	Module      string `yaml:"module" json:"module"`
	Parameter   string `yaml:"parameter" json:"parameter"`
	Value       string `yaml:"value" json:"value"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Patch is a complete recipe. Its ID is what gets previewed.
type Patch struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description" json:"description"`
	Difficulty  Difficulty   `yaml:"difficulty" json:"difficulty"`
	Modules     []Module     `yaml:"modules" json:"modules"`
	Connections []Connection `yaml:"connections" json:"connections"`
	Settings    []Setting    `yaml:"settings" json:"settings"`
	Tips        []string     `yaml:"tips" json:"tips"`
}

// Style is a catalog entry pointing at the patch that demonstrates it.
type Style struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	PatchID     string `yaml:"patchId" json:"patchId"`
	Gradient    string `yaml:"gradient" json:"gradient"`
}

// Validate checks every field a recipe needs to be followed.
func (p *Patch) Validate() error {
	var err error
	if p.ID == "" {
		err = multierr.Append(err, errors.New("missing id"))
	}
	if p.Name == "" {
		err = multierr.Append(err, errors.New("missing name"))
	}
	if !p.Difficulty.Valid() {
		err = multierr.Append(err, fmt.Errorf("difficulty %q is not Beginner, Intermediate or Advanced", p.Difficulty))
	}
	for i, m := range p.Modules {
		if m.Name == "" || m.Type == "" {
			err = multierr.Append(err, fmt.Errorf("module %d: name and type are required", i))
		}
	}
	for i, c := range p.Connections {
		if c.From == "" || c.To == "" {
			err = multierr.Append(err, fmt.Errorf("connection %d: from and to are required", i))
		}
	}
	for i, s := range p.Settings {
		if s.Module == "" || s.Parameter == "" || s.Value == "" {
			err = multierr.Append(err, fmt.Errorf("setting %d: module, parameter and value are required", i))
		}
	}
	if err != nil {
		return fmt.Errorf("patch %q: %w", p.ID, err)
	}
	return nil
}
