package patch

import (
	"errors"
	"strings"
	"testing"
)

const generated = `{
  "id": "whatever",
  "name": "Space Bass",
  "description": "A wide detuned bass.",
  "difficulty": "Advanced",
  "modules": [{"name": "VCO-1", "type": "Oscillator"}],
  "connections": [{"from": "VCO-1 [Saw]", "to": "Audio-8 [1]"}],
  "settings": [{"module": "VCO-1", "parameter": "Freq", "value": "C1"}],
  "tips": ["Turn it up."]
}`

func TestDecodeJSON(t *testing.T) {
	p, err := Decode([]byte(generated))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "Space Bass" || p.Difficulty != Advanced {
		t.Errorf("decoded %q / %q", p.Name, p.Difficulty)
	}
	if !strings.HasPrefix(p.ID, CustomPrefix) || p.ID == CustomPrefix+"whatever" {
		t.Errorf("ID = %q, want a fresh custom ID", p.ID)
	}
	if len(p.Modules) != 1 || p.Connections[0].To != "Audio-8 [1]" || p.Settings[0].Value != "C1" {
		t.Errorf("unexpected body: %+v", p)
	}
}

func TestDecodeUniqueIDs(t *testing.T) {
	a, err := Decode([]byte(generated))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Decode([]byte(generated))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("two decodes share ID %q", a.ID)
	}
}

func TestDecodeYAMLDefaults(t *testing.T) {
	p, err := Decode([]byte(`
name: Minimal
modules: []
connections: []
settings:
  - {module: LFO, parameter: Rate, value: 2}
tips: []
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Difficulty != Intermediate {
		t.Errorf("Difficulty = %q, want Intermediate", p.Difficulty)
	}
	if p.Settings[0].Value != "2" {
		t.Errorf("numeric value decoded as %q", p.Settings[0].Value)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not a document", `{"name": `, ""},
		{"missing name", `{"modules": [], "connections": [], "settings": [], "tips": []}`, "name"},
		{"missing lists", `{"name": "x"}`, "modules"},
		{"missing tips", `{"name": "x", "modules": [], "connections": [], "settings": []}`, "tips"},
		{"bad difficulty", `{"name": "x", "difficulty": "Expert", "modules": [], "connections": [], "settings": [], "tips": []}`, "Expert"},
		{"module without type", `{"name": "x", "modules": [{"name": "VCO"}], "connections": [], "settings": [], "tips": []}`, "module 0"},
		{"cable without end", `{"name": "x", "modules": [], "connections": [{"from": "a"}], "settings": [], "tips": []}`, "connection 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	for _, d := range []Difficulty{"", "beginner", "Expert"} {
		if d.Valid() {
			t.Errorf("%q should be invalid", d)
		}
	}
}
