package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/vango-dev/reactive/internal/errors"
	"gopkg.in/yaml.v3"
)

// File is a parsed scenario.
type File struct {
	Name     string         `yaml:"name" json:"name"`
	Signals  []SignalDecl   `yaml:"signals" json:"signals"`
	Computed []ComputedDecl `yaml:"computed" json:"computed"`
	Effects  []EffectDecl   `yaml:"effects" json:"effects"`
	Steps    []Step         `yaml:"steps" json:"steps"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-" json:"-"`
}

// SignalDecl declares a writable signal.
type SignalDecl struct {
	Name  string `yaml:"name" json:"name"`
	Value int64  `yaml:"value" json:"value"`

	Line int `yaml:"-" json:"-"`
}

// ComputedDecl declares a computed signal.
type ComputedDecl struct {
	Name   string   `yaml:"name" json:"name"`
	Op     Op       `yaml:"op" json:"op"`
	Inputs []string `yaml:"inputs" json:"inputs"`
	Offset int64    `yaml:"offset" json:"offset"`

	Line int `yaml:"-" json:"-"`
}

// EffectDecl declares an effect.
type EffectDecl struct {
	Name  string   `yaml:"name" json:"name"`
	Watch []string `yaml:"watch" json:"watch"`

	Line int `yaml:"-" json:"-"`
}

// Step is one action. Exactly one of Set, Add, Scale, Expect and
// ExpectFired must be set.
type Step struct {
	// Set writes Value to the named signal.
	Set string `yaml:"set,omitempty" json:"set,omitempty"`

	// Add updates the named signal to its value plus By.
	Add string `yaml:"add,omitempty" json:"add,omitempty"`

	// Scale updates the named signal to its value times By.
	Scale string `yaml:"scale,omitempty" json:"scale,omitempty"`

	// Expect reads the named signal and compares it with Value.
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"`

	// ExpectFired compares the named effect's run count with Count.
	ExpectFired string `yaml:"expectFired,omitempty" json:"expectFired,omitempty"`

	Value *int64 `yaml:"value,omitempty" json:"value,omitempty"`
	By    *int64 `yaml:"by,omitempty" json:"by,omitempty"`
	Count *int   `yaml:"count,omitempty" json:"count,omitempty"`

	// ExpectError marks a write that must be rejected.
	ExpectError bool `yaml:"expectError,omitempty" json:"expectError,omitempty"`

	Line int `yaml:"-" json:"-"`
}

// UnmarshalYAML records the line of each declaration.
func (d *SignalDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain SignalDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Line = value.Line
	return nil
}

// UnmarshalYAML records the line of each declaration.
func (d *ComputedDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain ComputedDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Line = value.Line
	return nil
}

// UnmarshalYAML records the line of each declaration.
func (d *EffectDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain EffectDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.Line = value.Line
	return nil
}

// UnmarshalYAML records the line of each step.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	type plain Step
	if err := value.Decode((*plain)(s)); err != nil {
		return err
	}
	s.Line = value.Line
	return nil
}

// Action returns the step's verb and target, or empty strings if the step
// names no action or more than one.
func (s Step) Action() (verb, target string) {
	n := 0
	for _, a := range []struct{ verb, target string }{
		{"set", s.Set},
		{"add", s.Add},
		{"scale", s.Scale},
		{"expect", s.Expect},
		{"expectFired", s.ExpectFired},
	} {
		if a.target != "" {
			verb, target = a.verb, a.target
			n++
		}
	}
	if n != 1 {
		return "", ""
	}
	return verb, target
}

// Load reads and parses the scenario at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("S001").Wrap(err).WithDetail(err.Error())
	}
	f, err := Parse(path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes a scenario. name is used in error locations.
func Parse(name string, r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, errors.New("S001").WithDetailf("%s is empty", name)
		}
		return nil, errors.New("S001").
			Wrap(err).
			WithLocationFromError(name, err).
			WithDetail(err.Error())
	}
	f.Path = name
	if f.Name == "" {
		f.Name = name
	}
	return &f, nil
}

// location attaches the file position of line to err.
func (f *File) location(err *errors.ReactiveError, line int) *errors.ReactiveError {
	if f.Path == "" || line <= 0 {
		return err
	}
	return err.WithLocation(f.Path, line, 0)
}

// String returns a one-line summary.
func (f *File) String() string {
	return fmt.Sprintf("%s (%d signals, %d computed, %d effects, %d steps)",
		f.Name, len(f.Signals), len(f.Computed), len(f.Effects), len(f.Steps))
}
