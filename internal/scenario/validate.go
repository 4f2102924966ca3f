package scenario

import (
	"github.com/vango-dev/reactive/internal/errors"
)

// Validate checks names, operations and steps. It does not build anything;
// empty effect watch lists are left for the engine to reject.
func (f *File) Validate() error {
	kinds := make(map[string]string)

	declare := func(name, kind string, line int) error {
		if name == "" {
			return f.location(errors.New("S006").WithDetailf("%s without a name", kind), line)
		}
		if prev, ok := kinds[name]; ok {
			return f.location(errors.New("S003").
				WithDetailf("%s %q already declared as a %s", kind, name, prev), line)
		}
		kinds[name] = kind
		return nil
	}

	for _, s := range f.Signals {
		if err := declare(s.Name, "signal", s.Line); err != nil {
			return err
		}
	}

	for _, c := range f.Computed {
		lo, hi, ok := c.Op.arity()
		if !ok {
			return f.location(errors.New("S004").
				WithDetailf("computed %q uses unknown op %q", c.Name, c.Op), c.Line)
		}
		if len(c.Inputs) < lo || (hi >= 0 && len(c.Inputs) > hi) {
			return f.location(errors.New("S006").
				WithDetailf("computed %q: op %q takes %s, got %d", c.Name, c.Op, arityText(lo, hi), len(c.Inputs)), c.Line)
		}
		// Inputs must already be declared, which rules out cycles.
		for _, in := range c.Inputs {
			if k := kinds[in]; k != "signal" && k != "computed" {
				return f.location(errors.New("S002").
					WithDetailf("computed %q reads undeclared signal %q", c.Name, in), c.Line)
			}
		}
		if err := declare(c.Name, "computed", c.Line); err != nil {
			return err
		}
	}

	for _, e := range f.Effects {
		for _, w := range e.Watch {
			if k := kinds[w]; k != "signal" && k != "computed" {
				return f.location(errors.New("S002").
					WithDetailf("effect %q watches unknown signal %q", e.Name, w), e.Line)
			}
		}
		if err := declare(e.Name, "effect", e.Line); err != nil {
			return err
		}
	}

	for i, s := range f.Steps {
		if err := f.validateStep(i+1, s, kinds); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) validateStep(n int, s Step, kinds map[string]string) error {
	verb, target := s.Action()
	if verb == "" {
		return f.location(errors.New("S006").
			WithDetailf("step %d must have exactly one of set, add, scale, expect, expectFired", n), s.Line)
	}

	want := "signal"
	if verb == "expectFired" {
		want = "effect"
	}
	k, ok := kinds[target]
	if !ok || (want == "effect") != (k == "effect") {
		return f.location(errors.New("S002").
			WithDetailf("step %d: %s target %q is not a declared %s", n, verb, target, want), s.Line)
	}

	switch verb {
	case "set", "expect":
		if s.Value == nil {
			return f.location(errors.New("S006").WithDetailf("step %d: %s needs value", n, verb), s.Line)
		}
	case "add", "scale":
		if s.By == nil {
			return f.location(errors.New("S006").WithDetailf("step %d: %s needs by", n, verb), s.Line)
		}
	case "expectFired":
		if s.Count == nil {
			return f.location(errors.New("S006").WithDetailf("step %d: expectFired needs count", n), s.Line)
		}
	}

	if s.ExpectError && (verb == "expect" || verb == "expectFired") {
		return f.location(errors.New("S006").
			WithDetailf("step %d: expectError only applies to set, add and scale", n), s.Line)
	}
	return nil
}

func arityText(lo, hi int) string {
	switch {
	case hi < 0:
		return "at least one input"
	case lo == hi && lo == 1:
		return "exactly one input"
	default:
		return "a different number of inputs"
	}
}
