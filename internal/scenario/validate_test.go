package scenario

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/reactive/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode string
		wantLine int
	}{
		{
			name:     "duplicate signal",
			src:      "signals:\n  - {name: a, value: 1}\n  - {name: a, value: 2}\n",
			wantCode: "S003",
			wantLine: 3,
		},
		{
			name:     "computed shadows signal",
			src:      "signals:\n  - {name: a}\ncomputed:\n  - {name: a, op: copy, inputs: [a]}\n",
			wantCode: "S003",
			wantLine: 4,
		},
		{
			name:     "unnamed signal",
			src:      "signals:\n  - {value: 1}\n",
			wantCode: "S006",
			wantLine: 2,
		},
		{
			name:     "unknown op",
			src:      "signals:\n  - {name: a}\ncomputed:\n  - {name: c, op: divide, inputs: [a]}\n",
			wantCode: "S004",
			wantLine: 4,
		},
		{
			name:     "neg arity",
			src:      "signals:\n  - {name: a}\n  - {name: b}\ncomputed:\n  - {name: c, op: neg, inputs: [a, b]}\n",
			wantCode: "S006",
			wantLine: 5,
		},
		{
			name:     "sum without inputs",
			src:      "computed:\n  - {name: c, op: sum, inputs: []}\n",
			wantCode: "S006",
			wantLine: 2,
		},
		{
			name:     "forward reference",
			src:      "signals:\n  - {name: a}\ncomputed:\n  - {name: c, op: copy, inputs: [d]}\n  - {name: d, op: copy, inputs: [a]}\n",
			wantCode: "S002",
			wantLine: 4,
		},
		{
			name:     "valid effect",
			src:      "signals:\n  - {name: a}\neffects:\n  - {name: e, watch: [a]}\n",
			wantCode: "",
		},
		{
			name:     "effect watches unknown",
			src:      "signals:\n  - {name: a}\neffects:\n  - {name: e, watch: [a, b]}\n",
			wantCode: "S002",
			wantLine: 4,
		},
		{
			name:     "step with two actions",
			src:      "signals:\n  - {name: a}\nsteps:\n  - {set: a, add: a, value: 1}\n",
			wantCode: "S006",
			wantLine: 4,
		},
		{
			name:     "step with no action",
			src:      "steps:\n  - {value: 1}\n",
			wantCode: "S006",
			wantLine: 2,
		},
		{
			name:     "set without value",
			src:      "signals:\n  - {name: a}\nsteps:\n  - {set: a}\n",
			wantCode: "S006",
			wantLine: 4,
		},
		{
			name:     "add without by",
			src:      "signals:\n  - {name: a}\nsteps:\n  - {add: a}\n",
			wantCode: "S006",
			wantLine: 4,
		},
		{
			name:     "expectFired without count",
			src:      "signals:\n  - {name: a}\neffects:\n  - {name: e, watch: [a]}\nsteps:\n  - {expectFired: e}\n",
			wantCode: "S006",
			wantLine: 6,
		},
		{
			name:     "set on effect",
			src:      "signals:\n  - {name: a}\neffects:\n  - {name: e, watch: [a]}\nsteps:\n  - {set: e, value: 1}\n",
			wantCode: "S002",
			wantLine: 6,
		},
		{
			name:     "expectFired on signal",
			src:      "signals:\n  - {name: a}\nsteps:\n  - {expectFired: a, count: 0}\n",
			wantCode: "S002",
			wantLine: 4,
		},
		{
			name:     "expectError on read",
			src:      "signals:\n  - {name: a}\nsteps:\n  - {expect: a, value: 0, expectError: true}\n",
			wantCode: "S006",
			wantLine: 4,
		},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tt.src), 0644); err != nil {
				t.Fatal(err)
			}
			f, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}

			err = f.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var re *errors.ReactiveError
			if !stderrors.As(err, &re) {
				t.Fatalf("Validate() = %v, want *ReactiveError", err)
			}
			if re.Code != tt.wantCode {
				t.Errorf("code = %s, want %s (%v)", re.Code, tt.wantCode, err)
			}
			if re.Location == nil || re.Location.Line != tt.wantLine {
				t.Errorf("location = %v, want line %d", re.Location, tt.wantLine)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"syntax", "signals: [\n"},
		{"unknown field", "name: x\nsignalz: []\n"},
		{"wrong type", "signals:\n  - {name: a, value: lots}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", strings.NewReader(tt.src))
			var re *errors.ReactiveError
			if !stderrors.As(err, &re) || re.Code != "S001" {
				t.Errorf("Parse() = %v, want S001", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var re *errors.ReactiveError
	if !stderrors.As(err, &re) || re.Code != "S001" {
		t.Errorf("Load() = %v, want S001", err)
	}
}

func TestParseDefaultsName(t *testing.T) {
	f, err := Parse("unnamed.yaml", strings.NewReader("signals: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "unnamed.yaml" {
		t.Errorf("Name = %q", f.Name)
	}
	if !strings.Contains(f.String(), "0 signals") {
		t.Errorf("String() = %q", f.String())
	}
}

func TestStepAction(t *testing.T) {
	tests := []struct {
		step       Step
		wantVerb   string
		wantTarget string
	}{
		{Step{Set: "a"}, "set", "a"},
		{Step{Add: "a"}, "add", "a"},
		{Step{Scale: "a"}, "scale", "a"},
		{Step{Expect: "a"}, "expect", "a"},
		{Step{ExpectFired: "e"}, "expectFired", "e"},
		{Step{}, "", ""},
		{Step{Set: "a", Expect: "a"}, "", ""},
	}
	for _, tt := range tests {
		verb, target := tt.step.Action()
		if verb != tt.wantVerb || target != tt.wantTarget {
			t.Errorf("Action() = %q %q, want %q %q", verb, target, tt.wantVerb, tt.wantTarget)
		}
	}
}
