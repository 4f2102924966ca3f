package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/reactive/pkg/reactive"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "runtime error",
			code:    "R001",
			wantMsg: "Computed signal is read only",
			wantCat: CategoryRuntime,
		},
		{
			name:    "config error",
			code:    "C002",
			wantMsg: "Invalid config file",
			wantCat: CategoryConfig,
		},
		{
			name:    "scenario error",
			code:    "S002",
			wantMsg: "Unknown name",
			wantCat: CategoryScenario,
		},
		{
			name:    "unknown error code",
			code:    "X999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "file %q not found", "a.yaml")
	if err.Message != `file "a.yaml" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `file "a.yaml" not found` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestReactiveError_Error(t *testing.T) {
	err := New("S002").WithDetailf("signal %q", "b")
	want := `S002: Unknown name: signal "b"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestReactiveError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "scenario.yaml")
	content := "name: x\nsignals:\n  - {name: a, value: 1}\neffects:\n  - {name: e, watch: [b]}\nsteps: []\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("S002").WithLocation(file, 3, 0)
	if err.Location.Line != 3 {
		t.Errorf("Line = %d, want 3", err.Location.Line)
	}
	if len(err.Context) != 5 {
		t.Fatalf("expected 5 context lines, got %d: %v", len(err.Context), err.Context)
	}
	if err.Context[2] != "  - {name: a, value: 1}" {
		t.Errorf("centre line = %q", err.Context[2])
	}

	// Near the top of the file the window is clipped, not shifted.
	top := New("S002").WithLocation(file, 1, 0)
	if top.contextStart != 1 || top.Context[0] != "name: x" {
		t.Errorf("contextStart = %d, first = %q", top.contextStart, top.Context[0])
	}
}

func TestReactiveError_WithLocationFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantLine int
	}{
		{"yaml syntax", stderrors.New("yaml: line 7: did not find expected key"), 7},
		{"yaml unmarshal", stderrors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"), 3},
		{"no line", stderrors.New("unexpected EOF"), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("S001").WithLocationFromError("missing.yaml", tt.err)
			if tt.wantLine == 0 {
				if err.Location != nil {
					t.Errorf("expected no location, got %v", err.Location)
				}
				return
			}
			if err.Location == nil || err.Location.Line != tt.wantLine {
				t.Errorf("Location = %v, want line %d", err.Location, tt.wantLine)
			}
		})
	}
}

func TestReactiveError_Wrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := New("C002").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "C002") != nil {
		t.Error("FromError(nil) should be nil")
	}

	cause := stderrors.New("bad json")
	err := FromError(cause, "C002")
	if err.Code != "C002" || err.Detail != "bad json" || err.Wrapped != cause {
		t.Errorf("unexpected %+v", err)
	}

	existing := New("S003")
	if FromError(existing, "C002") != existing {
		t.Error("existing ReactiveError should be returned as-is")
	}
}

func TestFromEngine(t *testing.T) {
	st := reactive.NewStore()
	c := reactive.NewComputedIn(st, func() int { return 1 })

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"read only", c.Set(5), "R001"},
		{"read only sentinel", reactive.ErrReadOnly, "R001"},
		{"empty watch set", st.CreateEffect(func() {}), "R002"},
		{"nil watch", st.CreateEffect(func() {}, (*reactive.Signal[int])(nil)), "R003"},
		{"other", stderrors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromEngine(tt.err)
			if err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", err.Code, tt.wantCode)
			}
			if !stderrors.Is(err, tt.err) {
				t.Error("engine error should stay in the chain")
			}
		})
	}

	if FromEngine(nil) != nil {
		t.Error("FromEngine(nil) should be nil")
	}

	ro := FromEngine(c.Set(5))
	if !strings.Contains(ro.Detail, "rejected value 5") {
		t.Errorf("Detail = %q", ro.Detail)
	}

	upd := FromEngine(c.Update(func(v int) int { return v + 1 }))
	if !strings.Contains(upd.Detail, "rejected value func(int) int") {
		t.Errorf("Update detail = %q, want the transform's type", upd.Detail)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{&Location{File: "a.yaml", Line: 3, Column: 4}, "a.yaml:3:4"},
		{&Location{File: "a.yaml", Line: 3}, "a.yaml:3"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "s.yaml")
	if err := os.WriteFile(file, []byte("a\nb\nc\nd\ne\n"), 0644); err != nil {
		t.Fatal(err)
	}

	formatted := New("S002").
		WithLocation(file, 3, 2).
		WithDetail(`effect "log" watches unknown signal "b"`).
		Format()

	for _, want := range []string{
		"ERROR S002: Unknown name",
		file + ":3:2",
		"→    3 │ c",
		"^",
		`effect "log" watches unknown signal "b"`,
		"Hint:",
		"Learn more:",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q:\n%s", want, formatted)
		}
	}
}

func TestFormatStep(t *testing.T) {
	DisableColors()
	defer EnableColors()

	withFile := New("S005").WithLocation("missing.yaml", 12, 0).WithStep(4).Format()
	if !strings.Contains(withFile, "missing.yaml:12 (step 4)") {
		t.Errorf("Format() missing position line:\n%s", withFile)
	}

	stepOnly := New("R001").WithStep(2).Format()
	if !strings.Contains(stepOnly, "  (step 2)") {
		t.Errorf("Format() missing step:\n%s", stepOnly)
	}

	if strings.Contains(New("R001").Format(), "step") {
		t.Error("Format() should not mention a step when none is set")
	}

	if !strings.Contains(New("S005").WithStep(3).FormatJSON(), `"step":3`) {
		t.Error("FormatJSON() should carry the step")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("R001").WithLocation("test.yaml", 10, 5)
	want := "test.yaml:10:5: R001: Computed signal is read only"
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("R001").WithLocation("test.yaml", 10, 0).Wrap(stderrors.New("cause"))

	var decoded map[string]any
	if jsonErr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jsonErr != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v", jsonErr)
	}
	if decoded["code"] != "R001" || decoded["category"] != "runtime" || decoded["cause"] != "cause" {
		t.Errorf("unexpected JSON %v", decoded)
	}
	loc, ok := decoded["location"].(map[string]any)
	if !ok || loc["file"] != "test.yaml" || loc["line"] != float64(10) {
		t.Errorf("unexpected location %v", decoded["location"])
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, New("R002"))
	if !strings.Contains(buf.String(), "ERROR R002") {
		t.Errorf("PrintError() = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("PrintError() = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("GetAllCodes() should return codes")
	}
	if codes[0] != "C001" {
		t.Errorf("codes should be sorted, first = %q", codes[0])
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted at %d: %v", i, codes)
		}
	}
}

func TestGetTemplateAndRegister(t *testing.T) {
	if _, ok := GetTemplate("R001"); !ok {
		t.Error("R001 should exist")
	}
	if _, ok := GetTemplate("X999"); ok {
		t.Error("X999 should not exist")
	}

	Register("X999", ErrorTemplate{Category: CategoryCLI, Message: "Custom test error"})
	defer delete(registry, "X999")

	if New("X999").Message != "Custom test error" {
		t.Error("registered template not used")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("short text", 100)
	if len(got) != 1 || got[0] != "short text" {
		t.Errorf("wrapText short text: got %v", got)
	}

	got = wrapText("this is a longer text that should be wrapped", 20)
	if len(got) != 3 {
		t.Errorf("wrapText long text: expected 3 lines, got %d: %v", len(got), got)
	}

	if got := wrapText("", 10); len(got) != 0 {
		t.Errorf("wrapText empty: expected empty, got %v", got)
	}
}

func TestColorFunctions(t *testing.T) {
	EnableColors()
	if !strings.Contains(red("test"), "\033[31m") {
		t.Error("red should contain ANSI code when colors enabled")
	}

	DisableColors()
	if strings.Contains(red("test"), "\033[") {
		t.Error("red should not contain ANSI code when colors disabled")
	}
	EnableColors()
}
