package instrument

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/reactive/pkg/reactive"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	st := reactive.NewStore(reactive.WithObserver(Logger(l)))

	a := reactive.NewSignalIn(st, 1)
	c := reactive.NewComputedIn(st, func() int { return a.Get() })
	_ = st.CreateEffect(func() {}, a)
	_ = a.Set(2)
	_ = c.Set(3)

	out := buf.String()
	for _, want := range []string{
		"component=reactive",
		`msg="signal created"`,
		"kind=computed",
		`msg="effect registered"`,
		`msg="notification pass"`,
		"invoked=1",
		"level=WARN",
		"kind=read_only",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogObserverDefaultLogger(t *testing.T) {
	if Logger(nil).logger == nil {
		t.Fatal("expected a default logger")
	}
}
