package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/reactive/internal/errors"
	"github.com/vango-dev/reactive/pkg/reactive"
)

// Runner plays scenarios against a store.
type Runner struct {
	store  *reactive.Store
	logger *slog.Logger
}

// NewRunner creates a runner. A nil store uses a fresh one for every run;
// a nil logger discards.
func NewRunner(store *reactive.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{store: store, logger: logger}
}

// Check validates f and builds its signals and effects in a scratch store
// without running any steps.
func Check(f *File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	_, err := build(f, reactive.NewStore())
	return err
}

// Run validates and builds f, then executes its steps in order. It stops
// at the first failing step or when ctx is done.
func (r *Runner) Run(ctx context.Context, f *File) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	store := r.store
	if store == nil {
		store = reactive.NewStore()
	}

	p, err := build(f, store)
	if err != nil {
		return nil, err
	}

	for i, s := range f.Steps {
		if err := ctx.Err(); err != nil {
			return p.result, err
		}
		p.step = i + 1
		if err := p.run(s); err != nil {
			r.logger.Debug("step failed", "scenario", f.Name, "step", p.step, "error", err)
			return p.result, errors.FromEngine(err).WithStep(p.step)
		}
		p.result.Steps++
	}

	r.logger.Info("scenario passed",
		"scenario", f.Name,
		"steps", p.result.Steps,
		"events", len(p.result.Events),
	)
	return p.result, nil
}

// play is the state of one run.
type play struct {
	file     *File
	signals  map[string]*reactive.Signal[int64]
	computed map[string]*reactive.Computed[int64]
	readers  map[string]func() int64
	result   *Result
	step     int
}

func build(f *File, store *reactive.Store) (*play, error) {
	p := &play{
		file:     f,
		signals:  make(map[string]*reactive.Signal[int64], len(f.Signals)),
		computed: make(map[string]*reactive.Computed[int64], len(f.Computed)),
		readers:  make(map[string]func() int64, len(f.Signals)+len(f.Computed)),
		result: &Result{
			Name:  f.Name,
			Fired: make(map[string]int, len(f.Effects)),
		},
	}

	for _, d := range f.Signals {
		s := reactive.NewSignalIn(store, d.Value)
		p.signals[d.Name] = s
		p.readers[d.Name] = s.Get
	}

	for _, d := range f.Computed {
		inputs := make([]func() int64, len(d.Inputs))
		for i, name := range d.Inputs {
			inputs[i] = p.readers[name]
		}
		op, offset := d.Op, d.Offset
		c := reactive.NewComputedIn(store, func() int64 {
			values := make([]int64, len(inputs))
			for i, read := range inputs {
				values[i] = read()
			}
			return op.apply(values, offset)
		})
		p.computed[d.Name] = c
		p.readers[d.Name] = c.Get
	}

	for _, d := range f.Effects {
		watch := make([]reactive.Watchable, 0, len(d.Watch))
		for _, name := range d.Watch {
			if s, ok := p.signals[name]; ok {
				watch = append(watch, s)
			} else {
				watch = append(watch, p.computed[name])
			}
		}

		name, names := d.Name, d.Watch
		err := store.CreateEffect(func() {
			p.result.Fired[name]++
			p.record(EventEffect, name, int64(p.result.Fired[name]), p.snapshot(names))
		}, watch...)
		if err != nil {
			return nil, f.location(errors.FromEngine(err).WithDetailf("effect %q", d.Name), d.Line)
		}
		p.result.Fired[name] = 0
	}

	return p, nil
}

func (p *play) record(kind EventKind, name string, value int64, detail string) {
	p.result.Events = append(p.result.Events, Event{
		Step:   p.step,
		Kind:   kind,
		Name:   name,
		Value:  value,
		Detail: detail,
	})
}

// snapshot renders the current values of names as "a=1 b=2".
func (p *play) snapshot(names []string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, p.readers[name]())
	}
	return strings.Join(parts, " ")
}

func (p *play) run(s Step) error {
	verb, target := s.Action()

	switch verb {
	case "set":
		value := *s.Value
		return p.write(s, target, func(sig *reactive.Signal[int64]) error {
			p.record(EventSet, target, value, "")
			return sig.Set(value)
		}, func(c *reactive.Computed[int64]) error {
			return c.Set(value)
		})

	case "add", "scale":
		by := *s.By
		transform := func(v int64) int64 { return v + by }
		if verb == "scale" {
			transform = func(v int64) int64 { return v * by }
		}
		return p.write(s, target, func(sig *reactive.Signal[int64]) error {
			return sig.Update(func(v int64) int64 {
				next := transform(v)
				p.record(EventUpdate, target, next, "")
				return next
			})
		}, func(c *reactive.Computed[int64]) error {
			return c.Update(transform)
		})

	case "expect":
		got := p.readers[target]()
		p.record(EventRead, target, got, "")
		if got != *s.Value {
			return p.file.location(errors.New("S005").
				WithDetailf("%s = %d, want %d", target, got, *s.Value), s.Line)
		}
		return nil

	case "expectFired":
		got := p.result.Fired[target]
		p.record(EventCheck, target, int64(got), "")
		if got != *s.Count {
			return p.file.location(errors.New("S005").
				WithDetailf("effect %s fired %d times, want %d", target, got, *s.Count), s.Line)
		}
		return nil
	}

	return p.file.location(errors.New("S006").WithDetail("step has no action"), s.Line)
}

// write applies a mutation to a signal or computed signal and reconciles
// the outcome with the step's expectError flag.
func (p *play) write(s Step, target string, onSignal func(*reactive.Signal[int64]) error, onComputed func(*reactive.Computed[int64]) error) error {
	var err error
	if sig, ok := p.signals[target]; ok {
		err = onSignal(sig)
	} else {
		err = onComputed(p.computed[target])
	}

	verb, _ := s.Action()
	switch {
	case err != nil && s.ExpectError:
		p.record(EventReject, target, 0, err.Error())
		return nil
	case err != nil:
		return p.file.location(errors.FromEngine(err), s.Line)
	case s.ExpectError:
		return p.file.location(errors.New("S005").
			WithDetailf("%s on %q succeeded, want rejection", verb, target), s.Line)
	}
	return nil
}
