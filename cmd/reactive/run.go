package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactive/internal/config"
	"github.com/vango-dev/reactive/internal/errors"
	"github.com/vango-dev/reactive/internal/scenario"
)

func runCmd(flags *globalFlags) *cobra.Command {
	var (
		jsonOut bool
		serve   string
	)

	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Play scenario files",
		Long: `Play one or more scenario files and print their transcripts.

Each file runs against its own store. Files are played in order and a
failing file does not stop the ones after it.

With --serve the process stays up after the last file, exposing
/metrics and /healthz until interrupted.

Examples:
  reactive run counter.yaml
  reactive run --json a.yaml b.yaml
  reactive run --serve :9464 counter.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runScenarios(ctx, cmd, flags, args, jsonOut, serve)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	cmd.Flags().StringVar(&serve, "serve", "", "Serve /metrics on this address after running")

	return cmd
}

// report is the JSON form of one file's outcome.
type report struct {
	Path   string           `json:"path"`
	Passed bool             `json:"passed"`
	Result *scenario.Result `json:"result,omitempty"`
	Error  json.RawMessage  `json:"error,omitempty"`
}

func runScenarios(ctx context.Context, cmd *cobra.Command, flags *globalFlags, paths []string, jsonOut bool, serve string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := config.LoadOrDefault(flags.configDir)
	if err != nil {
		return err
	}

	tel, err := setupTelemetry(ctx, cfg, errOut, serve != "")
	if err != nil {
		return errors.Newf(errors.CategoryCLI, "tracing setup failed").Wrap(err).WithDetail(err.Error())
	}
	defer func() {
		if err := tel.shutdown(context.Background()); err != nil {
			tel.logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	var (
		reports []report
		nfailed int
	)
	for _, path := range paths {
		rep := playFile(ctx, tel, path)
		if !rep.Passed {
			nfailed++
		}
		if !jsonOut {
			printReport(out, errOut, rep)
		}
		reports = append(reports, rep.report)

		if ctx.Err() != nil {
			break
		}
	}

	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	}

	if serve != "" && ctx.Err() == nil {
		if err := serveMetrics(ctx, serve, tel.registry, tel.logger); err != nil {
			return err
		}
	}

	return failed(nfailed, len(paths), "scenarios")
}

// outcome is a report plus the original error for terminal output.
type outcome struct {
	report
	err *errors.ReactiveError
}

func playFile(ctx context.Context, tel *telemetry, path string) outcome {
	o := outcome{report: report{Path: path}}

	f, err := scenario.Load(path)
	if err != nil {
		o.fail(err)
		return o
	}

	ctx, end := tel.startScenario(ctx, f.Name)
	res, err := scenario.NewRunner(tel.storeFor(ctx), tel.logger).Run(ctx, f)
	end(err)

	o.Result = res
	if err != nil {
		o.fail(err)
		return o
	}
	o.Passed = true
	return o
}

func (o *outcome) fail(err error) {
	o.err = errors.FromEngine(err)
	o.Error = json.RawMessage(o.err.FormatJSON())
}

func printReport(out, errOut io.Writer, o outcome) {
	name := o.Path
	if o.Result != nil {
		name = o.Result.Name
	}
	fmt.Fprintf(out, "▶ %s\n", name)

	if o.Result != nil {
		for _, e := range o.Result.Events {
			info(out, "%s", e)
		}
	}

	if o.Passed {
		success(out, "%s passed (%d steps)", name, o.Result.Steps)
		fmt.Fprintln(out)
		return
	}
	errors.PrintError(errOut, o.err)
}
