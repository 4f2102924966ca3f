package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactive/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, errors.FromEngine(err))
		os.Exit(1)
	}
}

// useColor is cleared by --no-color.
var useColor = true

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configDir string
	noColor   bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "reactive",
		Short: "Play reactive-state scenarios",
		Long: `reactive drives a minimal reactive-state engine from scenario files.

A scenario declares signals, computed signals and effects over integer
values, then applies a sequence of writes and checks. Every effect run
is printed as part of the transcript.

Examples:
  reactive run counter.yaml
  reactive run --json scenarios/*.yaml
  reactive run --serve :9464 counter.yaml
  reactive check scenarios/*.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				useColor = false
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configDir, "config", ".", "Directory containing reactive.json")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		runCmd(flags),
		checkCmd(),
		codesCmd(),
		versionCmd(),
	)

	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	mark := "✓"
	if useColor {
		mark = "\033[32m✓\033[0m"
	}
	fmt.Fprintf(w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// failed reports how many of total files failed, or nil.
func failed(n, total int, what string) error {
	if n == 0 {
		return nil
	}
	return errors.Newf(errors.CategoryCLI, "%d of %d %s failed", n, total, what)
}
