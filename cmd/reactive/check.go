package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/reactive/internal/errors"
	"github.com/vango-dev/reactive/internal/scenario"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate scenario files without playing them",
		Long: `Validate scenario files.

Names, operations and steps are checked, then the signals and effects
are built in a scratch store so engine errors such as an empty watch
list are reported too. No steps run.

Examples:
  reactive check counter.yaml
  reactive check scenarios/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			nfailed := 0
			for _, path := range args {
				f, err := scenario.Load(path)
				if err == nil {
					err = scenario.Check(f)
				}
				if err != nil {
					nfailed++
					errors.PrintError(errOut, errors.FromEngine(err))
					continue
				}
				success(out, "%s", f)
			}
			return failed(nfailed, len(args), "files")
		},
	}

	return cmd
}
