package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactive/internal/errors"
)

func codesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes [code]",
		Short: "List diagnostic codes",
		Long: `List every registered diagnostic code, or describe one.

Examples:
  reactive codes
  reactive codes R001`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				code := strings.ToUpper(args[0])
				t, ok := errors.GetTemplate(code)
				if !ok {
					return errors.Newf(errors.CategoryCLI, "unknown code %q", args[0]).
						WithSuggestion("Run 'reactive codes' to list all codes")
				}
				fmt.Fprintf(w, "%s  %s\n", code, t.Message)
				fmt.Fprintf(w, "  Category:   %s\n", t.Category)
				if t.Suggestion != "" {
					fmt.Fprintf(w, "  Suggestion: %s\n", t.Suggestion)
				}
				if t.DocURL != "" {
					fmt.Fprintf(w, "  Docs:       %s\n", t.DocURL)
				}
				return nil
			}

			for _, code := range errors.GetAllCodes() {
				t, _ := errors.GetTemplate(code)
				fmt.Fprintf(w, "%s  %-9s %s\n", code, t.Category, t.Message)
			}
			return nil
		},
	}

	return cmd
}
