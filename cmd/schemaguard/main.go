// Package main provides the schemaguard CLI driver.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitCodeInvalid is returned when the input fails validation, or the
// driver itself errors before a result could be produced.
const exitCodeInvalid = 1

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(groupsCmd())

	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if !errors.Is(err, ErrValidationFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(exitCodeInvalid)
}

func newRootCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "schemaguard [file]",
		Short: "Validate and clean untrusted zod schema source",
		Long: `schemaguard validates schema-construction source code bound to the
identifier 'z', surgically removing any declaration that does not conform
to the whitelist grammar while preserving the rest.

Examples:
  schemaguard schema.ts
  cat schema.ts | schemaguard --stdin
  schemaguard --clipboard --config extremelySafe
  schemaguard schema.ts --json
  schemaguard schema.ts --clean-only`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.filePath = args[0]
			}

			return runValidate(opts, cmd.OutOrStdout())
		},
	}

	bindValidateFlags(cmd, opts)

	return cmd
}
