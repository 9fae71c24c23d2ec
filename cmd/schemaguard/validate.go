package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SouthBridgeAI/zodsheriff"
	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/resultschema"
)

// ErrNoGroupsToEmit is returned by --getUnifiedLargest when no schema
// group was produced.
var ErrNoGroupsToEmit = errors.New("no schema groups to emit: enable unification and supply at least one valid schema")

// ErrValidationFailed signals a well-formed ValidationResult with
// is_valid=false, so main can map it to exitCodeInvalid without also
// printing an "Error: ..." line for what is expected driver behavior,
// per spec.md §6: "Exit code: 0 iff is_valid".
var ErrValidationFailed = errors.New("schema validation failed")

type validateOptions struct {
	filePath          string
	useStdin          bool
	useClipboard      bool
	presetName        string
	overridesPath     string
	cleanOnly         bool
	jsonOut           bool
	getUnifiedLargest bool
	unwrapArrays      bool
}

func bindValidateFlags(cmd *cobra.Command, opts *validateOptions) {
	cmd.Flags().BoolVar(&opts.useStdin, "stdin", false, "read source from stdin")
	cmd.Flags().BoolVar(&opts.useClipboard, "clipboard", false, "read source from the system clipboard")
	cmd.Flags().StringVar(&opts.presetName, "config", "relaxed", "preset: extremelySafe|medium|relaxed")
	cmd.Flags().StringVar(&opts.overridesPath, "overrides", "", "path to a YAML overrides document overlaid on --config")
	cmd.Flags().BoolVar(&opts.cleanOnly, "clean-only", false, "emit only the cleaned source")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the entire ValidationResult as JSON")
	cmd.Flags().BoolVar(&opts.getUnifiedLargest, "getUnifiedLargest", false, "emit the largest schema group's code")
	cmd.Flags().BoolVar(&opts.unwrapArrays, "unwrapArrays", false, "set unwrap_array_root true")
}

func runValidate(opts *validateOptions, out io.Writer) error {
	source, err := loadSource(opts.filePath, opts.useStdin, opts.useClipboard)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	result := schemaguard.ValidateSchema(source, cfg)

	if err := emitResult(opts, result, out); err != nil {
		return err
	}

	if !result.IsValid {
		return ErrValidationFailed
	}

	return nil
}

func resolveConfig(opts *validateOptions) (*config.Config, error) {
	cfg, err := config.Preset(opts.presetName)
	if err != nil {
		return nil, fmt.Errorf("resolve preset %q: %w", opts.presetName, err)
	}

	if opts.overridesPath != "" {
		data, readErr := os.ReadFile(opts.overridesPath) //nolint:gosec // operator-supplied path.
		if readErr != nil {
			return nil, fmt.Errorf("read overrides file %s: %w", opts.overridesPath, readErr)
		}

		overrides, loadErr := config.LoadOverridesYAML(data)
		if loadErr != nil {
			return nil, fmt.Errorf("parse overrides file %s: %w", opts.overridesPath, loadErr)
		}

		cfg = config.Apply(cfg, overrides)
	}

	if opts.unwrapArrays {
		cfg.UnwrapArrayRoot = true
	}

	return cfg, nil
}

func emitResult(opts *validateOptions, result *schemaguard.ValidationResult, out io.Writer) error {
	switch {
	case opts.getUnifiedLargest:
		return emitLargestGroup(result, out)
	case opts.cleanOnly:
		fmt.Fprintln(out, result.CleanedCode)

		return nil
	case opts.jsonOut:
		return emitJSON(result, out)
	default:
		emitSummary(result, out)

		return nil
	}
}

func emitLargestGroup(result *schemaguard.ValidationResult, out io.Writer) error {
	if len(result.SchemaGroups) == 0 {
		return ErrNoGroupsToEmit
	}

	fmt.Fprintln(out, result.SchemaGroups[0].Code)

	return nil
}

func emitJSON(result *schemaguard.ValidationResult, out io.Writer) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal validation result: %w", err)
	}

	if err := resultschema.Validate(data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	fmt.Fprintln(out, string(data))

	return nil
}

func emitSummary(result *schemaguard.ValidationResult, out io.Writer) {
	if result.IsValid {
		color.New(color.FgGreen).Fprintf(out, "schema is valid\n")
	} else {
		color.New(color.FgRed).Fprintf(out, "schema is invalid\n")
	}

	fmt.Fprintf(out, "  schemas: %s\n", humanize.Comma(int64(len(result.RootSchemaNames))))
	fmt.Fprintf(out, "  cleaned size: %s\n", humanize.Bytes(uint64(len(result.CleanedCode))))

	if len(result.SchemaGroups) > 0 {
		fmt.Fprintf(out, "  groups: %s\n", humanize.Comma(int64(len(result.SchemaGroups))))
	}

	for _, issue := range result.Issues {
		col := color.New(color.FgYellow)
		if issue.Severity == "error" {
			col = color.New(color.FgRed)
		}

		col.Fprintf(out, "  %s: %s (%s) at %d:%d\n",
			issue.Severity, issue.Message, issue.NodeKind, issue.Line, issue.Column)
	}
}
