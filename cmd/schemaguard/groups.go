package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/SouthBridgeAI/zodsheriff"
)

func groupsCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "groups [file]",
		Short: "Print the computed schema groups as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.filePath = args[0]
			}

			return runGroups(opts, cmd.OutOrStdout())
		},
	}

	bindValidateFlags(cmd, opts)

	return cmd
}

func runGroups(opts *validateOptions, out io.Writer) error {
	source, err := loadSource(opts.filePath, opts.useStdin, opts.useClipboard)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	cfg.EnableUnification = true

	result := schemaguard.ValidateSchema(source, cfg)

	renderGroupsTable(result, out)

	if !result.IsValid {
		return ErrValidationFailed
	}

	return nil
}

func renderGroupsTable(result *schemaguard.ValidationResult, out io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Schemas", "Schema Count", "Total Lines", "Complexity"})

	for _, g := range result.SchemaGroups {
		tbl.AppendRow(table.Row{
			strings.Join(g.SchemaNames, ", "),
			g.Metrics.SchemaCount,
			g.Metrics.TotalLines,
			fmt.Sprintf("%.1f", g.Metrics.Complexity),
		})
	}

	tbl.Render()
}
