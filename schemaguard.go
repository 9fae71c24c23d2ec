// Package schemaguard is the library entry point of spec.md §6:
// ValidateSchema parses, validates, and cleans untrusted zod schema
// source text, wiring the concrete Parser, Printer, and SafeRegexOracle
// collaborators around the validation core in internal/orchestrator.
package schemaguard

import (
	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/depgraph"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/internal/jsparse"
	"github.com/SouthBridgeAI/zodsheriff/internal/jsprint"
	"github.com/SouthBridgeAI/zodsheriff/internal/orchestrator"
	"github.com/SouthBridgeAI/zodsheriff/internal/saferegex"
)

// Issue is the JSON-serializable form of an issues.Issue.
type Issue struct {
	Severity   string `json:"severity"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Message    string `json:"message"`
	NodeKind   string `json:"node_kind"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SchemaGroup is the JSON-serializable form of a depgraph.Group.
type SchemaGroup struct {
	SchemaNames []string `json:"schema_names"`
	Code        string   `json:"code"`
	Metrics     struct {
		SchemaCount int     `json:"schema_count"`
		TotalLines  int     `json:"total_lines"`
		Complexity  float64 `json:"complexity"`
	} `json:"metrics"`
}

// ValidationResult is the value returned to the caller of ValidateSchema,
// per spec.md §3.
type ValidationResult struct {
	IsValid         bool          `json:"is_valid"`
	CleanedCode     string        `json:"cleaned_code"`
	Issues          []Issue       `json:"issues"`
	RootSchemaNames []string      `json:"root_schema_names"`
	SchemaGroups    []SchemaGroup `json:"schema_groups,omitempty"`
}

// ValidateSchema validates and cleans source under cfg, using the
// reference Parser/Printer/SafeRegexOracle implementations.
func ValidateSchema(source string, cfg *config.Config) *ValidationResult {
	collab := orchestrator.Collaborators{
		Parser:  jsparse.New(),
		Printer: jsprint.New(),
		Oracle:  saferegex.New(),
	}

	result := orchestrator.Validate(source, cfg, collab)

	return toValidationResult(result)
}

func toValidationResult(r orchestrator.Result) *ValidationResult {
	out := &ValidationResult{
		IsValid:         r.IsValid,
		CleanedCode:     r.CleanedCode,
		Issues:          make([]Issue, len(r.Issues)),
		RootSchemaNames: append([]string{}, r.RootSchemaNames...),
	}

	for i, issue := range r.Issues {
		out.Issues[i] = toIssue(issue)
	}

	if len(r.SchemaGroups) > 0 {
		out.SchemaGroups = make([]SchemaGroup, len(r.SchemaGroups))

		for i, g := range r.SchemaGroups {
			out.SchemaGroups[i] = toSchemaGroup(g)
		}
	}

	return out
}

func toIssue(issue issues.Issue) Issue {
	return Issue{
		Severity:   string(issue.Severity),
		Line:       issue.Line,
		Column:     issue.Column,
		Message:    issue.Message,
		NodeKind:   string(issue.NodeKind),
		Suggestion: issue.Suggestion,
	}
}

func toSchemaGroup(g depgraph.Group) SchemaGroup {
	out := SchemaGroup{SchemaNames: g.SchemaNames, Code: g.Code}
	out.Metrics.SchemaCount = g.SchemaCount
	out.Metrics.TotalLines = g.TotalLines
	out.Metrics.Complexity = g.Complexity

	return out
}
