// Package issues accumulates the diagnostics produced during a single
// validation run.
package issues

import (
	"fmt"
	"strings"

	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// Severity classifies a diagnostic. A run is valid iff no SeverityError
// issue was reported.
type Severity string

// Severity levels.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single diagnostic: where it happened, what kind of node was
// involved, and an optional suggestion for how to fix it.
type Issue struct {
	Severity   Severity
	Line       int
	Column     int
	Message    string
	NodeKind   synkind.Kind
	Suggestion string
}

// Reporter is an append-only diagnostic sink. It is not safe for
// concurrent use; each validation run owns one Reporter.
type Reporter struct {
	issues []Issue
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report appends a diagnostic at node's location. A nil node reports at
// the synthetic file-level position (1, 0).
func (r *Reporter) Report(node *synkind.Node, message string, kind synkind.Kind, severity Severity, suggestion string) {
	pos := synkind.FileStart
	if node != nil {
		pos = node.Pos
	}

	r.issues = append(r.issues, Issue{
		Severity:   severity,
		Line:       pos.Line,
		Column:     pos.Column,
		Message:    message,
		NodeKind:   kind,
		Suggestion: suggestion,
	})
}

// ReportError is shorthand for Report(..., SeverityError, "").
func (r *Reporter) ReportError(node *synkind.Node, message string, kind synkind.Kind) {
	r.Report(node, message, kind, SeverityError, "")
}

// ReportWarning is shorthand for Report(..., SeverityWarning, "").
func (r *Reporter) ReportWarning(node *synkind.Node, message string, kind synkind.Kind) {
	r.Report(node, message, kind, SeverityWarning, "")
}

// Issues returns every diagnostic reported so far, in report order.
func (r *Reporter) Issues() []Issue {
	return r.issues
}

// BySeverity filters Issues() to a single severity.
func (r *Reporter) BySeverity(severity Severity) []Issue {
	var filtered []Issue

	for _, issue := range r.issues {
		if issue.Severity == severity {
			filtered = append(filtered, issue)
		}
	}

	return filtered
}

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (r *Reporter) HasErrors() bool {
	for _, issue := range r.issues {
		if issue.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Clear empties the reporter for reuse in a fresh run.
func (r *Reporter) Clear() {
	r.issues = r.issues[:0]
}

// FormattedReport renders every issue as a human-readable multi-line
// string, one issue per line plus an optional suggestion line.
func (r *Reporter) FormattedReport() string {
	var b strings.Builder

	for _, issue := range r.issues {
		fmt.Fprintf(&b, "%s: %s (%s) at %d:%d\n",
			strings.ToUpper(string(issue.Severity)), issue.Message, issue.NodeKind, issue.Line, issue.Column)

		if issue.Suggestion != "" {
			fmt.Fprintf(&b, "  suggestion: %s\n", issue.Suggestion)
		}
	}

	return b.String()
}
