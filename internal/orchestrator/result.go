// Package orchestrator implements the top-level schema validation
// pipeline: parse, check the zod import, classify and remove invalid
// top-level declarations, auto-export survivors, print the cleaned
// source, and optionally compute schema groups.
package orchestrator

import (
	"github.com/SouthBridgeAI/zodsheriff/internal/depgraph"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
)

// Result is the value returned to the caller of Validate.
type Result struct {
	IsValid         bool
	CleanedCode     string
	Issues          []issues.Issue
	RootSchemaNames []string
	SchemaGroups    []depgraph.Group
}
