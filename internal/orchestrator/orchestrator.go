package orchestrator

import (
	"strings"

	"github.com/SouthBridgeAI/zodsheriff/internal/chainval"
	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/depgraph"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// Collaborators bundles the three external collaborators the
// orchestrator needs but never constructs itself: Parser, Printer, and
// SafeRegexOracle. The core depends on these interfaces only.
type Collaborators struct {
	Parser  synkind.Parser
	Printer synkind.Printer
	Oracle  synkind.SafeRegexOracle
}

// Validate runs the full pipeline of spec.md §4.6 over source under cfg.
func Validate(source string, cfg *config.Config, collab Collaborators) Result {
	reporter := issues.NewReporter()
	gov := governor.New(cfg)

	program, err := collab.Parser.Parse(source)
	if err != nil {
		reporter.ReportError(nil, "Failed to parse schema: "+err.Error(), synkind.KindUnknown)

		return Result{IsValid: false, Issues: reporter.Issues()}
	}

	if !hasZodZImport(program) {
		reporter.ReportError(nil, "Missing 'z' import from 'zod'", synkind.KindProgram)
	}

	kept, rootNames := classifyAndFilter(program, cfg, gov, reporter, collab)
	program.Statements = kept

	autoExport(program)

	var cleanedCode string
	if len(rootNames) > 0 {
		printed, printErr := collab.Printer.Print(program)
		if printErr == nil {
			cleanedCode = printed
		}
	}

	result := Result{
		IsValid:         !reporter.HasErrors(),
		CleanedCode:     cleanedCode,
		Issues:          reporter.Issues(),
		RootSchemaNames: rootNames,
	}

	if cfg.EnableUnification && cleanedCode != "" {
		result.SchemaGroups = computeGroups(cleanedCode, cfg, gov, reporter, collab)
		result.Issues = reporter.Issues()
	}

	return result
}

func hasZodZImport(program *synkind.Node) bool {
	for _, stmt := range program.Statements {
		if stmt.Kind != synkind.KindImportDeclaration || stmt.Source != "zod" {
			continue
		}

		for _, spec := range stmt.Specifiers {
			if spec.Kind == synkind.KindImportDefaultSpecifier && spec.Name == "z" {
				return true
			}

			if spec.Kind == synkind.KindImportSpecifier {
				local := spec.Value
				if local == "" {
					local = spec.Name
				}

				if local == "z" {
					return true
				}
			}
		}
	}

	return false
}

// classifyAndFilter runs the first and second passes of spec.md §4.6:
// classify every top-level statement, then keep only the survivors.
// Names are only finalized into rootNames for statements that survive.
func classifyAndFilter(program *synkind.Node, cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter, collab Collaborators) ([]*synkind.Node, []string) {
	var kept []*synkind.Node

	var rootNames []string

	for _, stmt := range program.Statements {
		survivingNames, keepStmt := classifyStatement(stmt, cfg, gov, reporter, collab)
		if keepStmt {
			kept = append(kept, stmt)
			rootNames = append(rootNames, survivingNames...)
		}
	}

	return kept, rootNames
}

func classifyStatement(stmt *synkind.Node, cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter, collab Collaborators) ([]string, bool) {
	switch stmt.Kind {
	case synkind.KindImportDeclaration:
		if stmt.Source != "zod" {
			reporter.ReportError(stmt, "Invalid import from '"+stmt.Source+"'. Only 'zod' imports are allowed", stmt.Kind)

			return nil, false
		}

		return nil, true

	case synkind.KindVariableDeclaration:
		return classifyVariableDeclaration(stmt, cfg, gov, reporter, collab)

	case synkind.KindExportNamedDeclaration:
		if stmt.Declaration == nil || stmt.Declaration.Kind != synkind.KindVariableDeclaration {
			reporter.ReportError(stmt, "Invalid statement type: "+string(stmt.Kind), stmt.Kind)

			return nil, false
		}

		return classifyVariableDeclaration(stmt.Declaration, cfg, gov, reporter, collab)

	case synkind.KindExportDefaultDeclaration:
		return nil, true

	default:
		reporter.ReportError(stmt, "Invalid statement type: "+string(stmt.Kind), stmt.Kind)

		return nil, false
	}
}

// classifyVariableDeclaration implements spec.md §4.6.1. The whole
// declaration is removed if any declarator is invalid; a declarator
// that does not look like a schema is dropped from the declaration's
// eventual name list without itself invalidating the statement, unless
// it also fails the bare initializer-presence check.
func classifyVariableDeclaration(decl *synkind.Node, cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter, collab Collaborators) ([]string, bool) {
	if decl.DeclKind != "const" {
		reporter.ReportError(decl, "Schema declarations must use 'const'", decl.Kind)

		return nil, false
	}

	var names []string

	for _, declarator := range decl.Declarations {
		name, ok := classifyDeclarator(declarator, cfg, gov, reporter, collab)
		if !ok {
			return nil, false
		}

		if name != "" {
			names = append(names, name)
		}
	}

	return names, true
}

// classifyDeclarator returns (name, true) when the declarator is valid
// and looks like a schema (name non-empty), (,"" true) when valid but
// not a schema (silently excluded from the name list), or ("", false)
// when the declaration must be removed.
func classifyDeclarator(declarator *synkind.Node, cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter, collab Collaborators) (string, bool) {
	if declarator.Init == nil || (declarator.Init.Kind == synkind.KindUndefinedIdentifier) {
		reporter.ReportError(declarator, "Schema declaration must have an initializer", declarator.Kind)

		return "", false
	}

	if !looksLikeSchema(declarator) {
		return "", true
	}

	chain := chainval.New(cfg, gov, reporter, collab.Oracle)
	if !chain.Validate(declarator.Init) {
		return "", false
	}

	return declarator.Name, true
}

func looksLikeSchema(declarator *synkind.Node) bool {
	if strings.Contains(strings.ToLower(declarator.Name), "schema") {
		return true
	}

	return leftmostIsZ(declarator.Init)
}

func leftmostIsZ(node *synkind.Node) bool {
	switch node.Kind {
	case synkind.KindCallExpression:
		return leftmostIsZ(node.Callee)
	case synkind.KindMemberExpression:
		return leftmostIsZ(node.Object)
	case synkind.KindIdentifier:
		return node.Name == "z"
	default:
		return false
	}
}

// autoExport wraps every surviving plain VariableDeclaration that is
// not already under an export in a named export.
func autoExport(program *synkind.Node) {
	for i, stmt := range program.Statements {
		if stmt.Kind == synkind.KindVariableDeclaration {
			program.Statements[i] = &synkind.Node{
				Kind:        synkind.KindExportNamedDeclaration,
				Pos:         stmt.Pos,
				Comments:    stmt.Comments,
				Declaration: stmt,
			}
			stmt.Comments = nil
		}
	}
}

func computeGroups(cleanedCode string, cfg *config.Config, gov *governor.Governor, reporter *issues.Reporter, collab Collaborators) []depgraph.Group {
	reparsed, err := collab.Parser.Parse(cleanedCode)
	if err != nil {
		reporter.ReportWarning(nil, "Schema grouping failed: "+err.Error(), synkind.KindProgram)

		return nil
	}

	analyzer := depgraph.New(cfg, gov, collab.Printer, reporter)

	return analyzer.Analyze(reparsed)
}
