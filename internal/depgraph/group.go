package depgraph

import (
	"sort"
	"strings"

	"github.com/SouthBridgeAI/zodsheriff/internal/config"
	"github.com/SouthBridgeAI/zodsheriff/internal/governor"
	"github.com/SouthBridgeAI/zodsheriff/internal/issues"
	"github.com/SouthBridgeAI/zodsheriff/internal/refgraph"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// Group is one rendered connected component: a self-contained,
// dependency-inlined schema expression plus its metrics.
type Group struct {
	SchemaNames []string
	Code        string
	SchemaCount int
	TotalLines  int
	Complexity  float64
}

// Analyzer renders connected components of a schema reference graph
// into Groups, per spec.md §4.7.
type Analyzer struct {
	cfg      *config.Config
	gov      *governor.Governor
	printer  synkind.Printer
	reporter *issues.Reporter
}

// New returns an Analyzer. printer renders an inlined initializer
// expression back to source text. gov is the run's Resource Governor:
// every inlining step passes through it, per spec.md §9's "every
// recursive call must pass through the Resource Governor".
func New(cfg *config.Config, gov *governor.Governor, printer synkind.Printer, reporter *issues.Reporter) *Analyzer {
	return &Analyzer{cfg: cfg, gov: gov, printer: printer, reporter: reporter}
}

// Analyze collects declarators from program, builds the reference
// graph, and renders every connected component, returning groups sorted
// per spec.md §4.7 step 7.
func (a *Analyzer) Analyze(program *synkind.Node) []Group {
	declarators := Collect(program)
	byName := ByName(declarators)
	g := BuildGraph(declarators)

	var groups []Group

	for _, component := range g.ConnectedComponents() {
		group, ok := a.render(component, byName, g)
		if ok {
			groups = append(groups, group)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		if gi.SchemaCount != gj.SchemaCount {
			return gi.SchemaCount > gj.SchemaCount
		}

		if gi.Complexity != gj.Complexity {
			return gi.Complexity > gj.Complexity
		}

		return gi.TotalLines > gj.TotalLines
	})

	return groups
}

func (a *Analyzer) render(component []string, byName map[string]Declarator, g *refgraph.Graph) (Group, bool) {
	root := chooseRoot(component, g)

	rootDecl, ok := byName[root]
	if !ok {
		return Group{}, false
	}

	inlined, err := inline(a.gov, rootDecl.Init, byName, map[string]bool{root: true})
	if err != nil {
		a.reporter.ReportError(rootDecl.Node, err.Error(), rootDecl.Node.Kind)

		return Group{}, false
	}

	if a.cfg.UnwrapArrayRoot {
		inlined = unwrapArrayRoot(inlined)
	}

	code, err := a.printer.PrintExpression(inlined)
	if err != nil {
		a.reporter.ReportWarning(rootDecl.Node, "Schema grouping failed: "+err.Error(), rootDecl.Node.Kind)

		return Group{}, false
	}

	names := orderedNames(root, component)

	return Group{
		SchemaNames: names,
		Code:        code,
		SchemaCount: len(component),
		TotalLines:  countLines(code),
		Complexity:  complexity(code),
	}, true
}

// chooseRoot picks the component member with ≥1 outgoing edge and no
// incoming edge; absent such a member, the first name in stable
// iteration order.
func chooseRoot(component []string, g *refgraph.Graph) string {
	for _, name := range component {
		if len(g.Children(name)) > 0 && len(g.Parents(name)) == 0 {
			return name
		}
	}

	return component[0]
}

// orderedNames lists root first, then the remaining members in stable
// iteration order.
func orderedNames(root string, component []string) []string {
	names := make([]string, 0, len(component))
	names = append(names, root)

	for _, name := range component {
		if name != root {
			names = append(names, name)
		}
	}

	return names
}

func countLines(code string) int {
	if code == "" {
		return 0
	}

	return strings.Count(code, "\n") + 1
}

func complexity(code string) float64 {
	zCount := float64(strings.Count(code, "z."))
	objectCount := float64(strings.Count(code, "object("))
	arrayCount := float64(strings.Count(code, "array("))

	return zCount + 2*objectCount + 1.5*arrayCount
}
