// Package depgraph implements the dependency analyzer: it collects
// every schema declarator in a cleaned tree, builds the inter-schema
// reference graph, partitions it into connected components, and
// renders each component as a self-contained, dependency-inlined group.
package depgraph

import "github.com/SouthBridgeAI/zodsheriff/pkg/synkind"

// Declarator is one collected variable declarator: its bound name, the
// declarator node itself, and its initializer expression.
type Declarator struct {
	Name string
	Node *synkind.Node
	Init *synkind.Node
}

// Collect visits every variable declarator in program at any depth,
// including those wrapped in an export-named declaration, and records
// name, node, and initializer for each.
func Collect(program *synkind.Node) []Declarator {
	var out []Declarator

	var walk func(node *synkind.Node)

	walk = func(node *synkind.Node) {
		if node == nil {
			return
		}

		if node.Kind == synkind.KindVariableDeclarator && node.Name != "" {
			out = append(out, Declarator{Name: node.Name, Node: node, Init: node.Init})
		}

		for _, child := range node.Children() {
			walk(child)
		}
	}

	walk(program)

	return out
}

// ByName indexes declarators by their bound name for fast graph and
// inlining lookups.
func ByName(declarators []Declarator) map[string]Declarator {
	byName := make(map[string]Declarator, len(declarators))
	for _, d := range declarators {
		byName[d.Name] = d
	}

	return byName
}
