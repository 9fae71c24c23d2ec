package depgraph

import (
	"github.com/SouthBridgeAI/zodsheriff/internal/refgraph"
	"github.com/SouthBridgeAI/zodsheriff/pkg/synkind"
)

// BuildGraph walks every declarator's initializer subtree and adds a
// forward edge name -> N for each identifier N (N != name) that is
// itself a collected declarator name.
func BuildGraph(declarators []Declarator) *refgraph.Graph {
	byName := ByName(declarators)
	g := refgraph.NewGraph()

	for _, d := range declarators {
		g.AddNode(d.Name)
	}

	for _, d := range declarators {
		for _, ref := range referencedNames(d.Init, d.Name, byName) {
			g.AddEdge(d.Name, ref)
		}
	}

	return g
}

// referencedNames walks init's subtree collecting every identifier whose
// name is a key in byName and is not self.
func referencedNames(init *synkind.Node, self string, byName map[string]Declarator) []string {
	seen := make(map[string]struct{})

	var walk func(node *synkind.Node)

	walk = func(node *synkind.Node) {
		if node == nil {
			return
		}

		if node.Kind == synkind.KindIdentifier && node.Name != self {
			if _, ok := byName[node.Name]; ok {
				seen[node.Name] = struct{}{}
			}
		}

		for _, child := range node.Children() {
			walk(child)
		}
	}

	walk(init)

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}

	return out
}
