package refgraph

import "sort"

// Graph is the string-keyed schema reference graph: an edge A -> B means
// A's initializer mentions the identifier B.
type Graph struct {
	symbols *SymbolTable
	edges   *IntGraph
}

// NewGraph creates an empty reference graph.
func NewGraph() *Graph {
	return &Graph{
		symbols: NewSymbolTable(),
		edges:   NewIntGraph(),
	}
}

// AddNode registers name even if it never gains an edge.
func (g *Graph) AddNode(name string) {
	g.edges.AddNode(g.symbols.Intern(name))
}

// AddEdge records that from references to.
func (g *Graph) AddEdge(from, to string) {
	u := g.symbols.Intern(from)
	v := g.symbols.Intern(to)
	g.edges.AddEdge(u, v)
}

// Children returns the names from directly references, in interning
// (registration) order.
func (g *Graph) Children(from string) []string {
	id, ok := g.symbols.Lookup(from)
	if !ok {
		return nil
	}

	return g.resolveAll(g.edges.Children(id))
}

// Parents returns the names that directly reference to, sorted.
func (g *Graph) Parents(to string) []string {
	id, ok := g.symbols.Lookup(to)
	if !ok {
		return nil
	}

	parents := g.resolveAll(g.edges.Parents(id))
	sort.Strings(parents)

	return parents
}

// FindCycle returns the cycle containing seed, or nil if seed
// participates in none.
func (g *Graph) FindCycle(seed string) []string {
	id, ok := g.symbols.Lookup(seed)
	if !ok {
		return nil
	}

	return g.resolveAll(g.edges.FindCycle(id))
}

func (g *Graph) resolveAll(ids []int) []string {
	if ids == nil {
		return nil
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = g.symbols.Resolve(id)
	}

	return names
}

// ConnectedComponents partitions every registered node into connected
// components of the undirected graph formed by the union of forward and
// reverse edges. Components are returned with members in stable
// first-seen order; component order matches each component's lowest
// member index in registration order.
func (g *Graph) ConnectedComponents() [][]string {
	n := g.symbols.Len()
	visited := make([]bool, n)

	var components [][]string

	for id := 0; id < n; id++ {
		if visited[id] {
			continue
		}

		component := g.collectComponent(id, visited)
		components = append(components, component)
	}

	return components
}

func (g *Graph) collectComponent(start int, visited []bool) []string {
	var members []string

	queue := []int{start}
	visited[start] = true

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		members = append(members, g.symbols.Resolve(u))

		neighbors := append(g.edges.Children(u), g.edges.Parents(u)...)
		for _, v := range neighbors {
			if !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}

	return members
}
