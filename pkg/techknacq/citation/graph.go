// Package citation builds the undirected citation graph over document ids.
package citation

import (
	"sort"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
)

// Graph is an undirected, unweighted adjacency map. Every edge is stored
// from both ends, so B is a neighbor of A exactly when A is a neighbor of B.
type Graph struct {
	adj   map[string]map[string]struct{}
	edges int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string]map[string]struct{})}
}

// Build adds an edge between every document and each id it references.
// Referenced ids outside the corpus become vertices too. Repeated references
// collapse to one edge; self-citations and empty ids are ignored.
func Build(c *corpus.Corpus) *Graph {
	g := NewGraph()
	c.Each(func(d corpus.Document) {
		for _, ref := range d.UniqueReferences() {
			g.AddEdge(d.ID, ref)
		}
	})
	return g
}

// AddEdge records the undirected edge a–b. It reports whether the edge was
// new.
func (g *Graph) AddEdge(a, b string) bool {
	if a == "" || b == "" || a == b {
		return false
	}
	if _, ok := g.adj[a][b]; ok {
		return false
	}
	g.link(a, b)
	g.link(b, a)
	g.edges++
	return true
}

func (g *Graph) link(from, to string) {
	set, ok := g.adj[from]
	if !ok {
		set = make(map[string]struct{})
		g.adj[from] = set
	}
	set[to] = struct{}{}
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// HasNode reports whether id is a vertex.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

// Neighbors returns the neighbors of id in sorted order.
func (g *Graph) Neighbors(id string) []string {
	set := g.adj[id]
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EachNeighbor calls fn for every neighbor of id, in no particular order.
func (g *Graph) EachNeighbor(id string, fn func(string)) {
	for n := range g.adj[id] {
		fn(n)
	}
}

// NumNodes returns the number of distinct ids known to the graph.
func (g *Graph) NumNodes() int {
	return len(g.adj)
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	return g.edges
}

// Empty reports whether the graph has no edges.
func (g *Graph) Empty() bool {
	return g == nil || g.edges == 0
}

// Nodes returns all vertex ids in sorted order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.adj))
	for id := range g.adj {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
