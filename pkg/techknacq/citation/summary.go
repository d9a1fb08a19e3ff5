package citation

import (
	"sort"

	"github.com/StevenLOL/techknacq-tk/pkg/techknacq/corpus"
)

// NodeDegree pairs a vertex with its degree.
type NodeDegree struct {
	ID     string
	Degree int
}

// Summary describes a graph built from a corpus.
type Summary struct {
	Nodes int
	Edges int
	// Dangling counts vertices that are referenced but are not corpus
	// documents.
	Dangling int
	// Isolated counts corpus documents with no edge at all.
	Isolated int
	Top      []NodeDegree
}

// Summarize reports graph size and the k highest-degree vertices, ties
// broken by id.
func Summarize(g *Graph, c *corpus.Corpus, k int) Summary {
	s := Summary{Nodes: g.NumNodes(), Edges: g.NumEdges()}

	degrees := make([]NodeDegree, 0, g.NumNodes())
	for id, set := range g.adj {
		if !c.Has(id) {
			s.Dangling++
		}
		degrees = append(degrees, NodeDegree{ID: id, Degree: len(set)})
	}
	c.Each(func(d corpus.Document) {
		if !g.HasNode(d.ID) {
			s.Isolated++
		}
	})

	sort.Slice(degrees, func(i, j int) bool {
		if degrees[i].Degree != degrees[j].Degree {
			return degrees[i].Degree > degrees[j].Degree
		}
		return degrees[i].ID < degrees[j].ID
	})
	if k >= 0 && len(degrees) > k {
		degrees = degrees[:k]
	}
	s.Top = degrees
	return s
}
