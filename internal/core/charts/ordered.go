package charts

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
)

// orderedUndirected and orderedDirected iterate nodes in ID order, so seeded
// layouts and rank sums come out the same on every run.
type orderedUndirected struct{ graph.Undirected }

func (g orderedUndirected) Nodes() graph.Nodes        { return byID(g.Undirected.Nodes()) }
func (g orderedUndirected) From(id int64) graph.Nodes { return byID(g.Undirected.From(id)) }

type orderedDirected struct{ graph.Directed }

func (g orderedDirected) Nodes() graph.Nodes        { return byID(g.Directed.Nodes()) }
func (g orderedDirected) From(id int64) graph.Nodes { return byID(g.Directed.From(id)) }
func (g orderedDirected) To(id int64) graph.Nodes   { return byID(g.Directed.To(id)) }

func byID(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	slices.SortFunc(nodes, func(a, b graph.Node) int { return cmp.Compare(a.ID(), b.ID()) })
	return iterator.NewOrderedNodes(nodes)
}
