package graph

import (
	"sort"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Components groups the nodes into connected components, ignoring edge direction.
// Components are ordered by their lowest node index, and nodes within a component
// by index.
func (g *Graph) Components() [][]*Node {
	ug := simple.NewUndirectedGraph()
	for _, n := range g.Nodes {
		ug.AddNode(simple.Node(n.Index))
	}
	for _, e := range g.Edges {
		if e.Source == e.Target {
			// simple graphs reject self edges and they do not change connectivity.
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(e.Source.Index), T: simple.Node(e.Target.Index)})
	}

	var out [][]*Node
	for _, cc := range topo.ConnectedComponents(ug) {
		component := make([]*Node, 0, len(cc))
		for _, id := range cc {
			component = append(component, g.Nodes[nodeIndex(id)])
		}
		sort.Slice(component, func(i, j int) bool {
			return component[i].Index < component[j].Index
		})
		out = append(out, component)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0].Index < out[j][0].Index
	})
	return out
}

func nodeIndex(n gonumgraph.Node) int {
	return int(n.ID())
}
