package graph

// pairKey is an ordered pair of node indices.
type pairKey struct {
	a, b int
}

// Adjacency answers "are these two nodes directly connected" in O(1), ignoring edge
// direction.
type Adjacency struct {
	linked map[pairKey]bool
}

// BuildAdjacency writes both directions of every edge. Writing a pair twice, as
// parallel edges do, is harmless.
func BuildAdjacency(edges []*Edge) *Adjacency {
	a := &Adjacency{linked: make(map[pairKey]bool, 2*len(edges))}
	for _, e := range edges {
		a.linked[pairKey{e.Source.Index, e.Target.Index}] = true
		a.linked[pairKey{e.Target.Index, e.Source.Index}] = true
	}
	return a
}

// Connected is true when a and b share an edge, and always for a node and itself.
func (a *Adjacency) Connected(x, y *Node) bool {
	if x.Index == y.Index {
		return true
	}
	return a.linked[pairKey{x.Index, y.Index}]
}

// Neighbors returns the closed neighborhood of n in node order.
func (a *Adjacency) Neighbors(nodes []*Node, n *Node) []*Node {
	var out []*Node
	for _, other := range nodes {
		if a.Connected(n, other) {
			out = append(out, other)
		}
	}
	return out
}

// Pairs is the number of ordered pairs in the index.
func (a *Adjacency) Pairs() int {
	return len(a.linked)
}
