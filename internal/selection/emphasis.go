package selection

import "github.com/psidex/knowmap/internal/graph"

// EmphasisMap holds, per node index, whether the node is drawn at full strength.
type EmphasisMap []bool

// computeEmphasis evaluates pred once per node. Both the neighborhood highlight and
// the category dim are expressed through it.
func computeEmphasis(nodes []*graph.Node, pred func(*graph.Node) bool) EmphasisMap {
	m := make(EmphasisMap, len(nodes))
	for _, n := range nodes {
		m[n.Index] = pred(n)
	}
	return m
}

func allEmphasized(nodes []*graph.Node) EmphasisMap {
	return computeEmphasis(nodes, func(*graph.Node) bool { return true })
}

// Opacity maps emphasis to the two opacity levels used for nodes.
func (m EmphasisMap) Opacity(index int) float64 {
	if m[index] {
		return FullOpacity
	}
	return DimOpacity
}

// Count is the number of emphasized nodes.
func (m EmphasisMap) Count() int {
	count := 0
	for _, e := range m {
		if e {
			count++
		}
	}
	return count
}
