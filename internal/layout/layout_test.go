package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/psidex/knowmap/internal/graph"
)

func ring(n int) []Link {
	links := make([]Link, n)
	for i := range links {
		links[i] = Link{Source: i, Target: (i + 1) % n}
	}
	return links
}

func TestComputeEmpty(t *testing.T) {
	assert.Nil(t, Compute(0, nil, DefaultParams()))
}

func TestComputeIsDeterministic(t *testing.T) {
	p := DefaultParams()
	a := Compute(8, ring(8), p)
	b := Compute(8, ring(8), p)
	assert.Equal(t, a, b)
}

func TestComputeCentersAndStaysFinite(t *testing.T) {
	p := DefaultParams()
	pos := Compute(12, ring(12), p)
	require.Len(t, pos, 12)

	var centroid r2.Vec
	for _, v := range pos {
		require.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y))
		require.False(t, math.IsInf(v.X, 0) || math.IsInf(v.Y, 0))
		centroid = r2.Add(centroid, v)
	}
	centroid = r2.Scale(1.0/12, centroid)
	assert.InDelta(t, p.Width/2, centroid.X, 1e-6)
	assert.InDelta(t, p.Height/2, centroid.Y, 1e-6)
}

func TestComputeSpreadsNodes(t *testing.T) {
	pos := Compute(6, ring(6), DefaultParams())
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			assert.Greater(t, r2.Norm(r2.Sub(pos[i], pos[j])), 1.0, "nodes %d and %d overlap", i, j)
		}
	}
}

func TestLinksPullTogether(t *testing.T) {
	p := DefaultParams()
	p.Charge = 0
	p.Gravity = 0

	// Two linked nodes start 550 apart on both axes, i.e. ~778 away.
	pos := Compute(2, []Link{{0, 1}}, p)
	start := math.Hypot(550, 550)
	end := r2.Norm(r2.Sub(pos[0], pos[1]))
	assert.Less(t, end, start)
	assert.Greater(t, end, 0.0)
}

func TestApplyWritesPositions(t *testing.T) {
	g, err := graph.Load(graph.RawGraph{
		Nodes: []graph.RawNode{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		Links: []graph.RawLink{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
	})
	require.NoError(t, err)

	Apply(g, DefaultParams())
	box := Bounds(g)
	assert.Less(t, box.Min.X, box.Max.X)
	assert.NotEqual(t, g.Nodes[0].Position, g.Nodes[2].Position)
}
