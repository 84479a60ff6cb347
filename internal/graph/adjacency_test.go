package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjacencySelfAndSymmetry(t *testing.T) {
	g, err := Load(sampleRaw())
	require.NoError(t, err)
	adj := g.Adjacency()

	for _, a := range g.Nodes {
		assert.True(t, adj.Connected(a, a), "%s must be its own neighbor", a.Name)
		for _, b := range g.Nodes {
			assert.Equal(t, adj.Connected(a, b), adj.Connected(b, a), "%s/%s", a.Name, b.Name)
		}
	}
}

func TestAdjacencyCoversEveryEdge(t *testing.T) {
	g, err := Load(sampleRaw())
	require.NoError(t, err)
	adj := g.Adjacency()

	for _, e := range g.Edges {
		assert.True(t, adj.Connected(e.Source, e.Target))
		assert.True(t, adj.Connected(e.Target, e.Source))
	}

	plate, _ := g.Lookup("Plate")
	door, _ := g.Lookup("Door")
	island, _ := g.Lookup("Island")
	assert.False(t, adj.Connected(plate, door))
	assert.False(t, adj.Connected(island, door))

	// Door->Gate twice still yields one pair per direction.
	assert.Equal(t, 4, adj.Pairs())
}

func TestNeighbors(t *testing.T) {
	g, err := Load(sampleRaw())
	require.NoError(t, err)
	gate, _ := g.Lookup("Gate")

	var names []string
	for _, n := range g.Adjacency().Neighbors(g.Nodes, gate) {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Gate", "Plate", "Door"}, names)
}
