// Package graphology serializes a laid out graph in the Graphology JSON format.
package graphology

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/selection"
)

// Graphology renders a SerializedGraph. Node keys are the input indices, edge keys
// are "e" followed by the edge index.
type Graphology struct {
	g     *graph.Graph
	frame selection.Frame
}

func NewGraphology(g *graph.Graph, frame selection.Frame) *Graphology {
	return &Graphology{g: g, frame: frame}
}

func (g *Graphology) Extension() string { return ".json" }

func nodeKey(n *graph.Node) string {
	return strconv.Itoa(n.Index)
}

// Serialize builds the document. Edges hidden by the frame are kept with the
// hidden attribute set.
func (g *Graphology) Serialize() *SerializedGraph {
	out := &SerializedGraph{
		Options: Options{Type: "directed", Multi: true, AllowLoops: true},
		Nodes:   make([]Node, 0, len(g.g.Nodes)),
		Edges:   make([]Edge, 0, len(g.g.Edges)),
	}

	for _, n := range g.g.Nodes {
		attrs := NodeAttributes{
			X:     n.Position.X,
			Y:     n.Position.Y,
			Size:  g.frame.Nodes[n.Index].Radius,
			Label: n.Name,
			Color: n.Group.Color(),
			Group: int(n.Group),
		}
		if n.HasWikiLink() {
			attrs.WikiLink = n.WikiLink
		}
		out.Nodes = append(out.Nodes, Node{Key: nodeKey(n), Attributes: attrs})
	}

	for _, e := range g.g.Edges {
		style := g.frame.Edges[e.Index]
		out.Edges = append(out.Edges, Edge{
			Key:    "e" + strconv.Itoa(e.Index),
			Source: nodeKey(e.Source),
			Target: nodeKey(e.Target),
			Attributes: EdgeAttributes{
				Size:   style.Width,
				Label:  e.Property,
				Value:  e.Value,
				Hidden: !style.Visible,
			},
		})
	}

	return out
}

func (g *Graphology) Render(w io.Writer) error {
	return json.NewEncoder(w).Encode(g.Serialize())
}
