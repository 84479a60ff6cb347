package render

import (
	"encoding/json"
	"io"

	"github.com/psidex/knowmap/internal/graph"
)

// AdjacencyJson renders each node name mapped to its outgoing relations. It does not
// de-duplicate parallel edges.
type AdjacencyJson struct {
	g *graph.Graph
}

func NewAdjacencyJson(g *graph.Graph) *AdjacencyJson {
	return &AdjacencyJson{g: g}
}

type relation struct {
	Target   string `json:"target"`
	Property string `json:"property"`
}

func (a *AdjacencyJson) Extension() string { return ".json" }

func (a *AdjacencyJson) toJson() ([]byte, error) {
	out := make(map[string][]relation, len(a.g.Nodes))
	for _, n := range a.g.Nodes {
		out[n.Name] = []relation{}
	}
	for _, e := range a.g.Edges {
		out[e.Source.Name] = append(out[e.Source.Name], relation{Target: e.Target.Name, Property: e.Property})
	}
	return json.MarshalIndent(out, "", "  ")
}

func (a *AdjacencyJson) Render(w io.Writer) error {
	jsonData, err := a.toJson()
	if err != nil {
		return err
	}
	_, err = w.Write(jsonData)
	return err
}
