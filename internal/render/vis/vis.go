// Package vis renders a laid out graph to a standalone vis-network page.
package vis

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/render/theme"
	"github.com/psidex/knowmap/internal/selection"
)

// Vis renders to a HTML page with physics disabled, so nodes stay where the layout
// put them.
type Vis struct {
	g     *graph.Graph
	frame selection.Frame
}

func NewVis(g *graph.Graph, frame selection.Frame) *Vis {
	return &Vis{g: g, frame: frame}
}

func (v *Vis) Extension() string { return ".html" }

func (v *Vis) document() document {
	doc := document{
		Nodes: make([]nodeData, len(v.g.Nodes)),
		Edges: []edgeData{},
	}
	for _, n := range v.g.Nodes {
		style := v.frame.Nodes[n.Index]
		d := nodeData{
			ID:          n.Index,
			Label:       n.Name,
			Group:       int(n.Group),
			X:           n.Position.X,
			Y:           n.Position.Y,
			Size:        style.Radius,
			Opacity:     style.Opacity,
			BorderWidth: style.StrokeWidth,
			Color: color{
				Background: n.Group.Color(),
				Border:     theme.StrokeColor(style.Stroke),
			},
		}
		if style.Bold {
			d.Font.Bold = "true"
		}
		doc.Nodes[n.Index] = d
	}
	for _, e := range v.g.Edges {
		style := v.frame.Edges[e.Index]
		if !style.Visible {
			continue
		}
		d := edgeData{
			ID:    e.Index,
			From:  e.Source.Index,
			To:    e.Target.Index,
			Width: style.Width,
			Color: edgeColor{Color: theme.LinkColor, Opacity: style.Opacity},
		}
		if label := v.frame.Labels[e.Index]; label.Opacity > 0 {
			d.Label = e.Property
			d.Font = &edgeFont{Color: theme.LabelColor(label.Emphasized)}
		}
		doc.Edges = append(doc.Edges, d)
	}
	return doc
}

func (v *Vis) Render(w io.Writer) error {
	data, err := json.Marshal(v.document())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, html, data)
	return err
}
