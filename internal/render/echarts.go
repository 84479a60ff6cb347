package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/render/theme"
	"github.com/psidex/knowmap/internal/selection"
)

// ECharts renders a go-echarts HTML page with the nodes pinned at their layout
// positions and one legend entry per category.
type ECharts struct {
	g     *graph.Graph
	frame selection.Frame
}

func NewECharts(g *graph.Graph, frame selection.Frame) *ECharts {
	return &ECharts{g: g, frame: frame}
}

func (e *ECharts) Extension() string { return ".html" }

func (e *ECharts) nodes() []opts.GraphNode {
	nodes := make([]opts.GraphNode, len(e.g.Nodes))
	for _, n := range e.g.Nodes {
		style := e.frame.Nodes[n.Index]
		category := n.Group
		if !category.Valid() {
			category = graph.Uncategorised
		}
		nodes[n.Index] = opts.GraphNode{
			Name:       n.Name,
			X:          float32(n.Position.X),
			Y:          float32(n.Position.Y),
			Category:   int(category),
			SymbolSize: style.Radius * 2,
			ItemStyle: &opts.ItemStyle{
				Color:       n.Group.Color(),
				BorderColor: theme.StrokeColor(style.Stroke),
				BorderWidth: float32(style.StrokeWidth),
				Opacity:     opts.Float(float32(style.Opacity)),
			},
		}
	}
	return nodes
}

func (e *ECharts) links() []opts.GraphLink {
	var links []opts.GraphLink
	for _, edge := range e.g.Edges {
		style := e.frame.Edges[edge.Index]
		if !style.Visible {
			continue
		}
		link := opts.GraphLink{
			Source: edge.Source.Index,
			Target: edge.Target.Index,
			Value:  float32(edge.Value),
			LineStyle: &opts.LineStyle{
				Color:     theme.LinkColor,
				Width:     float32(style.Width),
				Opacity:   opts.Float(float32(style.Opacity)),
				Curveness: 0.2,
			},
		}
		if label := e.frame.Labels[edge.Index]; label.Opacity > 0 {
			link.Label = &opts.EdgeLabel{
				Show:      opts.Bool(true),
				Formatter: edge.Property,
				Color:     theme.LabelColor(label.Emphasized),
				FontSize:  11,
			}
		}
		links = append(links, link)
	}
	return links
}

func (e *ECharts) categories() []*opts.GraphCategory {
	out := make([]*opts.GraphCategory, 0, graph.CategoryCount)
	for _, c := range graph.Categories() {
		out = append(out, &opts.GraphCategory{
			Name: c.Name(),
			ItemStyle: &opts.ItemStyle{
				Color:   c.Color(),
				Opacity: opts.Float(float32(e.frame.Legend[c])),
			},
		})
	}
	return out
}

func (e *ECharts) Render(w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(e.chart())
	return page.Render(w)
}

func (e *ECharts) chart() *charts.Graph {
	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "knowmap",
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	chart.AddSeries(
		"graph",
		e.nodes(),
		e.links(),
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:     "none",
				Draggable:  opts.Bool(true),
				Roam:       opts.Bool(true),
				EdgeSymbol: []string{"none", "arrow"},
				Categories: e.categories(),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    theme.TextColor,
			Position: "right",
		}),
	)
	return chart
}
