package selection

import "github.com/psidex/knowmap/internal/graph"

// Visual constants shared with the viewer.
const (
	FullOpacity        = 1.0
	DimOpacity         = 0.1
	DefaultEdgeOpacity = 0.4
	HiddenOpacity      = 0.0

	DefaultRadius = 9.0
	AnchorRadius  = 12.0

	DefaultStrokeWidth  = 2.0
	NeighborStrokeWidth = 2.5
	AnchorStrokeWidth   = 3.0
	EdgeWidth           = 2.0
)

// Stroke is a color role; the viewer resolves it against its theme.
type Stroke string

const (
	StrokeNeutral Stroke = "neutral"
	StrokeAccent  Stroke = "accent"
)

// Effect names the transition the viewer should animate.
type Effect string

const (
	EffectNone      Effect = "none"
	EffectHighlight Effect = "highlight"
	EffectReset     Effect = "reset"
	EffectDim       Effect = "dim"
	EffectShowAll   Effect = "show_all"
	EffectToggle    Effect = "toggle"
)

type NodeStyle struct {
	Opacity     float64 `json:"opacity"`
	Radius      float64 `json:"r"`
	Stroke      Stroke  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	// Bold marks the anchor's text label.
	Bold bool `json:"bold,omitempty"`
}

type EdgeStyle struct {
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	Width   float64 `json:"width"`
}

type LabelStyle struct {
	Opacity float64 `json:"opacity"`
	// Emphasized labels use the solid text color instead of the translucent one.
	Emphasized bool `json:"emphasized,omitempty"`
}

// PulseStage is one step of the search pulse animation.
type PulseStage struct {
	Radius      float64 `json:"r"`
	StrokeWidth float64 `json:"strokeWidth"`
	DurationMs  int     `json:"durationMs"`
}

// Pulse briefly draws attention to a node found by search. The frame stays the
// source of truth: once the last stage ends the viewer re-applies the node's style.
type Pulse struct {
	Node   int          `json:"node"`
	Stages []PulseStage `json:"stages"`
}

var pulseStages = []PulseStage{
	{Radius: 14, StrokeWidth: 4, DurationMs: 300},
	{Radius: 12, StrokeWidth: 3, DurationMs: 300},
	{Radius: 9, StrokeWidth: 2, DurationMs: 300},
}

// Frame is every visual attribute that depends on selection, indexed like the graph's
// nodes and edges. Labels are indexed like edges.
type Frame struct {
	Seq      uint64       `json:"seq"`
	Effect   Effect       `json:"effect"`
	Changed  bool         `json:"changed"`
	State    State        `json:"state"`
	Toggles  Toggles      `json:"toggles"`
	Controls Controls     `json:"controls"`
	Nodes    []NodeStyle  `json:"nodes"`
	Edges    []EdgeStyle  `json:"edges"`
	Labels   []LabelStyle `json:"labels"`
	// Legend is the opacity of each category indicator, by category code.
	Legend [graph.CategoryCount]float64 `json:"legend"`
	Pulse  *Pulse                       `json:"pulse,omitempty"`
	// CenterOn is a best effort hint to pan to this node index.
	CenterOn *int `json:"centerOn,omitempty"`
}

func defaultNodeStyle() NodeStyle {
	return NodeStyle{
		Opacity:     FullOpacity,
		Radius:      DefaultRadius,
		Stroke:      StrokeNeutral,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// buildFrame derives the frame from state and toggles alone, so applying the same
// state twice always draws the same thing.
func buildFrame(g *graph.Graph, s State, t Toggles, c Controls) Frame {
	f := Frame{
		State:    s,
		Toggles:  t,
		Controls: c,
		Nodes:    make([]NodeStyle, len(g.Nodes)),
		Edges:    make([]EdgeStyle, len(g.Edges)),
		Labels:   make([]LabelStyle, len(g.Edges)),
	}
	for i := range f.Legend {
		f.Legend[i] = FullOpacity
	}

	switch s.Mode {
	case ModeNodeSelected:
		highlight(&f, g, s.Anchor, t)
	case ModeCategoryFiltered:
		dim(&f, g, s.Group, t)
	default:
		reset(&f, g, t)
	}
	return f
}

func reset(f *Frame, g *graph.Graph, t Toggles) {
	emphasis := allEmphasized(g.Nodes)
	for _, n := range g.Nodes {
		style := defaultNodeStyle()
		style.Opacity = emphasis.Opacity(n.Index)
		f.Nodes[n.Index] = style
	}
	labelOpacity := HiddenOpacity
	if t.ShowLabels() {
		labelOpacity = FullOpacity
	}
	for _, e := range g.Edges {
		f.Edges[e.Index] = EdgeStyle{Visible: t.EdgesVisible, Opacity: DefaultEdgeOpacity, Width: EdgeWidth}
		f.Labels[e.Index] = LabelStyle{Opacity: labelOpacity}
	}
}

func highlight(f *Frame, g *graph.Graph, anchor *graph.Node, t Toggles) {
	adj := g.Adjacency()
	emphasis := computeEmphasis(g.Nodes, func(n *graph.Node) bool {
		return adj.Connected(anchor, n)
	})

	for _, n := range g.Nodes {
		style := NodeStyle{
			Opacity:     emphasis.Opacity(n.Index),
			Radius:      DefaultRadius,
			Stroke:      StrokeNeutral,
			StrokeWidth: DefaultStrokeWidth,
		}
		switch {
		case n == anchor:
			style.Radius = AnchorRadius
			style.Stroke = StrokeAccent
			style.StrokeWidth = AnchorStrokeWidth
			style.Bold = true
		case emphasis[n.Index]:
			style.Stroke = StrokeAccent
			style.StrokeWidth = NeighborStrokeWidth
		}
		f.Nodes[n.Index] = style
	}

	for _, e := range g.Edges {
		incident := e.Incident(anchor)
		edge := EdgeStyle{Visible: t.EdgesVisible, Opacity: DimOpacity, Width: EdgeWidth}
		label := LabelStyle{Opacity: HiddenOpacity}
		if incident {
			edge.Opacity = FullOpacity
			if t.ShowLabels() {
				label = LabelStyle{Opacity: FullOpacity, Emphasized: true}
			}
		}
		f.Edges[e.Index] = edge
		f.Labels[e.Index] = label
	}
}

func dim(f *Frame, g *graph.Graph, group graph.Category, t Toggles) {
	emphasis := computeEmphasis(g.Nodes, func(n *graph.Node) bool {
		return n.Group.Normalized() == group
	})
	for _, n := range g.Nodes {
		style := defaultNodeStyle()
		style.Opacity = emphasis.Opacity(n.Index)
		f.Nodes[n.Index] = style
	}
	for _, e := range g.Edges {
		f.Edges[e.Index] = EdgeStyle{Visible: t.EdgesVisible, Opacity: DefaultEdgeOpacity, Width: EdgeWidth}
		f.Labels[e.Index] = LabelStyle{Opacity: HiddenOpacity}
	}
	for i := range f.Legend {
		if graph.Category(i) == group {
			f.Legend[i] = FullOpacity
		} else {
			f.Legend[i] = DimOpacity
		}
	}
}
