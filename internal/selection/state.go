package selection

import (
	"encoding/json"
	"fmt"

	"github.com/psidex/knowmap/internal/graph"
)

// Mode is the interaction mode. Exactly one is active at a time.
type Mode int

const (
	ModeNeutral Mode = iota
	ModeNodeSelected
	ModeCategoryFiltered
)

func (m Mode) String() string {
	switch m {
	case ModeNeutral:
		return "neutral"
	case ModeNodeSelected:
		return "node_selected"
	case ModeCategoryFiltered:
		return "category_filtered"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State is the current mode plus its payload: Anchor is only set in
// ModeNodeSelected and Group is only meaningful in ModeCategoryFiltered.
type State struct {
	Mode   Mode
	Anchor *graph.Node
	Group  graph.Category
}

func Neutral() State {
	return State{Mode: ModeNeutral}
}

func NodeSelected(n *graph.Node) State {
	return State{Mode: ModeNodeSelected, Anchor: n}
}

func CategoryFiltered(g graph.Category) State {
	return State{Mode: ModeCategoryFiltered, Group: g}
}

func (s State) String() string {
	switch s.Mode {
	case ModeNodeSelected:
		return fmt.Sprintf("node_selected(%s)", s.Anchor.Name)
	case ModeCategoryFiltered:
		return fmt.Sprintf("category_filtered(%d)", int(s.Group))
	}
	return s.Mode.String()
}

type stateJson struct {
	Mode   Mode            `json:"mode"`
	Anchor string          `json:"anchor,omitempty"`
	Group  *graph.Category `json:"group,omitempty"`
}

func (s State) MarshalJSON() ([]byte, error) {
	out := stateJson{Mode: s.Mode}
	switch s.Mode {
	case ModeNodeSelected:
		out.Anchor = s.Anchor.Name
	case ModeCategoryFiltered:
		g := s.Group
		out.Group = &g
	}
	return json.Marshal(out)
}

// Toggles are the two display checkboxes. Labels are only drawn while edges are.
type Toggles struct {
	EdgesVisible  bool `json:"edgesVisible"`
	LabelsVisible bool `json:"labelsVisible"`
}

// ShowLabels is true when edge labels may be drawn at all.
func (t Toggles) ShowLabels() bool {
	return t.EdgesVisible && t.LabelsVisible
}

// Controls is whether each checkbox accepts input.
type Controls struct {
	EdgesEnabled  bool `json:"edgesEnabled"`
	LabelsEnabled bool `json:"labelsEnabled"`
}
