// Package selection is the interaction state machine of the viewer.
//
// A Controller owns one viewer's selection: the mode (neutral, node selected or
// category filtered), the edge/label toggles and the enablement of their controls.
// Every input is a Command passed to Apply, which returns the Frame to draw.
// Controllers are not safe for concurrent use; each session owns its own.
package selection

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/lib"
)

var (
	// ErrSearchLookupMiss is returned when a selected search result names no node.
	ErrSearchLookupMiss = errors.New("search result not found among nodes")
	// ErrUnknownNode is returned when a clicked node name is not in the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownCommand is returned for a Command with an unrecognised Kind.
	ErrUnknownCommand = errors.New("unknown command")
)

// Transition describes what a single Apply did.
type Transition struct {
	Kind Kind
	From State
	To   State
}

type Controller struct {
	logger *slog.Logger
	graph  *graph.Graph

	state    State
	toggles  Toggles
	controls Controls
	seq      uint64

	// OnTransition, if set, is called after every Apply that changed the state.
	OnTransition func(Transition)
}

// NewController starts in neutral mode with edges and labels hidden. The edges
// checkbox is usable, the labels checkbox is not until edges are shown.
func NewController(logger *slog.Logger, g *graph.Graph) *Controller {
	return &Controller{
		logger:   lib.OrDiscard(logger),
		graph:    g,
		state:    Neutral(),
		controls: Controls{EdgesEnabled: true, LabelsEnabled: false},
	}
}

func (c *Controller) State() State       { return c.state }
func (c *Controller) Toggles() Toggles   { return c.toggles }
func (c *Controller) Controls() Controls { return c.controls }

// Frame draws the current state without changing it.
func (c *Controller) Frame() Frame {
	f := buildFrame(c.graph, c.state, c.toggles, c.controls)
	f.Seq = c.seq
	f.Effect = EffectNone
	return f
}

// Apply runs cmd to completion and returns the frame to draw. A returned error means
// nothing changed; the frame then still reflects the current state.
func (c *Controller) Apply(cmd Command) (Frame, error) {
	from := c.state
	fromToggles := c.toggles
	var (
		effect Effect
		pulse  *Pulse
		center *int
		err    error
	)

	switch cmd.Kind {
	case KindNodeClick:
		effect, err = c.nodeClick(cmd.Node)
	case KindCategorySelect:
		effect = c.categorySelect(cmd.Group)
	case KindCategorySelectAll:
		effect = c.categorySelectAll()
	case KindSearchSelect:
		var n *graph.Node
		n, err = c.searchSelect(cmd.Node)
		if err == nil {
			effect = EffectHighlight
			index := n.Index
			center = &index
			pulse = &Pulse{Node: n.Index, Stages: slices.Clone(pulseStages)}
		}
	case KindSetEdgesVisible:
		effect = c.setEdgesVisible(cmd.On)
	case KindSetLabelsVisible:
		effect = c.setLabelsVisible(cmd.On)
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownCommand, cmd.Kind)
	}

	if err != nil {
		return c.Frame(), err
	}

	c.seq++
	f := buildFrame(c.graph, c.state, c.toggles, c.controls)
	f.Seq = c.seq
	f.Effect = effect
	f.Pulse = pulse
	f.CenterOn = center
	f.Changed = effect != EffectNone

	if c.state != from {
		c.logger.Debug("selection transition", "command", cmd.Kind, "from", from, "to", c.state)
		if c.OnTransition != nil {
			c.OnTransition(Transition{Kind: cmd.Kind, From: from, To: c.state})
		}
	} else if c.toggles != fromToggles {
		c.logger.Debug("display toggles changed", "edges", c.toggles.EdgesVisible, "labels", c.toggles.LabelsVisible)
	}

	return f, nil
}

// nodeClick toggles between neutral and a selected node. Clicking any node while one
// is selected, including a different one, goes back to neutral. While a category
// filter is active clicks are ignored.
func (c *Controller) nodeClick(name string) (Effect, error) {
	n, ok := c.graph.Lookup(name)
	if !ok {
		return EffectNone, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}

	switch c.state.Mode {
	case ModeNeutral:
		c.state = NodeSelected(n)
		return EffectHighlight, nil
	case ModeNodeSelected:
		c.state = Neutral()
		return EffectReset, nil
	}
	return EffectNone, nil
}

// categorySelect isolates one category from any mode and takes the toggles away.
func (c *Controller) categorySelect(g graph.Category) Effect {
	c.state = CategoryFiltered(g)
	c.toggles = Toggles{}
	c.controls = Controls{}
	return EffectDim
}

func (c *Controller) categorySelectAll() Effect {
	c.state = Neutral()
	c.controls = Controls{EdgesEnabled: true, LabelsEnabled: c.toggles.EdgesVisible}
	return EffectShowAll
}

// searchSelect always ends with n selected: it neither toggles back to neutral nor
// respects an active category filter.
func (c *Controller) searchSelect(name string) (*graph.Node, error) {
	n, ok := c.graph.Lookup(name)
	if !ok {
		c.logger.Warn("search selection did not match a node", "name", name)
		return nil, fmt.Errorf("%w: %q", ErrSearchLookupMiss, name)
	}

	if c.state.Mode == ModeCategoryFiltered {
		c.categorySelectAll()
	}
	c.state = NodeSelected(n)
	return n, nil
}

// setEdgesVisible hides labels along with edges. Showing edges leaves the labels
// flag alone.
func (c *Controller) setEdgesVisible(on bool) Effect {
	if c.state.Mode == ModeCategoryFiltered {
		return EffectNone
	}
	c.toggles.EdgesVisible = on
	c.controls.LabelsEnabled = on
	if !on {
		c.toggles.LabelsVisible = false
	}
	return EffectToggle
}

// setLabelsVisible is accepted while edges are hidden but has no visible effect until
// edges are shown again.
func (c *Controller) setLabelsVisible(on bool) Effect {
	if c.state.Mode == ModeCategoryFiltered {
		return EffectNone
	}
	c.toggles.LabelsVisible = on
	return EffectToggle
}
