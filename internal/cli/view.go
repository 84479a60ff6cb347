package cli

import (
	"github.com/spf13/cobra"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/selection"
)

// view is the selection a static render is drawn in.
type view struct {
	node     string
	category string
	edges    bool
	labels   bool
}

func (v *view) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&v.node, "select", "", "highlight this node and its neighbours")
	cmd.Flags().StringVar(&v.category, "category", "", "isolate a category by its radio value, e.g. Tactical")
	cmd.Flags().BoolVar(&v.edges, "edges", false, "show edges")
	cmd.Flags().BoolVar(&v.labels, "labels", false, "show edge labels, needs --edges")
}

// frame replays the view as viewer commands, in the order a user would click them.
func (v *view) frame(g *graph.Graph) (*selection.Frame, error) {
	var cmds []selection.Command
	if v.edges {
		cmds = append(cmds, selection.SetEdgesVisible(true))
	}
	if v.labels {
		cmds = append(cmds, selection.SetLabelsVisible(true))
	}
	if v.category != "" {
		cmd, err := selection.CategoryCommand(v.category)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if v.node != "" {
		cmds = append(cmds, selection.NodeClick(v.node))
	}

	c := selection.NewController(nil, g)
	f := c.Frame()
	for _, cmd := range cmds {
		var err error
		if f, err = c.Apply(cmd); err != nil {
			return nil, err
		}
	}
	return &f, nil
}
