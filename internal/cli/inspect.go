package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/layout"
	"github.com/psidex/knowmap/internal/ui"
)

func inspectCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Summarise the graph data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			gr, _, err := loadGraph(cmd.Context(), cfg, g.logger(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Info.Fprintf(out, "%s\n", cfg.Data.Source)
			fmt.Fprintf(out, "  %d nodes, %d edges\n\n", len(gr.Nodes), len(gr.Edges))

			counts := make([]int, graph.CategoryCount)
			outside := 0
			for _, n := range gr.Nodes {
				if n.Group.Valid() {
					counts[n.Group]++
				} else {
					outside++
				}
			}
			rows := make([][]string, 0, graph.CategoryCount)
			for _, c := range graph.Categories() {
				rows = append(rows, []string{strconv.Itoa(int(c)), c.Name(), c.Color(), strconv.Itoa(counts[c])})
			}
			ui.Table(out, []string{"CODE", "CATEGORY", "COLOR", "NODES"}, rows)
			if outside > 0 {
				ui.Warn.Fprintf(out, "  %d nodes have a group outside the palette and are drawn as uncategorised\n", outside)
			}
			fmt.Fprintln(out)

			components := gr.Components()
			isolated := 0
			var largest []*graph.Node
			for _, c := range components {
				if len(c) == 1 {
					isolated++
				}
				if len(c) > len(largest) {
					largest = c
				}
			}
			fmt.Fprintf(out, "  %d connected components, %d isolated nodes\n", len(components), isolated)
			if largest != nil {
				fmt.Fprintf(out, "  largest component: %d nodes, starting at %q\n", len(largest), largest[0].Name)
			}

			b := layout.Bounds(gr)
			ui.Subtle.Fprintf(out, "  layout bounds: (%.0f, %.0f) to (%.0f, %.0f)\n", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
			return nil
		},
	}
}
