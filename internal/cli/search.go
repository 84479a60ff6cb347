package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/knowmap/internal/ui"
)

func searchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find nodes by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			gr, idx, err := loadGraph(cmd.Context(), cfg, g.logger(cfg))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			matches := idx.Query(strings.Join(args, " "))
			if len(matches) == 0 {
				ui.Subtle.Fprintln(out, "No results found")
				return nil
			}

			table := make([][]string, 0, len(matches))
			for _, m := range matches {
				n := gr.Nodes[m.Index]
				table = append(table, []string{
					strconv.Itoa(m.Index),
					ui.Highlight(m.Name, m.Start, m.End),
					n.Group.Name(),
					strconv.Itoa(len(gr.Adjacency().Neighbors(gr.Nodes, n)) - 1),
				})
			}
			ui.Table(out, []string{"#", "NAME", "CATEGORY", "NEIGHBOURS"}, table)
			return nil
		},
	}
}
