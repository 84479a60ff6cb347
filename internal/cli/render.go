package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/knowmap/internal/render"
	"github.com/psidex/knowmap/internal/ui"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		format string
		output string
		v      view
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the laid out graph to a file",
		Long: "Render the laid out graph to a file.\n" +
			ui.Subtle.Sprint("Formats: "+strings.Join(render.Formats, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Render.Format
			}
			if output == "" {
				output = cfg.Render.Filename
			}

			gr, _, err := loadGraph(cmd.Context(), cfg, g.logger(cfg))
			if err != nil {
				return err
			}
			frame, err := v.frame(gr)
			if err != nil {
				return err
			}

			r, err := render.New(format, gr, frame)
			if err != nil {
				return err
			}
			name, err := render.RenderToFile(r, output)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}

			ui.Good.Fprintf(cmd.OutOrStdout(), "wrote %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format, overrides render.format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file name without extension, overrides render.filename")
	v.addFlags(cmd)
	return cmd
}
