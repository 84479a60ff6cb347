package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/psidex/knowmap/internal/snapshot"
	"github.com/psidex/knowmap/internal/ui"
)

func snapshotCmd(g *globals) *cobra.Command {
	var (
		output string
		url    string
		v      view
	)
	opts := snapshot.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture a PNG of the rendered graph with headless Chrome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger := g.logger(cfg)
			capturer := snapshot.NewCapturer(opts, logger)

			var res *snapshot.Result
			if url != "" {
				res, err = capturer.Capture(cmd.Context(), url)
			} else {
				gr, _, loadErr := loadGraph(cmd.Context(), cfg, logger)
				if loadErr != nil {
					return loadErr
				}
				frame, frameErr := v.frame(gr)
				if frameErr != nil {
					return frameErr
				}
				res, err = capturer.CaptureGraph(cmd.Context(), gr, frame)
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, res.PNG, 0o644); err != nil {
				return err
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(res.PNG))
			if n := len(res.FailedRequests); n > 0 {
				ui.Warn.Fprintf(cmd.OutOrStdout(), "%d page requests failed, the image may be incomplete\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "knowmap.png", "PNG file to write")
	cmd.Flags().StringVar(&url, "url", "", "capture this page instead, e.g. a running knowmap serve")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "viewport width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "viewport height")
	cmd.Flags().DurationVar(&opts.Settle, "settle", opts.Settle, "wait this long after load before capturing")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "give up after this long")
	v.addFlags(cmd)
	return cmd
}
