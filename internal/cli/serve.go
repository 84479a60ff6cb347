package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psidex/knowmap/internal/ui"
	"github.com/psidex/knowmap/internal/webserver"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		address     string
		grpcAddress string
		staticDir   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("address") {
				cfg.Server.Address = address
			}
			if cmd.Flags().Changed("grpc-address") {
				cfg.Server.GrpcAddress = grpcAddress
			}
			if cmd.Flags().Changed("static") {
				cfg.Server.StaticDir = staticDir
			}
			logger := g.logger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			k := newKnowmap(cfg, logger)
			// A failed load is logged and leaves the viewer on its loading screen.
			go func() { _ = k.Load(ctx) }()

			web := webserver.New(k, cfg.Server.StaticDir, logger)
			health := webserver.NewHealthServer(k, logger)

			ui.Good.Printf("knowmap serving %s on http://%s\n", cfg.Data.Source, cfg.Server.Address)

			errs := make(chan error, 2)
			go func() { errs <- web.ListenAndServe(ctx, cfg.Server.Address) }()
			running := 1
			if cfg.Server.GrpcAddress != "" {
				running++
				go func() { errs <- health.Serve(ctx, cfg.Server.GrpcAddress) }()
			}

			var first error
			for ; running > 0; running-- {
				if err := <-errs; err != nil && first == nil && !errors.Is(err, context.Canceled) {
					first = err
					stop()
				}
			}
			return first
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "http listen address, overrides server.address")
	cmd.Flags().StringVar(&grpcAddress, "grpc-address", "", "grpc health listen address, empty disables it")
	cmd.Flags().StringVar(&staticDir, "static", "", "serve the viewer from this directory instead of the embedded one")
	return cmd
}
