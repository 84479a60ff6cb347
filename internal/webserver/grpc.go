package webserver

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/psidex/knowmap/internal/knowmap"
	"github.com/psidex/knowmap/internal/lib"
)

// ServiceName is the name reported by the health service besides the overall "".
const ServiceName = "knowmap"

// HealthServer reports NOT_SERVING until the graph is ready. A failed load keeps it
// NOT_SERVING.
type HealthServer struct {
	k      *knowmap.Knowmap
	logger *slog.Logger
	health *health.Server
}

func NewHealthServer(k *knowmap.Knowmap, logger *slog.Logger) *HealthServer {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{k: k, logger: lib.OrDiscard(logger), health: h}
}

// Watch flips the status once the graph is ready. It returns when that happens or
// ctx is done.
func (h *HealthServer) Watch(ctx context.Context) {
	select {
	case <-h.k.Ready():
		h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
		h.logger.Info("grpc health serving")
	case <-ctx.Done():
	}
}

// Serve listens on address until ctx is cancelled.
func (h *HealthServer) Serve(ctx context.Context, address string) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	return h.serve(ctx, lis)
}

func (h *HealthServer) serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, h.health)

	go h.Watch(ctx)
	go func() {
		<-ctx.Done()
		h.health.Shutdown()
		srv.GracefulStop()
	}()

	h.logger.Info("grpc health listening", "address", lis.Addr().String())
	return srv.Serve(lis)
}
