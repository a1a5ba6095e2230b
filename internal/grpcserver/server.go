package grpcserver

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
)

// ServiceName is the health service name orchestrators probe.
const ServiceName = "fulfillment"

// Pinger is a dependency whose reachability decides the serving status.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	logger *zap.Logger
}

func New(logger *zap.Logger) *Server {
	s := &Server{
		health: health.NewServer(),
		logger: logger.With(zap.String("component", "grpc")),
	}
	s.grpc = grpc.NewServer(grpc.ChainUnaryInterceptor(s.unaryInterceptor))

	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)

	s.SetServing(false)
	return s
}

func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Watch pings deps every interval and flips the serving status until ctx is
// done. With no deps the server is always serving.
func (s *Server) Watch(ctx context.Context, interval time.Duration, deps ...Pinger) {
	check := func() {
		for _, d := range deps {
			pingCtx, cancel := context.WithTimeout(ctx, interval)
			err := d.Ping(pingCtx)
			cancel()
			if err != nil {
				s.logger.Warn("Dependency check failed", zap.Error(err))
				s.SetServing(false)
				return
			}
		}
		s.SetServing(true)
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

func (s *Server) unaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	metrics.GRPCRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
	s.logger.Debug("RPC handled",
		zap.String("rpc_method", info.FullMethod),
		zap.String("code", code.String()),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, err
}
