package rpc

import (
	"context"
	"time"

	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/Varun5711/hashlink/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// NewServer returns a gRPC server exposing the codec and the standard health service.
func NewServer(svc *service.CodecService, log *logger.Logger) *grpc.Server {
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(log)))

	RegisterCodecServer(server, NewCodecServer(svc))

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	return server
}

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug("%s %s %s", info.FullMethod, status.Code(err), time.Since(start))
		return resp, err
	}
}
