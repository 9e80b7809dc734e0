// Package grpc runs the standard gRPC health service next to the HTTP API.
// The reported status follows database reachability.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/yukta/symposium/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name under which the API's own health is published, in
// addition to the overall "" entry.
const ServiceName = "yukta.Symposium"

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthServer struct {
	address  string
	db       Pinger
	interval time.Duration
	logger   logging.Logger
	health   *health.Server
}

func NewHealthServer(address string, db Pinger, interval time.Duration, l logging.Logger) *HealthServer {
	return &HealthServer{
		address:  address,
		db:       db,
		interval: interval,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
	}
}

// Run serves until ctx is done, then marks every service NOT_SERVING and
// stops gracefully.
func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers service
	healthpb.RegisterHealthServer(srv, s.health)

	s.check(ctx)

	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check pings the database once and publishes the result.
func (s *HealthServer) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
