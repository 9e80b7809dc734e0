package grpc

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukta/symposium/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type switchPinger struct {
	mu  sync.Mutex
	err error
}

func (p *switchPinger) PingContext(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *switchPinger) set(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func startBufconn(t *testing.T, db Pinger) (healthpb.HealthClient, context.CancelFunc, <-chan error) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := NewHealthServer("", db, 20*time.Millisecond, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		_ = conn.Close()
	})

	return healthpb.NewHealthClient(conn), cancel, done
}

func checkStatus(t *testing.T, c healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealth_FollowsDatabase(t *testing.T) {
	db := &switchPinger{}
	c, _, _ := startBufconn(t, db)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, c, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, c, ServiceName))

	db.set(errors.New("db down"))
	assert.Eventually(t, func() bool {
		return checkStatus(t, c, ServiceName) == healthpb.HealthCheckResponse_NOT_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	db.set(nil)
	assert.Eventually(t, func() bool {
		return checkStatus(t, c, "") == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHealth_UnknownService(t *testing.T) {
	c, _, _ := startBufconn(t, &switchPinger{})

	_, err := c.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	_, cancel, done := startBufconn(t, &switchPinger{})

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	s := NewHealthServer("127.0.0.1:99999", &switchPinger{}, time.Second, logging.Nop())
	require.Error(t, s.Run(context.Background()))
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := NewHealthServer("", &switchPinger{}, time.Second, logging.Nop())
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := s.loggingInterceptor(context.Background(), "req", info,
		func(ctx context.Context, req any) (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = s.loggingInterceptor(context.Background(), "req", info,
		func(ctx context.Context, req any) (any, error) { return nil, status.Error(codes.Internal, "x") })
	assert.Equal(t, codes.Internal, status.Code(err))
}
