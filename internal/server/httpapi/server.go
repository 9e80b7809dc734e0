package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/yukta/symposium/internal/logging"
)

// HTTPServer runs the API until its context is cancelled.
type HTTPServer struct {
	address         string
	handler         http.Handler
	shutdownTimeout time.Duration
	certFile        string
	keyFile         string
	logger          logging.Logger
}

func NewHTTPServer(address string, handler http.Handler, shutdownTimeout time.Duration, l logging.Logger) *HTTPServer {
	return &HTTPServer{
		address:         address,
		handler:         handler,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
	}
}

// WithTLS makes the server answer HTTPS with the given PEM files. Empty
// paths keep plain HTTP.
func (s *HTTPServer) WithTLS(certFile, keyFile string) *HTTPServer {
	s.certFile = certFile
	s.keyFile = keyFile
	return s
}

// Run listens on the configured address and serves until ctx is done, then
// drains in-flight requests for at most the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	var err error
	if s.certFile != "" {
		s.logger.Info(ctx, "Starting HTTPS server", "address", listen.Addr().String())
		err = srv.ServeTLS(listen, s.certFile, s.keyFile)
	} else {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		err = srv.Serve(listen)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
