package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/agbru/bigcalc/internal/logging"
)

// shutdownTimeout bounds the graceful shutdown of the metrics endpoint.
const shutdownTimeout = 5 * time.Second

// Server serves a Recorder on /metrics.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     logging.Logger
}

// Listen binds addr and prepares the /metrics endpoint. Call Serve to
// start answering requests.
func Listen(addr string, r *Recorder, logger logging.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	return &Server{
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
		listener: ln,
		logger:   logger,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string { return s.listener.Addr().String() }

// Serve answers requests until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("serving metrics", logging.String("addr", s.Addr()))
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Printf("shutting down metrics endpoint on %s", s.Addr())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Println("metrics endpoint stopped")
	return nil
}
