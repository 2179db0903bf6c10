// Package mockserver serves canned JSON responses for deterministic CI runs.
//
// Pointing a test suite at the mock server instead of a live API makes
// snapshot runs reproducible: the contract baseline can be captured and
// compared without a deployed backend.
package mockserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Route declares one canned response.
type Route struct {
	// Method is the HTTP method; empty defaults to GET
	Method string
	// Path is the route pattern (httprouter syntax, e.g. /orders/:id)
	Path string
	// Status is the response status; 0 defaults to 200
	Status int
	// Body is the inline response body
	Body string
	// BodyFile is a file whose content is served as the response body.
	// Mutually exclusive with Body; the file is read once at startup.
	BodyFile string
}

// Server is a mock HTTP server backed by a static route table.
type Server struct {
	addr   string
	router *httprouter.Router
	logger *zap.Logger
}

// New builds a mock server from the declared routes. Body files are read
// eagerly so misconfiguration surfaces at startup, not mid-run.
func New(addr string, routes []Route, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := httprouter.New()
	for _, route := range routes {
		method := route.Method
		if method == "" {
			method = http.MethodGet
		}
		status := route.Status
		if status == 0 {
			status = http.StatusOK
		}

		body := []byte(route.Body)
		if route.BodyFile != "" {
			data, err := os.ReadFile(route.BodyFile)
			if err != nil {
				return nil, fmt.Errorf("mock route %s: reading body file: %w", route.Path, err)
			}
			body = data
		}

		router.Handle(method, route.Path, newHandler(status, body, logger))
	}

	return &Server{addr: addr, router: router, logger: logger}, nil
}

func newHandler(status int, body []byte, logger *zap.Logger) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		logger.Debug("mock request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
