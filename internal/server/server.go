// package server contains middleware & handlers for the movie catalog API
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/negagl/my-movie-api/internal/auth"
	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
)

// ShutdownTimeout bounds how long in-flight requests may drain after the serve context ends.
const ShutdownTimeout = 5 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, request ids and panic recovery.
type Middleware func(http.Handler) http.Handler

// Route is a single method and path pattern served by a [Handler].
type Route struct {
	Method     string
	Path       string
	Handler    http.HandlerFunc
	Middleware []Middleware // applied to this route only
}

// Handler defines the interface for groups of HTTP endpoints in the catalog service.
type Handler interface {
	Routes() []Route // Routes returns the routes this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                                        // Use adds router-wide middleware
	Handle(method, path string, handler http.Handler, mw ...Middleware) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                                             // Handler registers every route of a Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request)                    // ServeHTTP implements http.Handler for the entire router
}

// Tokens issues and validates bearer tokens.
type Tokens interface {
	auth.TokenValidator
	Issue(claims map[string]string) (string, error)
}

// Opts are the dependencies of the catalog API.
type Opts struct {
	Store  models.MovieStore
	Tokens Tokens
	Admin  *auth.Admin
	Logger *log.Logger
}

// New assembles the catalog API: router-wide request id, access log and panic recovery, plus the
// home, login and movie handlers. The full listing is gated on the administrator's token.
func New(opts Opts) (*BasicRouter, error) {
	if opts.Store == nil || opts.Tokens == nil || opts.Admin == nil {
		return nil, fmt.Errorf("%w: server needs a store, a token service and an admin", shared.ErrInvalidConfig)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	logger := shared.WithLogger(opts.Logger, "component", "http")
	guard := auth.NewGate(opts.Tokens, opts.Admin).Guard()

	router := NewBasicRouter()
	router.Use(RequestID(), Logging(logger), Recover(logger))
	router.Handler(NewHomeHandler())
	router.Handler(NewAuthHandler(opts.Tokens, opts.Admin, logger))
	router.Handler(NewMovieHandler(opts.Store, guard, logger))

	return router, nil
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully within [ShutdownTimeout].
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ServeListener(ctx, ln, handler, logger)
}

// ServeListener is [Serve] on an existing listener.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, logger *log.Logger) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("listening on %v", ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
