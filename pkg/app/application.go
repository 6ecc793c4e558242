package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"roomly/pkg/config"
	"roomly/pkg/contracts"
	"roomly/pkg/logger"
	"roomly/pkg/middleware"
)

// Application owns the HTTP server lifecycle: route registration,
// middleware chain, startup and graceful shutdown.
type Application struct {
	cfg         *config.Config
	log         *logger.Logger
	router      *httprouter.Router
	server      *http.Server
	rateLimiter *middleware.RateLimiter
	onShutdown  []func(context.Context) error
}

func NewApplication(cfg *config.Config, log *logger.Logger) *Application {
	return &Application{
		cfg:         cfg,
		log:         log,
		router:      httprouter.New(),
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}
}

// RegisterHandlers lets each handler attach its routes to the router.
func (a *Application) RegisterHandlers(handlers ...contracts.Handler) {
	for _, h := range handlers {
		h.RegisterRoutes(a.router)
	}
}

// OnShutdown registers a hook that runs during graceful shutdown, after
// the HTTP server has stopped accepting requests.
func (a *Application) OnShutdown(fn func(context.Context) error) {
	a.onShutdown = append(a.onShutdown, fn)
}

func (a *Application) buildHandler() http.Handler {
	var h http.Handler = a.router

	h = middleware.ContentType(h)
	h = middleware.BodyLimit(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.Timeout(a.cfg.RequestTimeout)(h)
	h = a.rateLimiter.Middleware(h)
	h = middleware.RequestLogging(a.log)(h)
	h = middleware.Recovery(a.log)(h)

	return h
}

// Run starts the HTTP server and blocks until a shutdown signal arrives
// or the server fails.
func (a *Application) Run() error {
	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.buildHandler(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		a.log.Info("HTTP server starting", "addr", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		a.log.Info("shutdown signal received", "signal", sig.String())
		return a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("graceful shutdown failed, forcing close", "error", err)
		if cerr := a.server.Close(); cerr != nil {
			return fmt.Errorf("forced close: %w", cerr)
		}
	}

	a.rateLimiter.Stop()

	for _, fn := range a.onShutdown {
		if err := fn(ctx); err != nil {
			a.log.Error("shutdown hook failed", "error", err)
		}
	}

	a.log.Info("server stopped")
	return nil
}
