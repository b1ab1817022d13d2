package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/qloax/niks-aqua/components/dashboard/gorouter"
	"github.com/qloax/niks-aqua/components/dashboard/httpapi"
	"github.com/qloax/niks-aqua/pkg/config"
	"github.com/qloax/niks-aqua/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.SetLevel(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server stopped with error")
	}
	logger.Log.Info().Msg("Server exiting")
}

func run(ctx context.Context, cfg *config.Config) error {
	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	ticks := app.ticker.Start(ctx)
	defer ticks.Stop()

	if cfg.Server.Transport == "http" {
		return serveHTTP(ctx, cfg, app)
	}
	return serveFiber(ctx, cfg, app)
}

func serveFiber(ctx context.Context, cfg *config.Config, app *application) error {
	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: app.controller,
		API:        app.handlers,
		Broadcast:  app.broadcast,
		BasePath:   cfg.Server.BasePath,
	}); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("transport", "fiber").Msg("Starting server")
		errCh <- server.Serve(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Log.Info().Msg("Shutting down server...")
	app.broadcast.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func serveHTTP(ctx context.Context, cfg *config.Config, app *application) error {
	mux := httpapi.NewServeMux(app.handlers, httpapi.MuxOptions{
		BasePath:  cfg.Server.BasePath,
		Broadcast: app.broadcast,
	})
	mux.HandleFunc("GET "+cfg.Server.BasePath+"/dashboard", app.serveShell)
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("transport", "http").Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Log.Info().Msg("Shutting down server...")
	app.broadcast.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Str("ip", r.RemoteAddr).
			Dur("latency", time.Since(start)).
			Msg("Request processed")
	})
}
