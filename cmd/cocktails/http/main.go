package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joeshaw/envdecode"

	"cocktails"
	"cocktails/server"
	"cocktails/tools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var serverConfig cocktails.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var catalogConfig cocktails.CatalogConfig
	if err := envdecode.Decode(&catalogConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var prefsConfig cocktails.PrefsConfig
	if err := envdecode.Decode(&prefsConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	c, err := cocktails.LoadCatalog(ctx, catalogConfig)
	if err != nil {
		slog.Error("SETUP: Failed to load catalog", "error", err)
		return
	}

	store, closeStore, err := cocktails.NewPreferenceStore(ctx, prefsConfig)
	if err != nil {
		slog.Error("SETUP: Failed to create preference store", "error", err)
		return
	}
	defer closeStore() // nolint: errcheck

	registry, err := tools.NewRegistry(c, store)
	if err != nil {
		slog.Error("SETUP: Failed to create tool registry", "error", err)
		return
	}

	logger, cleanup, err := cocktails.NewInvocationLogger(serverConfig.InvocationLog, serverConfig.Name)
	if err != nil {
		slog.Error("SETUP: Failed to create invocation logger", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("SETUP: Failed to flush invocation log", "error", err)
		}
	}()

	tracerProvider, meterProvider, otelShutdown, err := cocktails.InitOtel(ctx, serverConfig.OtelEnabled)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	srv, err := server.New(registry, server.Options{
		Name:          serverConfig.Name,
		Version:       serverConfig.Version,
		WidgetBaseURL: serverConfig.WidgetBaseURL,
		Logger:        logger,
		Tracer:        tracerProvider.Tracer(cocktails.TracerNameServer),
		Meter:         meterProvider.Meter(cocktails.TracerNameServer),
	})
	if err != nil {
		slog.Error("SETUP: Failed to create MCP server", "error", err)
		return
	}

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:              serverConfig.HTTPAddr,
		Handler:           srv.HTTPHandler(c.Len()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("FAILURE: HTTP shutdown", "error", err)
		}
	}()

	slog.Info("SETUP: Serving over HTTP", "addr", serverConfig.HTTPAddr, "recipes", c.Len())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("FAILURE: HTTP server stopped", "error", err)
	}
}
