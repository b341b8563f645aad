package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joeshaw/envdecode"

	"cocktails"
	"cocktails/server"
	"cocktails/tools"
)

type Results struct {
	Text       []string `json:"text"`
	Structured any      `json:"structured,omitempty"`
	IsError    bool     `json:"is_error"`
}

func main() {
	ctx := context.Background()

	var serverConfig cocktails.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var catalogConfig cocktails.CatalogConfig
	if err := envdecode.Decode(&catalogConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var prefsConfig cocktails.PrefsConfig
	if err := envdecode.Decode(&prefsConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	// Catalog and store are built once per cold start and shared by every invocation.
	c, err := cocktails.LoadCatalog(ctx, catalogConfig)
	if err != nil {
		log.Fatalf("SETUP: Failed to load catalog: %s", err)
	}

	store, closeStore, err := cocktails.NewPreferenceStore(ctx, prefsConfig)
	if err != nil {
		log.Fatalf("SETUP: Failed to create preference store: %s", err)
	}

	registry, err := tools.NewRegistry(c, store)
	if err != nil {
		log.Fatalf("SETUP: Failed to create tool registry: %s", err)
	}

	tracerProvider, meterProvider, otelShutdown, err := cocktails.InitOtel(ctx, serverConfig.OtelEnabled)
	if err != nil {
		log.Fatalf("SETUP: Failed to initialize OpenTelemetry: %s", err)
	}

	srv, err := server.New(registry, server.Options{
		Name:    serverConfig.Name,
		Version: serverConfig.Version,
		Logger:  cocktails.NewStdoutInvocationLogger(),
		Tracer:  tracerProvider.Tracer(cocktails.TracerNameLambda),
		Meter:   meterProvider.Meter(cocktails.TracerNameLambda),
	})
	if err != nil {
		log.Fatalf("SETUP: Failed to create server: %s", err)
	}
	slog.Info("SETUP: Lambda ready", "recipes", c.Len())

	fn := func(ctx context.Context, call tools.Call) (Results, error) {
		// flush spans and metrics before the runtime freezes the sandbox
		defer func() {
			if err := tracerProvider.ForceFlush(ctx); err != nil {
				slog.Error("Failed to flush traces", "error", err)
			}
			if err := meterProvider.ForceFlush(ctx); err != nil {
				slog.Error("Failed to flush metrics", "error", err)
			}
		}()

		if call.Name == "" {
			return Results{}, fmt.Errorf("missing tool name")
		}

		result, err := srv.Call(tools.WithUser(ctx, call.User), call.Name, call.Input)
		if err != nil {
			slog.Error("RESULT: Error handling tool call", "tool", call.Name, "error", err)
			return Results{}, err
		}

		return Results{
			Text:       result.Text,
			Structured: result.Structured,
			IsError:    result.IsError,
		}, nil
	}

	lambda.StartWithOptions(fn, lambda.WithEnableSIGTERM(func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
		if err := closeStore(); err != nil {
			slog.Error("SETUP: Failed to close preference store", "error", err)
		}
	}))
}
