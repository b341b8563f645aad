package cocktails

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"cocktails/catalog"
	"cocktails/catalog/storage"
	"cocktails/prefs"
)

// NewCatalogSource picks where the catalog document comes from: S3 when a bucket and key are set, a local
// file when a path is set, the built-in document otherwise.
func NewCatalogSource(ctx context.Context, cfg CatalogConfig) (storage.Source, error) {
	switch {
	case cfg.S3Bucket != "" && cfg.S3Key != "":
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return storage.NewS3Source(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Key), nil
	case cfg.S3Bucket != "" || cfg.S3Key != "":
		return nil, fmt.Errorf("missing S3 config: CATALOG_S3_BUCKET and CATALOG_S3_KEY must both be set")
	case cfg.Path != "":
		return storage.NewFileSource(cfg.Path), nil
	default:
		return storage.NewEmbeddedSource(), nil
	}
}

// LoadCatalog builds the catalog from the configured source.
func LoadCatalog(ctx context.Context, cfg CatalogConfig) (*catalog.Catalog, error) {
	src, err := NewCatalogSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := storage.DefaultRetryOptions
	if cfg.LoadAttempts > 0 {
		opts.MaxAttempts = cfg.LoadAttempts
	}
	c, err := storage.LoadCatalog(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	slog.Info("SETUP: Catalog loaded", "source", fmt.Sprintf("%T", src), "recipes", c.Len())
	return c, nil
}

// NewPreferenceStore returns a Redis store when REDIS_ADDR is set and an in-memory store otherwise.
// The returned close func releases the Redis connection.
func NewPreferenceStore(ctx context.Context, cfg PrefsConfig) (prefs.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		slog.Info("SETUP: Using in-memory unit preferences")
		return prefs.NewMemoryStore(), func() error { return nil }, nil
	}

	store, client, err := prefs.NewRedisStoreFromConfig(ctx, prefs.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, prefs.WithTTL(cfg.TTL))
	if err != nil {
		return nil, func() error { return nil }, err
	}

	slog.Info("SETUP: Using Redis unit preferences", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return store, client.Close, nil
}
