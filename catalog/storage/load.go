package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"cocktails/catalog"
)

// RetryOptions configures how often a failing source is retried.
type RetryOptions struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

// DefaultRetryOptions retries a remote load three times starting at 200ms.
var DefaultRetryOptions = RetryOptions{MaxAttempts: 3, InitialInterval: 200 * time.Millisecond}

// LoadCatalog reads a document from src and builds a catalog from it. Load errors are retried with
// exponential backoff; a document that fails to parse or validate is returned immediately.
func LoadCatalog(ctx context.Context, src Source, opts RetryOptions) (*catalog.Catalog, error) {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	exponentialBackoff := backoff.NewExponentialBackOff()
	if opts.InitialInterval > 0 {
		exponentialBackoff.InitialInterval = opts.InitialInterval
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(exponentialBackoff, uint64(opts.MaxAttempts-1)), ctx)

	var c *catalog.Catalog
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		data, err := src.Load(ctx)
		if err != nil {
			slog.Warn("SETUP: Catalog load failed", "attempt", attempt, "error", err)
			return fmt.Errorf("read catalog: %w", err)
		}
		c, err = catalog.Parse(data)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, policy)
	if err != nil {
		return nil, err
	}
	return c, nil
}
