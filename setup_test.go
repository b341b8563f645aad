package cocktails

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktails/catalog"
	"cocktails/catalog/storage"
	"cocktails/prefs"
)

func TestNewCatalogSource(t *testing.T) {
	ctx := context.Background()

	src, err := NewCatalogSource(ctx, CatalogConfig{})
	require.NoError(t, err)
	assert.IsType(t, &storage.EmbeddedSource{}, src)

	src, err = NewCatalogSource(ctx, CatalogConfig{Path: "/tmp/cocktails.yaml"})
	require.NoError(t, err)
	assert.Equal(t, &storage.FileSource{FilePath: "/tmp/cocktails.yaml"}, src)

	_, err = NewCatalogSource(ctx, CatalogConfig{S3Bucket: "bucket"})
	assert.ErrorContains(t, err, "missing S3 config")
}

func TestLoadCatalog(t *testing.T) {
	ctx := context.Background()

	c, err := LoadCatalog(ctx, CatalogConfig{})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	path := filepath.Join(t.TempDir(), "cocktails.yaml")
	require.NoError(t, os.WriteFile(path, catalog.DefaultData(), 0644))
	c, err = LoadCatalog(ctx, CatalogConfig{Path: path, LoadAttempts: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadCatalog(ctx, CatalogConfig{Path: filepath.Join(t.TempDir(), "missing.yaml"), LoadAttempts: 1})
	assert.ErrorContains(t, err, "failed to load catalog")
}

func TestNewPreferenceStore(t *testing.T) {
	store, closeFn, err := NewPreferenceStore(context.Background(), PrefsConfig{})
	require.NoError(t, err)
	assert.IsType(t, &prefs.MemoryStore{}, store)
	assert.NoError(t, closeFn())
}
