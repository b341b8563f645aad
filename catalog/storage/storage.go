// Package storage provides the sources a catalog document can be loaded from.
package storage

import (
	"context"
	"errors"

	"cocktails/catalog"
)

// Source loads a raw catalog document.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// EmbeddedSource serves the catalog compiled into the binary.
type EmbeddedSource struct{}

func NewEmbeddedSource() *EmbeddedSource { return &EmbeddedSource{} }

func (EmbeddedSource) Load(ctx context.Context) ([]byte, error) {
	return catalog.DefaultData(), nil
}

// TestSource is a simple in-memory implementation for testing
type TestSource struct {
	data  []byte
	err   error
	calls int
}

func NewTestSource(data []byte) *TestSource {
	return &TestSource{data: data}
}

func NewTestSourceWithError() *TestSource {
	return &TestSource{err: errors.New("not found")}
}

func (t *TestSource) Load(ctx context.Context) ([]byte, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}

// Calls reports how many times Load was called.
func (t *TestSource) Calls() int { return t.calls }
