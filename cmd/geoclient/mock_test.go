package main

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/gezibash/geoclient/internal/api"
)

type mockClient struct {
	addFn    func(ctx context.Context, path string) (uuid.UUID, error)
	addAtFn  func(ctx context.Context, path string, id uuid.UUID) (uuid.UUID, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	getFn    func(ctx context.Context, id uuid.UUID) (string, error)
	getAllFn func(ctx context.Context) (string, error)

	calls int
}

func (m *mockClient) Add(ctx context.Context, path string) (uuid.UUID, error) {
	m.calls++
	return m.addFn(ctx, path)
}

func (m *mockClient) AddAt(ctx context.Context, path string, id uuid.UUID) (uuid.UUID, error) {
	m.calls++
	return m.addAtFn(ctx, path, id)
}

func (m *mockClient) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	m.calls++
	return m.deleteFn(ctx, id)
}

func (m *mockClient) Get(ctx context.Context, id uuid.UUID) (string, error) {
	m.calls++
	return m.getFn(ctx, id)
}

func (m *mockClient) GetAll(ctx context.Context) (string, error) {
	m.calls++
	return m.getAllFn(ctx)
}

// factoryFor returns a clientFactory handing out mc and recording the host
// it was built for.
func factoryFor(mc *mockClient, host **url.URL) clientFactory {
	return func(h *url.URL, _ ...api.Option) FeatureClient {
		if host != nil {
			*host = h
		}
		return mc
	}
}

// isolate keeps config files from the developer machine out of the run.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}
