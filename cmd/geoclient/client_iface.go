package main

import (
	"context"

	"github.com/google/uuid"
)

// FeatureClient defines the subset of *api.Client used by the root command.
// *api.Client satisfies this interface without modification.
type FeatureClient interface {
	Add(ctx context.Context, path string) (uuid.UUID, error)
	AddAt(ctx context.Context, path string, id uuid.UUID) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (string, error)
	GetAll(ctx context.Context) (string, error)
}
