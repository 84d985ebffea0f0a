package backend

import (
	"context"

	"snnd/internal/algoconfig"
)

// Backend reconfigures the inference library. Apply must return once the new
// configuration is live or ctx is done.
type Backend interface {
	Name() string
	Apply(ctx context.Context, snap algoconfig.Snapshot) error
}

// ClassifierSource is implemented by backends that report the latest
// classifier output index.
type ClassifierSource interface {
	ClassifierIndex() int
}
