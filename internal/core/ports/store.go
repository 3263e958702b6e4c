package ports

import (
	"context"
	"time"

	"go.trai.ch/mirror/internal/core/domain"
)

// ExpansionStore persists expansion cache entries.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ExpansionStore interface {
	// Lookup returns the newest entry for key created strictly after notBefore.
	// Returns nil, nil if not found.
	Lookup(ctx context.Context, key domain.ExpansionKey, notBefore time.Time) (*domain.ExpansionEntry, error)

	// Insert stores a new entry. Existing entries are never modified.
	Insert(ctx context.Context, entry domain.ExpansionEntry) error

	// List returns every entry of a source title, newest first.
	List(ctx context.Context, title string) ([]domain.ExpansionEntry, error)

	// Close releases the underlying storage.
	Close() error
}

// ExpansionStoreOpener opens expansion stores.
type ExpansionStoreOpener interface {
	// Open opens the store at path, creating it if needed. domain.MemoryPath opens an
	// ephemeral store.
	Open(path string) (ExpansionStore, error)
}

// StateStore persists the runner state between invocations.
type StateStore interface {
	// Load reads the state at path. A missing file yields an empty state.
	Load(path string) (*domain.State, error)

	// Save writes the state at path atomically.
	Save(path string, state *domain.State) error
}
