package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// Keys are note ids, values are whole notes; implementations must hand out
// detached copies.
type Repository interface {
	// Save persists a note, creating or overwriting it.
	Save(ctx context.Context, n Note) error

	// Get retrieves a note by its ID. Missing notes yield ErrNotFound.
	Get(ctx context.Context, id string) (Note, error)

	// List returns all readable notes, newest-created first.
	List(ctx context.Context) ([]Note, error)

	// Delete removes a note by its ID. Missing notes yield ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g. create directories).
	Initialize(ctx context.Context) error
}

// Enumerable is implemented by repositories that can list ids without
// decoding every note.
type Enumerable interface {
	IDs(ctx context.Context) ([]string, error)
}

// Watchable is implemented by repositories that can report changes.
type Watchable interface {
	// Watch streams change events for notes whose id matches pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
