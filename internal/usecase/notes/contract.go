package notes

import (
	"context"

	"github.com/kailas-cloud/notedex/internal/domain/note"
)

// Repository is the note persistence contract.
type Repository interface {
	List(ctx context.Context) ([]note.Note, error)
	Get(ctx context.Context, id string) (note.Note, error)
	Put(ctx context.Context, n note.Note) error
	Delete(ctx context.Context, id string) (note.Note, error)
	ReplaceAll(ctx context.Context, notes []note.Note) error
}

// CacheInvalidator drops derived search features when a note changes.
type CacheInvalidator interface {
	Invalidate(id string)
	InvalidateAll()
}
