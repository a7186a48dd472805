package search

import (
	"context"

	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/query"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
)

// Repository supplies the corpus to search over.
type Repository interface {
	List(ctx context.Context) ([]note.Note, error)
}

// FeatureSource yields the precomputed fact sheet and semantic profile for
// a note, recomputing when the note changed since last seen.
type FeatureSource interface {
	Features(ctx context.Context, n note.Note) (query.FactSheet, semantic.Profile)
}

// QueryTagger builds a semantic profile from the residual query text.
type QueryTagger interface {
	ProfileText(ctx context.Context, text string) semantic.Profile
}
