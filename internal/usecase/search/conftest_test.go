package search

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/query"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
)

type stubRepo struct {
	listFn func(ctx context.Context) ([]note.Note, error)
}

func (s *stubRepo) List(ctx context.Context) ([]note.Note, error) {
	return s.listFn(ctx)
}

type stubFeatures struct {
	featuresFn func(ctx context.Context, n note.Note) (query.FactSheet, semantic.Profile)
}

func (s *stubFeatures) Features(ctx context.Context, n note.Note) (query.FactSheet, semantic.Profile) {
	return s.featuresFn(ctx, n)
}

type stubTagger struct {
	profileFn func(ctx context.Context, text string) semantic.Profile
}

func (s *stubTagger) ProfileText(ctx context.Context, text string) semantic.Profile {
	return s.profileFn(ctx, text)
}

// realFeatures derives features directly from the note, with no semantic
// tagging, so pipeline tests exercise the real fact sheets.
func realFeatures() *stubFeatures {
	return &stubFeatures{
		featuresFn: func(_ context.Context, n note.Note) (query.FactSheet, semantic.Profile) {
			return query.FactsOf(&n), semantic.Profile{}
		},
	}
}

func emptyTagger() *stubTagger {
	return &stubTagger{profileFn: func(context.Context, string) semantic.Profile {
		return semantic.Profile{}
	}}
}

func testNote(t *testing.T, id, client string, meeting time.Time, req note.Requirements, opts ...func(*note.Input)) note.Note {
	t.Helper()
	in := note.Input{
		ClientName:   note.String(client),
		MeetingDate:  note.Time(meeting),
		Body:         note.String("met to discuss housing needs"),
		Requirements: &req,
	}
	for _, opt := range opts {
		opt(&in)
	}
	n, err := note.New(id, in, meeting)
	if err != nil {
		t.Fatalf("build note %s: %v", id, err)
	}
	return n
}

func preApproved() func(*note.Input) {
	return func(in *note.Input) { in.PreApproved = note.Bool(true) }
}

func withTimeline(tl note.Timeline) func(*note.Input) {
	return func(in *note.Input) { in.Timeline = &tl }
}

func newTestService(t *testing.T, notes []note.Note, tagger QueryTagger, limit int) *Service {
	t.Helper()
	repo := &stubRepo{listFn: func(context.Context) ([]note.Note, error) {
		return notes, nil
	}}
	return New(zap.NewNop(), repo, realFeatures(), tagger, limit)
}
