package notes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain/note"
)

// Page is a bounded slice of the note list, newest meetings first.
type Page struct {
	Notes      []note.Note
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Filter holds the fielded-search parameters. Zero values mean "any".
type Filter struct {
	Query        string
	ClientName   string
	MeetingType  note.MeetingType
	Timeline     note.Timeline
	PropertyType note.PropertyType
	MinBedrooms  int
	MaxPrice     int
	Area         string
	Tag          string
}

// Service implements note CRUD on top of the repository, keeping the
// feature cache coherent on every write.
type Service struct {
	log             *zap.Logger
	repo            Repository
	cache           CacheInvalidator
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
	newID           func() string
}

// New wires the notes service.
func New(log *zap.Logger, repo Repository, cache CacheInvalidator, defaultPageSize, maxPageSize int) *Service {
	return &Service{
		log:             log,
		repo:            repo,
		cache:           cache,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// List returns one page of notes ordered by creation time descending.
// page starts at 1; out-of-range values are clamped, not rejected.
func (s *Service) List(ctx context.Context, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("list notes: %w", err)
	}
	sortNewestFirst(all)

	total := len(all)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Notes:      all[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single note by ID.
func (s *Service) Get(ctx context.Context, id string) (note.Note, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new note from the payload.
func (s *Service) Create(ctx context.Context, in note.Input) (note.Note, error) {
	n, err := note.New(s.newID(), in, s.now())
	if err != nil {
		return note.Note{}, err
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return note.Note{}, fmt.Errorf("store note: %w", err)
	}
	s.log.Info("note created", zap.String("id", n.ID()))
	return n, nil
}

// Update merges the payload into an existing note. The feature cache entry
// is dropped so the next search recomputes from fresh content.
func (s *Service) Update(ctx context.Context, id string, in note.Input) (note.Note, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return note.Note{}, err
	}
	updated, err := current.Apply(in, s.now())
	if err != nil {
		return note.Note{}, err
	}
	if err := s.repo.Put(ctx, updated); err != nil {
		return note.Note{}, fmt.Errorf("store note: %w", err)
	}
	s.cache.Invalidate(id)
	s.log.Info("note updated", zap.String("id", id))
	return updated, nil
}

// Delete removes a note and returns the deleted snapshot.
func (s *Service) Delete(ctx context.Context, id string) (note.Note, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return note.Note{}, err
	}
	s.cache.Invalidate(id)
	s.log.Info("note deleted", zap.String("id", id))
	return deleted, nil
}

// ReplaceAll swaps the whole corpus for the given payloads and resets the
// feature cache. Used by bulk imports and demo seeding.
func (s *Service) ReplaceAll(ctx context.Context, inputs []note.Input) ([]note.Note, error) {
	now := s.now()
	replacement := make([]note.Note, 0, len(inputs))
	for i, in := range inputs {
		n, err := note.New(s.newID(), in, now)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		replacement = append(replacement, n)
	}
	if err := s.repo.ReplaceAll(ctx, replacement); err != nil {
		return nil, fmt.Errorf("replace notes: %w", err)
	}
	s.cache.InvalidateAll()
	s.log.Info("note corpus replaced", zap.Int("count", len(replacement)))
	return replacement, nil
}

// Search runs a fielded filter over the corpus, newest meetings first.
func (s *Service) Search(ctx context.Context, f Filter) ([]note.Note, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	matched := all[:0:0]
	for _, n := range all {
		if matchesFilter(&n, f) {
			matched = append(matched, n)
		}
	}
	sortNewestFirst(matched)
	return matched, nil
}

func matchesFilter(n *note.Note, f Filter) bool {
	req := n.Requirements()
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(n.ClientName()), q) &&
			!strings.Contains(strings.ToLower(n.Body()), q) {
			return false
		}
	}
	if f.MeetingType != "" && n.MeetingType() != f.MeetingType {
		return false
	}
	if f.Timeline != "" && n.Timeline() != f.Timeline {
		return false
	}
	if f.ClientName != "" &&
		!strings.Contains(strings.ToLower(n.ClientName()), strings.ToLower(f.ClientName)) {
		return false
	}
	if f.PropertyType != "" && req.PropertyType != f.PropertyType {
		return false
	}
	if f.MinBedrooms > 0 && req.Bedrooms < f.MinBedrooms {
		return false
	}
	if f.MaxPrice > 0 && (req.MaxPrice == 0 || req.MaxPrice > f.MaxPrice) {
		return false
	}
	if f.Area != "" && !containsFold(req.PreferredAreas, f.Area) {
		return false
	}
	if f.Tag != "" && !containsFold(n.Tags(), f.Tag) {
		return false
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

func sortNewestFirst(notes []note.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].CreatedAt().Equal(notes[j].CreatedAt()) {
			return notes[i].CreatedAt().After(notes[j].CreatedAt())
		}
		return notes[i].ID() < notes[j].ID()
	})
}
