package notedex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/db"
	dbMemory "github.com/kailas-cloud/notedex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/notedex/internal/db/redis"
	"github.com/kailas-cloud/notedex/internal/domain/note"
	domsearch "github.com/kailas-cloud/notedex/internal/domain/search"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
	"github.com/kailas-cloud/notedex/internal/repository/features"
	notesrepo "github.com/kailas-cloud/notedex/internal/repository/notes"
	openaiSim "github.com/kailas-cloud/notedex/internal/transport/openai"
	notesuc "github.com/kailas-cloud/notedex/internal/usecase/notes"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Consumer interfaces for substitution in tests.
type notesUseCase interface {
	List(ctx context.Context, page, limit int) (notesuc.Page, error)
	Get(ctx context.Context, id string) (note.Note, error)
	Create(ctx context.Context, in note.Input) (note.Note, error)
	Update(ctx context.Context, id string, in note.Input) (note.Note, error)
	Delete(ctx context.Context, id string) (note.Note, error)
	ReplaceAll(ctx context.Context, inputs []note.Input) ([]note.Note, error)
	Search(ctx context.Context, f notesuc.Filter) ([]note.Note, error)
}

type searchUseCase interface {
	Search(ctx context.Context, query string) (domsearch.Response, error)
}

// Client is the notedex SDK entry point.
type Client struct {
	store     db.Store
	notesSvc  notesUseCase
	searchSvc searchUseCase
}

// New creates a Client and connects to the configured store. The context
// bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:          "memory",
		keyPrefix:       "notedex:",
		defaultPageSize: 20,
		maxPageSize:     100,
		semanticTimeout: 5 * time.Second,
		logger:          zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("notedex: store not ready: %w", err)
	}

	var similarity semantic.Similarity
	if cfg.semanticAPIKey != "" {
		similarity = openaiSim.NewScorer(&openaiSim.Config{
			APIKey:  cfg.semanticAPIKey,
			BaseURL: cfg.semanticBaseURL,
			Model:   cfg.semanticModel,
			Timeout: cfg.semanticTimeout,
			Logger:  cfg.logger,
		})
	}
	tagger := semantic.NewTagger(semantic.DefaultVocabulary(), similarity, cfg.logger)

	repo := notesrepo.New(store, cfg.keyPrefix)
	cache := features.New(tagger, nil)

	return &Client{
		store:     store,
		notesSvc:  notesuc.New(cfg.logger, repo, cache, cfg.defaultPageSize, cfg.maxPageSize),
		searchSvc: searchuc.New(cfg.logger, repo, cache, tagger, cfg.resultLimit),
	}, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return dbMemory.NewStore(), nil
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("notedex: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("notedex: unknown driver %q", cfg.driver)
	}
}

// Close releases the store connection.
func (c *Client) Close() {
	c.store.Close()
}

// Ping checks store availability.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// CreateNote stores a new meeting note.
func (c *Client) CreateNote(ctx context.Context, in NoteInput) (Note, error) {
	n, err := c.notesSvc.Create(ctx, in.toDomain())
	if err != nil {
		return Note{}, err
	}
	return noteFromDomain(&n), nil
}

// GetNote fetches a note by ID.
func (c *Client) GetNote(ctx context.Context, id string) (Note, error) {
	n, err := c.notesSvc.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	return noteFromDomain(&n), nil
}

// UpdateNote merges the input into an existing note.
func (c *Client) UpdateNote(ctx context.Context, id string, in NoteInput) (Note, error) {
	n, err := c.notesSvc.Update(ctx, id, in.toDomain())
	if err != nil {
		return Note{}, err
	}
	return noteFromDomain(&n), nil
}

// DeleteNote removes a note and returns the deleted snapshot.
func (c *Client) DeleteNote(ctx context.Context, id string) (Note, error) {
	n, err := c.notesSvc.Delete(ctx, id)
	if err != nil {
		return Note{}, err
	}
	return noteFromDomain(&n), nil
}

// ListNotes returns one page of notes, newest first. page starts at 1;
// limit 0 uses the configured default.
func (c *Client) ListNotes(ctx context.Context, page, limit int) (ListPage, error) {
	p, err := c.notesSvc.List(ctx, page, limit)
	if err != nil {
		return ListPage{}, err
	}
	return ListPage{
		Notes:      notesFromDomain(p.Notes),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}, nil
}

// ReplaceNotes swaps the whole corpus for the given payloads.
func (c *Client) ReplaceNotes(ctx context.Context, inputs []NoteInput) ([]Note, error) {
	domIn := make([]note.Input, len(inputs))
	for i := range inputs {
		domIn[i] = inputs[i].toDomain()
	}
	replaced, err := c.notesSvc.ReplaceAll(ctx, domIn)
	if err != nil {
		return nil, err
	}
	return notesFromDomain(replaced), nil
}

// FilterNotes runs a fielded filter over the corpus.
func (c *Client) FilterNotes(ctx context.Context, f Filter) ([]Note, error) {
	matched, err := c.notesSvc.Search(ctx, notesuc.Filter{
		Query:        f.Query,
		ClientName:   f.ClientName,
		MeetingType:  note.MeetingType(f.MeetingType),
		Timeline:     note.Timeline(f.Timeline),
		PropertyType: note.PropertyType(f.PropertyType),
		MinBedrooms:  f.MinBedrooms,
		MaxPrice:     f.MaxPrice,
		Area:         f.Area,
		Tag:          f.Tag,
	})
	if err != nil {
		return nil, err
	}
	return notesFromDomain(matched), nil
}

// Search answers a natural-language query over the note corpus.
func (c *Client) Search(ctx context.Context, query string) (SearchResponse, error) {
	resp, err := c.searchSvc.Search(ctx, query)
	if err != nil {
		return SearchResponse{}, err
	}
	return searchFromDomain(&resp), nil
}
