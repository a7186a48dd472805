// Package notes persists meeting notes through the db facade.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/notedex/internal/db"
	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/note"
)

// store is the consumer interface for note persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the note repository over a key-value store.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a note repository. keyPrefix namespaces the store keys
// ("notedex:" by default).
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) noteKey(id string) string {
	return r.keyPrefix + "note:" + id
}

func (r *Repo) notePattern() string {
	return r.keyPrefix + "note:*"
}

// List returns a snapshot of the whole corpus.
func (r *Repo) List(ctx context.Context) ([]note.Note, error) {
	keys, err := r.store.Scan(ctx, r.notePattern())
	if err != nil {
		return nil, fmt.Errorf("scan notes: %w", err)
	}

	out := make([]note.Note, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				// Deleted between scan and get; skip.
				continue
			}
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		n, err := unmarshalNote(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Get returns a note by ID.
func (r *Repo) Get(ctx context.Context, id string) (note.Note, error) {
	data, err := r.store.Get(ctx, r.noteKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return note.Note{}, domain.ErrNoteNotFound
		}
		return note.Note{}, fmt.Errorf("get note %s: %w", id, err)
	}
	return unmarshalNote(data)
}

// Put writes a note (create or update).
func (r *Repo) Put(ctx context.Context, n note.Note) error {
	data, err := json.Marshal(toDTO(&n))
	if err != nil {
		return fmt.Errorf("marshal note %s: %w", n.ID(), err)
	}
	if err := r.store.Set(ctx, r.noteKey(n.ID()), data); err != nil {
		return fmt.Errorf("set note %s: %w", n.ID(), err)
	}
	return nil
}

// Delete removes a note and returns the removed snapshot.
func (r *Repo) Delete(ctx context.Context, id string) (note.Note, error) {
	n, err := r.Get(ctx, id)
	if err != nil {
		return note.Note{}, err
	}
	if err := r.store.Del(ctx, r.noteKey(id)); err != nil {
		return note.Note{}, fmt.Errorf("del note %s: %w", id, err)
	}
	return n, nil
}

// ReplaceAll swaps the entire corpus: existing notes are removed, the given
// set is written in their place.
func (r *Repo) ReplaceAll(ctx context.Context, ns []note.Note) error {
	keys, err := r.store.Scan(ctx, r.notePattern())
	if err != nil {
		return fmt.Errorf("scan notes: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del %s: %w", key, err)
		}
	}
	for i := range ns {
		if err := r.Put(ctx, ns[i]); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalNote(data []byte) (note.Note, error) {
	var dto noteDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return note.Note{}, fmt.Errorf("unmarshal note: %w", err)
	}
	return fromDTO(dto), nil
}
