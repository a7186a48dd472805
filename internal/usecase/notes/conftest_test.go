package notes

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/db/memory"
	"github.com/kailas-cloud/notedex/internal/domain/note"
	notesrepo "github.com/kailas-cloud/notedex/internal/repository/notes"
)

type spyCache struct {
	invalidated    []string
	invalidatedAll int
}

func (c *spyCache) Invalidate(id string) { c.invalidated = append(c.invalidated, id) }
func (c *spyCache) InvalidateAll()       { c.invalidatedAll++ }

type fixture struct {
	svc   *Service
	cache *spyCache
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cache: &spyCache{},
		clock: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	repo := notesrepo.New(memory.NewStore(), "notedex:")
	f.svc = New(zap.NewNop(), repo, f.cache, 20, 100)
	f.svc.now = func() time.Time { return f.clock }

	seq := 0
	f.svc.newID = func() string {
		seq++
		return fmt.Sprintf("note-%03d", seq)
	}
	return f
}

func basicInput(client string) note.Input {
	return note.Input{
		ClientName:  note.String(client),
		MeetingDate: note.Time(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		Body:        note.String("looking to buy this spring"),
	}
}
