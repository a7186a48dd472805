package notes

import (
	"testing"
	"time"

	"github.com/kailas-cloud/notedex/internal/db/memory"
	"github.com/kailas-cloud/notedex/internal/domain/note"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	return New(memory.NewStore(), "notedex:")
}

func makeNote(t *testing.T, id, client string) note.Note {
	t.Helper()
	n, err := note.New(id, note.Input{
		ClientName:  note.String(client),
		MeetingDate: note.Time(time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)),
		Body:        note.String("Meeting notes for " + client),
	}, time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("note.New: %v", err)
	}
	return n
}
