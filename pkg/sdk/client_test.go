package notedex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
)

func newMemoryClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), WithMemory())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func sampleInput(client string) NoteInput {
	return NoteInput{
		ClientName:  client,
		MeetingDate: time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC),
		Notes:       "wants a starter home before the school year",
	}
}

func TestClientCRUD(t *testing.T) {
	client := newMemoryClient(t)
	ctx := context.Background()

	in := sampleInput("Jordan Reyes")
	in.Requirements = &Requirements{
		PropertyType: "Condo",
		Bedrooms:     2,
		MaxPrice:     400000,
	}
	created, err := client.CreateNote(ctx, in)
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no ID assigned")
	}
	if created.MeetingType != "Initial Consultation" || created.Timeline != "3-6 months" {
		t.Errorf("defaults = %q / %q", created.MeetingType, created.Timeline)
	}

	got, err := client.GetNote(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.Requirements.PropertyType != "Condo" || got.Requirements.MaxPrice != 400000 {
		t.Errorf("requirements = %+v", got.Requirements)
	}

	yes := true
	updated, err := client.UpdateNote(ctx, created.ID, NoteInput{PreApproved: &yes})
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if !updated.PreApproved || updated.ClientName != "Jordan Reyes" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := client.DeleteNote(ctx, created.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := client.GetNote(ctx, created.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Errorf("err after delete = %v", err)
	}
}

func TestClientListAndReplace(t *testing.T) {
	client := newMemoryClient(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, err := client.CreateNote(ctx, sampleInput("Client "+name)); err != nil {
			t.Fatalf("CreateNote: %v", err)
		}
	}

	page, err := client.ListNotes(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if page.Total != 3 || len(page.Notes) != 2 || page.TotalPages != 2 {
		t.Errorf("page = %+v", page)
	}

	replaced, err := client.ReplaceNotes(ctx, []NoteInput{sampleInput("Only One")})
	if err != nil {
		t.Fatalf("ReplaceNotes: %v", err)
	}
	if len(replaced) != 1 {
		t.Errorf("replaced = %d", len(replaced))
	}

	page, err = client.ListNotes(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if page.Total != 1 || page.Notes[0].ClientName != "Only One" {
		t.Errorf("after replace = %+v", page)
	}
}

func TestClientSearch(t *testing.T) {
	client := newMemoryClient(t)
	ctx := context.Background()

	fit := sampleInput("Dana Fit")
	fit.Requirements = &Requirements{Bedrooms: 3, Bathrooms: 2, MinPrice: 350000, MaxPrice: 450000}
	if _, err := client.CreateNote(ctx, fit); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	pricey := sampleInput("Pat Pricey")
	pricey.Requirements = &Requirements{Bedrooms: 3, Bathrooms: 2, MinPrice: 700000, MaxPrice: 900000}
	if _, err := client.CreateNote(ctx, pricey); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	resp, err := client.Search(ctx, "3 bed 2 bath under 500k")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Approach != "rules" {
		t.Errorf("approach = %q", resp.Approach)
	}
	if len(resp.Results) != 1 || resp.Results[0].Note.ClientName != "Dana Fit" {
		t.Fatalf("results = %+v", resp.Results)
	}

	if _, err := client.Search(ctx, "  "); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("empty query err = %v", err)
	}
}

func TestClientFilterNotes(t *testing.T) {
	client := newMemoryClient(t)
	ctx := context.Background()

	condo := sampleInput("Avery Chen")
	condo.Requirements = &Requirements{PropertyType: "Condo", PreferredAreas: []string{"Downtown"}}
	if _, err := client.CreateNote(ctx, condo); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	house := sampleInput("Blake Smith")
	house.Requirements = &Requirements{PropertyType: "Single Family"}
	if _, err := client.CreateNote(ctx, house); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	matched, err := client.FilterNotes(ctx, Filter{Area: "downtown"})
	if err != nil {
		t.Fatalf("FilterNotes: %v", err)
	}
	if len(matched) != 1 || matched[0].ClientName != "Avery Chen" {
		t.Errorf("matched = %+v", matched)
	}
}

func TestClientUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), func(c *clientConfig) { c.driver = "etched-stone" })
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
