package note

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validInput() Input {
	return Input{
		ClientName:  String("Sarah Chen"),
		MeetingDate: Time(time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)),
		Body:        String("Looking for a starter home near good schools."),
	}
}

func TestNew_Valid(t *testing.T) {
	n, err := New("note-1", validInput(), testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if n.ID() != "note-1" {
		t.Errorf("id: got %q", n.ID())
	}
	if n.MeetingType() != InitialConsultation {
		t.Errorf("expected default meeting type, got %q", n.MeetingType())
	}
	if n.Timeline() != TimelineThreeToSix {
		t.Errorf("expected default timeline, got %q", n.Timeline())
	}
	if !n.CreatedAt().Equal(testNow) || !n.UpdatedAt().Equal(testNow) {
		t.Errorf("timestamps not set to now: %v / %v", n.CreatedAt(), n.UpdatedAt())
	}
}

func TestGettersOnUnaddressableValue(t *testing.T) {
	mk := func() Note {
		n, err := New("note-2", validInput(), testNow)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return n
	}
	if mk().ID() != "note-2" {
		t.Errorf("id: got %q", mk().ID())
	}
	if mk().ClientName() != "Sarah Chen" {
		t.Errorf("client: got %q", mk().ClientName())
	}
}

func TestNew_MissingRequired(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"no client name", func(in *Input) { in.ClientName = nil }},
		{"empty client name", func(in *Input) { in.ClientName = String("") }},
		{"no meeting date", func(in *Input) { in.MeetingDate = nil }},
		{"no body", func(in *Input) { in.Body = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := New("note-1", in, testNow); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestNew_InvalidRequirements(t *testing.T) {
	in := validInput()
	in.Requirements = &Requirements{MinPrice: 500_000, MaxPrice: 300_000}

	if _, err := New("note-1", in, testNow); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted price range, got %v", err)
	}

	in.Requirements = &Requirements{Bedrooms: -1}
	if _, err := New("note-1", in, testNow); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative bedrooms, got %v", err)
	}
}

func TestApply_MergesOnlyProvidedFields(t *testing.T) {
	n, err := New("note-1", validInput(), testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	later := testNow.Add(time.Hour)
	updated, err := n.Apply(Input{
		Body:        String("Now wants a condo downtown."),
		PreApproved: Bool(true),
	}, later)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if updated.ClientName() != "Sarah Chen" {
		t.Errorf("client name changed unexpectedly: %q", updated.ClientName())
	}
	if updated.Body() != "Now wants a condo downtown." {
		t.Errorf("body not updated: %q", updated.Body())
	}
	if !updated.PreApproved() {
		t.Error("preApproved not updated")
	}
	if updated.ID() != n.ID() {
		t.Errorf("id changed: %q", updated.ID())
	}
	if !updated.CreatedAt().Equal(n.CreatedAt()) {
		t.Error("createdAt changed on update")
	}
	if !updated.UpdatedAt().Equal(later) {
		t.Errorf("updatedAt not refreshed: %v", updated.UpdatedAt())
	}

	// Original is untouched (value semantics).
	if n.PreApproved() {
		t.Error("original note mutated by Apply")
	}
}

func TestApply_RejectsEmptyRequired(t *testing.T) {
	n, err := New("note-1", validInput(), testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := n.Apply(Input{ClientName: String("")}, testNow); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRequirements_CloneOnConstruct(t *testing.T) {
	areas := []string{"Westside"}
	in := validInput()
	in.Requirements = &Requirements{PreferredAreas: areas}

	n, err := New("note-1", in, testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	areas[0] = "Downtown"
	if n.Requirements().PreferredAreas[0] != "Westside" {
		t.Error("requirements share backing array with input")
	}
}

func TestTimeline_Urgent(t *testing.T) {
	if !TimelineASAP.Urgent() {
		t.Error("ASAP should be urgent")
	}
	if TimelineSixPlus.Urgent() {
		t.Error("6+ months should not be urgent")
	}
}
