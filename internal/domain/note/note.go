// Package note holds the meeting-note aggregate.
package note

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
)

// PropertyType is the controlled set of property types.
type PropertyType string

// Known property types.
const (
	SingleFamily PropertyType = "Single Family"
	Condo        PropertyType = "Condo"
	Townhouse    PropertyType = "Townhouse"
	MultiFamily  PropertyType = "Multi-family"
)

// Timeline is the purchase timeline descriptor.
type Timeline string

// Known timelines.
const (
	TimelineASAP        Timeline = "ASAP"
	TimelineOneToThree  Timeline = "1-3 months"
	TimelineThreeToSix  Timeline = "3-6 months"
	TimelineSixPlus     Timeline = "6+ months"
	DefaultTimeline              = TimelineThreeToSix
)

// Urgent reports whether the timeline means an immediate purchase intent.
func (t Timeline) Urgent() bool { return t == TimelineASAP }

// MeetingType is the kind of client meeting.
type MeetingType string

// Known meeting types.
const (
	InitialConsultation MeetingType = "Initial Consultation"
	FollowUp            MeetingType = "Follow-up"
	PropertyTour        MeetingType = "Property Tour"
	OfferDiscussion     MeetingType = "Offer Discussion"
	DefaultMeetingType              = InitialConsultation
)

// ContactInfo holds optional client contact details.
type ContactInfo struct {
	Phone string
	Email string
}

// Requirements is the structured property wish list captured during a meeting.
// Zero values mean "not specified".
type Requirements struct {
	PropertyType   PropertyType
	Bedrooms       int
	Bathrooms      int
	MinPrice       int
	MaxPrice       int
	PreferredAreas []string
	MustHaves      []string
	NiceToHaves    []string
	DealBreakers   []string
}

// Validate checks requirement invariants.
func (r Requirements) Validate() error {
	if r.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms must be >= 0", domain.ErrInvalidInput)
	}
	if r.Bathrooms < 0 {
		return fmt.Errorf("%w: bathrooms must be >= 0", domain.ErrInvalidInput)
	}
	if r.MinPrice < 0 || r.MaxPrice < 0 {
		return fmt.Errorf("%w: prices must be >= 0", domain.ErrInvalidInput)
	}
	if r.MaxPrice > 0 && r.MinPrice > r.MaxPrice {
		return fmt.Errorf("%w: min price %d exceeds max price %d", domain.ErrInvalidInput, r.MinPrice, r.MaxPrice)
	}
	return nil
}

func (r Requirements) clone() Requirements {
	r.PreferredAreas = cloneStrings(r.PreferredAreas)
	r.MustHaves = cloneStrings(r.MustHaves)
	r.NiceToHaves = cloneStrings(r.NiceToHaves)
	r.DealBreakers = cloneStrings(r.DealBreakers)
	return r
}

// Note is the meeting-note aggregate (immutable value object).
// The repository owns the canonical copy; search reads snapshots.
type Note struct {
	id           string
	clientName   string
	meetingDate  time.Time
	contact      ContactInfo
	meetingType  MeetingType
	body         string
	requirements Requirements
	timeline     Timeline
	preApproved  bool
	followUpDate time.Time
	tags         []string
	createdAt    time.Time
	updatedAt    time.Time
}

// New validates an Input and creates a Note with both timestamps set to now.
func New(id string, in Input, now time.Time) (Note, error) {
	if id == "" {
		return Note{}, fmt.Errorf("%w: note ID is required", domain.ErrInvalidInput)
	}
	if in.ClientName == nil || *in.ClientName == "" {
		return Note{}, fmt.Errorf("%w: client name is required", domain.ErrInvalidInput)
	}
	if in.MeetingDate == nil || in.MeetingDate.IsZero() {
		return Note{}, fmt.Errorf("%w: meeting date is required", domain.ErrInvalidInput)
	}
	if in.Body == nil || *in.Body == "" {
		return Note{}, fmt.Errorf("%w: notes body is required", domain.ErrInvalidInput)
	}

	n := Note{
		id:          id,
		clientName:  *in.ClientName,
		meetingDate: *in.MeetingDate,
		meetingType: DefaultMeetingType,
		body:        *in.Body,
		timeline:    DefaultTimeline,
		createdAt:   now,
		updatedAt:   now,
	}
	if err := n.merge(in); err != nil {
		return Note{}, err
	}
	return n, nil
}

// Apply merges an Input into a copy of the note and refreshes updatedAt.
// The identifier and createdAt are preserved.
func (n Note) Apply(in Input, now time.Time) (Note, error) {
	if in.ClientName != nil && *in.ClientName == "" {
		return Note{}, fmt.Errorf("%w: client name cannot be empty", domain.ErrInvalidInput)
	}
	if in.MeetingDate != nil && in.MeetingDate.IsZero() {
		return Note{}, fmt.Errorf("%w: meeting date cannot be empty", domain.ErrInvalidInput)
	}
	if in.Body != nil && *in.Body == "" {
		return Note{}, fmt.Errorf("%w: notes body cannot be empty", domain.ErrInvalidInput)
	}

	if in.ClientName != nil {
		n.clientName = *in.ClientName
	}
	if in.MeetingDate != nil {
		n.meetingDate = *in.MeetingDate
	}
	if in.Body != nil {
		n.body = *in.Body
	}
	if err := n.merge(in); err != nil {
		return Note{}, err
	}
	n.updatedAt = now
	return n, nil
}

// merge applies the optional (non-required) Input fields.
func (n *Note) merge(in Input) error {
	if in.Contact != nil {
		n.contact = *in.Contact
	}
	if in.MeetingType != nil {
		n.meetingType = *in.MeetingType
	}
	if in.Requirements != nil {
		if err := in.Requirements.Validate(); err != nil {
			return err
		}
		n.requirements = in.Requirements.clone()
	}
	if in.Timeline != nil {
		n.timeline = *in.Timeline
	}
	if in.PreApproved != nil {
		n.preApproved = *in.PreApproved
	}
	if in.FollowUpDate != nil {
		n.followUpDate = *in.FollowUpDate
	}
	if in.Tags != nil {
		n.tags = cloneStrings(*in.Tags)
	}
	return nil
}

// Reconstruct creates a Note without validation (storage hydration).
func Reconstruct(
	id, clientName string, meetingDate time.Time, contact ContactInfo,
	meetingType MeetingType, body string, requirements Requirements,
	timeline Timeline, preApproved bool, followUpDate time.Time,
	tags []string, createdAt, updatedAt time.Time,
) Note {
	return Note{
		id:           id,
		clientName:   clientName,
		meetingDate:  meetingDate,
		contact:      contact,
		meetingType:  meetingType,
		body:         body,
		requirements: requirements,
		timeline:     timeline,
		preApproved:  preApproved,
		followUpDate: followUpDate,
		tags:         tags,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the note identifier.
func (n Note) ID() string { return n.id }

// ClientName returns the client name.
func (n Note) ClientName() string { return n.clientName }

// MeetingDate returns when the meeting took place.
func (n Note) MeetingDate() time.Time { return n.meetingDate }

// Contact returns the client contact details.
func (n Note) Contact() ContactInfo { return n.contact }

// MeetingType returns the kind of meeting.
func (n Note) MeetingType() MeetingType { return n.meetingType }

// Body returns the free-text notes body.
func (n Note) Body() string { return n.body }

// Requirements returns the structured property requirements.
func (n Note) Requirements() Requirements { return n.requirements }

// Timeline returns the purchase timeline.
func (n Note) Timeline() Timeline { return n.timeline }

// PreApproved reports whether the client has mortgage pre-approval.
func (n Note) PreApproved() bool { return n.preApproved }

// FollowUpDate returns the scheduled follow-up, zero if none.
func (n Note) FollowUpDate() time.Time { return n.followUpDate }

// Tags returns the free-form labels on the note.
func (n Note) Tags() []string { return n.tags }

// CreatedAt returns the creation timestamp.
func (n Note) CreatedAt() time.Time { return n.createdAt }

// UpdatedAt returns the last update timestamp.
func (n Note) UpdatedAt() time.Time { return n.updatedAt }

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
