package notes

import (
	"time"

	"github.com/kailas-cloud/notedex/internal/domain/note"
)

// noteDTO is the persisted JSON shape of a note.
type noteDTO struct {
	ID           string          `json:"id"`
	ClientName   string          `json:"clientName"`
	MeetingDate  time.Time       `json:"meetingDate"`
	Contact      contactDTO      `json:"contactInfo"`
	MeetingType  string          `json:"meetingType"`
	Notes        string          `json:"notes"`
	Requirements requirementsDTO `json:"requirements"`
	Timeline     string          `json:"timeline"`
	PreApproved  bool            `json:"preApproved"`
	FollowUpDate *time.Time      `json:"followUpDate,omitempty"`
	Tags         []string        `json:"tags"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type contactDTO struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type requirementsDTO struct {
	PropertyType   string   `json:"propertyType,omitempty"`
	Bedrooms       int      `json:"bedrooms,omitempty"`
	Bathrooms      int      `json:"bathrooms,omitempty"`
	MinPrice       int      `json:"minPrice,omitempty"`
	MaxPrice       int      `json:"maxPrice,omitempty"`
	PreferredAreas []string `json:"preferredAreas,omitempty"`
	MustHaves      []string `json:"mustHaves,omitempty"`
	NiceToHaves    []string `json:"niceToHaves,omitempty"`
	DealBreakers   []string `json:"dealBreakers,omitempty"`
}

func toDTO(n *note.Note) noteDTO {
	req := n.Requirements()
	dto := noteDTO{
		ID:          n.ID(),
		ClientName:  n.ClientName(),
		MeetingDate: n.MeetingDate(),
		Contact:     contactDTO{Phone: n.Contact().Phone, Email: n.Contact().Email},
		MeetingType: string(n.MeetingType()),
		Notes:       n.Body(),
		Requirements: requirementsDTO{
			PropertyType:   string(req.PropertyType),
			Bedrooms:       req.Bedrooms,
			Bathrooms:      req.Bathrooms,
			MinPrice:       req.MinPrice,
			MaxPrice:       req.MaxPrice,
			PreferredAreas: req.PreferredAreas,
			MustHaves:      req.MustHaves,
			NiceToHaves:    req.NiceToHaves,
			DealBreakers:   req.DealBreakers,
		},
		Timeline:    string(n.Timeline()),
		PreApproved: n.PreApproved(),
		Tags:        n.Tags(),
		CreatedAt:   n.CreatedAt(),
		UpdatedAt:   n.UpdatedAt(),
	}
	if fu := n.FollowUpDate(); !fu.IsZero() {
		dto.FollowUpDate = &fu
	}
	return dto
}

func fromDTO(dto noteDTO) note.Note {
	var followUp time.Time
	if dto.FollowUpDate != nil {
		followUp = *dto.FollowUpDate
	}
	return note.Reconstruct(
		dto.ID,
		dto.ClientName,
		dto.MeetingDate,
		note.ContactInfo{Phone: dto.Contact.Phone, Email: dto.Contact.Email},
		note.MeetingType(dto.MeetingType),
		dto.Notes,
		note.Requirements{
			PropertyType:   note.PropertyType(dto.Requirements.PropertyType),
			Bedrooms:       dto.Requirements.Bedrooms,
			Bathrooms:      dto.Requirements.Bathrooms,
			MinPrice:       dto.Requirements.MinPrice,
			MaxPrice:       dto.Requirements.MaxPrice,
			PreferredAreas: dto.Requirements.PreferredAreas,
			MustHaves:      dto.Requirements.MustHaves,
			NiceToHaves:    dto.Requirements.NiceToHaves,
			DealBreakers:   dto.Requirements.DealBreakers,
		},
		note.Timeline(dto.Timeline),
		dto.PreApproved,
		followUp,
		dto.Tags,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
