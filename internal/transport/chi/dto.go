package chi

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/search"
	notesuc "github.com/kailas-cloud/notedex/internal/usecase/notes"
)

// noteRequest is the create/update payload. Absent fields stay untouched
// on update, matching the partial-update contract.
type noteRequest struct {
	ClientName   *string              `json:"clientName"`
	MeetingDate  *time.Time           `json:"meetingDate"`
	ContactInfo  *contactRequest      `json:"contactInfo"`
	MeetingType  *string              `json:"meetingType"`
	Notes        *string              `json:"notes"`
	Requirements *requirementsRequest `json:"requirements"`
	Timeline     *string              `json:"timeline"`
	PreApproved  *bool                `json:"preApproved"`
	FollowUpDate *time.Time           `json:"followUpDate"`
	Tags         *[]string            `json:"tags"`
}

type contactRequest struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type requirementsRequest struct {
	PropertyType   string   `json:"propertyType"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	MinPrice       int      `json:"minPrice"`
	MaxPrice       int      `json:"maxPrice"`
	PreferredAreas []string `json:"preferredAreas"`
	MustHaves      []string `json:"mustHaves"`
	NiceToHaves    []string `json:"niceToHaves"`
	DealBreakers   []string `json:"dealBreakers"`
}

var (
	knownMeetingTypes = map[note.MeetingType]bool{
		note.InitialConsultation: true,
		note.FollowUp:            true,
		note.PropertyTour:        true,
		note.OfferDiscussion:     true,
	}
	knownTimelines = map[note.Timeline]bool{
		note.TimelineASAP:       true,
		note.TimelineOneToThree: true,
		note.TimelineThreeToSix: true,
		note.TimelineSixPlus:    true,
	}
	knownPropertyTypes = map[note.PropertyType]bool{
		note.SingleFamily: true,
		note.Condo:        true,
		note.Townhouse:    true,
		note.MultiFamily:  true,
	}
)

// toInput validates enum fields and converts the payload to a domain Input.
func (r *noteRequest) toInput() (note.Input, error) {
	in := note.Input{
		ClientName:   r.ClientName,
		MeetingDate:  r.MeetingDate,
		Body:         r.Notes,
		PreApproved:  r.PreApproved,
		FollowUpDate: r.FollowUpDate,
		Tags:         r.Tags,
	}

	if r.ContactInfo != nil {
		in.Contact = &note.ContactInfo{Phone: r.ContactInfo.Phone, Email: r.ContactInfo.Email}
	}
	if r.MeetingType != nil {
		mt := note.MeetingType(*r.MeetingType)
		if !knownMeetingTypes[mt] {
			return note.Input{}, fmt.Errorf("%w: unknown meeting type %q", domain.ErrInvalidInput, *r.MeetingType)
		}
		in.MeetingType = &mt
	}
	if r.Timeline != nil {
		tl := note.Timeline(*r.Timeline)
		if !knownTimelines[tl] {
			return note.Input{}, fmt.Errorf("%w: unknown timeline %q", domain.ErrInvalidInput, *r.Timeline)
		}
		in.Timeline = &tl
	}
	if r.Requirements != nil {
		req := note.Requirements{
			PropertyType:   note.PropertyType(r.Requirements.PropertyType),
			Bedrooms:       r.Requirements.Bedrooms,
			Bathrooms:      r.Requirements.Bathrooms,
			MinPrice:       r.Requirements.MinPrice,
			MaxPrice:       r.Requirements.MaxPrice,
			PreferredAreas: r.Requirements.PreferredAreas,
			MustHaves:      r.Requirements.MustHaves,
			NiceToHaves:    r.Requirements.NiceToHaves,
			DealBreakers:   r.Requirements.DealBreakers,
		}
		if req.PropertyType != "" && !knownPropertyTypes[req.PropertyType] {
			return note.Input{}, fmt.Errorf("%w: unknown property type %q",
				domain.ErrInvalidInput, r.Requirements.PropertyType)
		}
		in.Requirements = &req
	}
	return in, nil
}

// noteResponse is the wire shape of a note.
type noteResponse struct {
	ID           string               `json:"id"`
	ClientName   string               `json:"clientName"`
	MeetingDate  time.Time            `json:"meetingDate"`
	ContactInfo  contactRequest       `json:"contactInfo"`
	MeetingType  string               `json:"meetingType"`
	Notes        string               `json:"notes"`
	Requirements requirementsResponse `json:"requirements"`
	Timeline     string               `json:"timeline"`
	PreApproved  bool                 `json:"preApproved"`
	FollowUpDate *time.Time           `json:"followUpDate,omitempty"`
	Tags         []string             `json:"tags"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type requirementsResponse struct {
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

func noteToResponse(n *note.Note) noteResponse {
	req := n.Requirements()
	resp := noteResponse{
		ID:          n.ID(),
		ClientName:  n.ClientName(),
		MeetingDate: n.MeetingDate(),
		ContactInfo: contactRequest{Phone: n.Contact().Phone, Email: n.Contact().Email},
		MeetingType: string(n.MeetingType()),
		Notes:       n.Body(),
		Requirements: requirementsResponse{
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
		resp.FollowUpDate = &fu
	}
	return resp
}

func notesToResponse(notes []note.Note) []noteResponse {
	out := make([]noteResponse, len(notes))
	for i := range notes {
		out[i] = noteToResponse(&notes[i])
	}
	return out
}

// pageResponse is one page of the note list.
type pageResponse struct {
	Notes      []noteResponse `json:"notes"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

func pageToResponse(p notesuc.Page) pageResponse {
	return pageResponse{
		Notes:      notesToResponse(p.Notes),
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// searchRequest is the natural-language search payload.
type searchRequest struct {
	Query string `json:"query"`
}

// searchResponse is the ranked search result envelope.
type searchResponse struct {
	Query          string             `json:"query"`
	Results        []searchResultItem `json:"results"`
	Total          int                `json:"total"`
	SearchApproach string             `json:"searchApproach"`
}

type searchResultItem struct {
	Note         noteResponse `json:"note"`
	Score        float64      `json:"score"`
	MatchReasons []string     `json:"matchReasons"`
}

func searchToResponse(resp *search.Response) searchResponse {
	items := make([]searchResultItem, len(resp.Results()))
	for i := range resp.Results() {
		r := resp.Results()[i]
		n := r.Note()
		items[i] = searchResultItem{
			Note:         noteToResponse(&n),
			Score:        r.Score(),
			MatchReasons: r.Reasons(),
		}
	}
	return searchResponse{
		Query:          resp.Query(),
		Results:        items,
		Total:          resp.Total(),
		SearchApproach: resp.Approach(),
	}
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
