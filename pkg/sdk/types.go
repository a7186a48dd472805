package notedex

import (
	"time"

	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/search"
)

// ContactInfo holds optional client contact details.
type ContactInfo struct {
	Phone string
	Email string
}

// Requirements is the structured property wish list. Zero values mean
// "not specified".
type Requirements struct {
	PropertyType   string
	Bedrooms       int
	Bathrooms      int
	MinPrice       int
	MaxPrice       int
	PreferredAreas []string
	MustHaves      []string
	NiceToHaves    []string
	DealBreakers   []string
}

// Note is a stored meeting note.
type Note struct {
	ID           string
	ClientName   string
	MeetingDate  time.Time
	Contact      ContactInfo
	MeetingType  string
	Notes        string
	Requirements Requirements
	Timeline     string
	PreApproved  bool
	FollowUpDate time.Time
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NoteInput is the create/update payload. On update, zero-valued fields
// are left untouched; pointer fields distinguish "absent" from "clear".
type NoteInput struct {
	ClientName   string
	MeetingDate  time.Time
	Contact      *ContactInfo
	MeetingType  string
	Notes        string
	Requirements *Requirements
	Timeline     string
	PreApproved  *bool
	FollowUpDate *time.Time
	Tags         []string
}

// SearchResult is one ranked hit.
type SearchResult struct {
	Note         Note
	Score        float64
	MatchReasons []string
}

// SearchResponse is the ranked answer to a natural-language query.
type SearchResponse struct {
	Query    string
	Results  []SearchResult
	Total    int
	Approach string
}

// ListPage is one page of the note list.
type ListPage struct {
	Notes      []Note
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// Filter holds fielded-search parameters. Zero values mean "any".
type Filter struct {
	Query        string
	ClientName   string
	MeetingType  string
	Timeline     string
	PropertyType string
	MinBedrooms  int
	MaxPrice     int
	Area         string
	Tag          string
}

func noteFromDomain(n *note.Note) Note {
	req := n.Requirements()
	return Note{
		ID:          n.ID(),
		ClientName:  n.ClientName(),
		MeetingDate: n.MeetingDate(),
		Contact:     ContactInfo{Phone: n.Contact().Phone, Email: n.Contact().Email},
		MeetingType: string(n.MeetingType()),
		Notes:       n.Body(),
		Requirements: Requirements{
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
		Timeline:     string(n.Timeline()),
		PreApproved:  n.PreApproved(),
		FollowUpDate: n.FollowUpDate(),
		Tags:         n.Tags(),
		CreatedAt:    n.CreatedAt(),
		UpdatedAt:    n.UpdatedAt(),
	}
}

func notesFromDomain(src []note.Note) []Note {
	out := make([]Note, len(src))
	for i := range src {
		out[i] = noteFromDomain(&src[i])
	}
	return out
}

func (in NoteInput) toDomain() note.Input {
	var d note.Input
	if in.ClientName != "" {
		d.ClientName = &in.ClientName
	}
	if !in.MeetingDate.IsZero() {
		d.MeetingDate = &in.MeetingDate
	}
	if in.Contact != nil {
		d.Contact = &note.ContactInfo{Phone: in.Contact.Phone, Email: in.Contact.Email}
	}
	if in.MeetingType != "" {
		mt := note.MeetingType(in.MeetingType)
		d.MeetingType = &mt
	}
	if in.Notes != "" {
		d.Body = &in.Notes
	}
	if in.Requirements != nil {
		req := note.Requirements{
			PropertyType:   note.PropertyType(in.Requirements.PropertyType),
			Bedrooms:       in.Requirements.Bedrooms,
			Bathrooms:      in.Requirements.Bathrooms,
			MinPrice:       in.Requirements.MinPrice,
			MaxPrice:       in.Requirements.MaxPrice,
			PreferredAreas: in.Requirements.PreferredAreas,
			MustHaves:      in.Requirements.MustHaves,
			NiceToHaves:    in.Requirements.NiceToHaves,
			DealBreakers:   in.Requirements.DealBreakers,
		}
		d.Requirements = &req
	}
	if in.Timeline != "" {
		tl := note.Timeline(in.Timeline)
		d.Timeline = &tl
	}
	d.PreApproved = in.PreApproved
	d.FollowUpDate = in.FollowUpDate
	if in.Tags != nil {
		tags := in.Tags
		d.Tags = &tags
	}
	return d
}

func searchFromDomain(resp *search.Response) SearchResponse {
	results := make([]SearchResult, len(resp.Results()))
	for i := range resp.Results() {
		r := resp.Results()[i]
		n := r.Note()
		results[i] = SearchResult{
			Note:         noteFromDomain(&n),
			Score:        r.Score(),
			MatchReasons: r.Reasons(),
		}
	}
	return SearchResponse{
		Query:    resp.Query(),
		Results:  results,
		Total:    resp.Total(),
		Approach: resp.Approach(),
	}
}
