package query

import (
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain/note"
)

// FactSheet is a note's structured facts in the same shape the query
// constraints take. It is built from the note's Requirements only, never
// re-parsed from free text, so body edits cannot change hard-filter
// outcomes.
type FactSheet struct {
	PropertyType note.PropertyType
	Bedrooms     int
	Bathrooms    int
	MinPrice     int
	MaxPrice     int
	Areas        []string // lowercased preferred areas
	MustHaves    []string // lowercased
	NiceToHaves  []string // lowercased
	PreApproved  bool
	Urgent       bool
}

// FactsOf derives the fact sheet for a note.
func FactsOf(n *note.Note) FactSheet {
	req := n.Requirements()
	return FactSheet{
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Areas:        lowerAll(req.PreferredAreas),
		MustHaves:    lowerAll(req.MustHaves),
		NiceToHaves:  lowerAll(req.NiceToHaves),
		PreApproved:  n.PreApproved(),
		Urgent:       n.Timeline().Urgent(),
	}
}

func lowerAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
