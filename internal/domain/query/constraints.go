// Package query holds the structured constraints derived from a search query.
package query

import "github.com/kailas-cloud/notedex/internal/domain/note"

// Bound describes how a count constraint compares against a note's value.
type Bound int

// Count comparison modes.
const (
	BoundExact Bound = iota
	BoundAtLeast
	BoundAtMost
)

// Count is a bedroom or bathroom constraint.
type Count struct {
	Value int
	Bound Bound
}

// Matches reports whether a note's count satisfies the constraint.
func (c Count) Matches(actual int) bool {
	switch c.Bound {
	case BoundAtLeast:
		return actual >= c.Value
	case BoundAtMost:
		return actual <= c.Value
	default:
		return actual == c.Value
	}
}

// Constraints is the structured side of a parsed query. Every field is
// optional; a nil pointer or empty slice means "unconstrained", never "zero".
type Constraints struct {
	PriceMin     *int
	PriceMax     *int
	Bedrooms     *Count
	Bathrooms    *Count
	PropertyType *note.PropertyType
	Locations    []string
	Features     []string // requested property features ("pool", "garage")
	PreApproved  *bool
	Urgent       *bool
}

// IsEmpty reports whether no constraint was extracted.
func (c Constraints) IsEmpty() bool {
	return c.PriceMin == nil && c.PriceMax == nil &&
		c.Bedrooms == nil && c.Bathrooms == nil &&
		c.PropertyType == nil && len(c.Locations) == 0 &&
		len(c.Features) == 0 &&
		c.PreApproved == nil && c.Urgent == nil
}

// HasHardFilters reports whether any eliminating constraint is present.
// Locations, pre-approval and urgency only influence ranking.
func (c Constraints) HasHardFilters() bool {
	return c.PriceMin != nil || c.PriceMax != nil ||
		c.Bedrooms != nil || c.Bathrooms != nil || c.PropertyType != nil
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }
