// Package semantic maps free text onto a controlled vocabulary of intent tags.
package semantic

import "strings"

// Facet groups vocabulary tags by the kind of signal they carry.
type Facet string

// Vocabulary facets.
const (
	FacetBuyerType Facet = "buyer_type"
	FacetLifeStage Facet = "life_stage"
	FacetUrgency   Facet = "urgency"
	FacetFinancial Facet = "financial"
)

// Tag is a controlled-vocabulary intent tag.
type Tag string

// Controlled vocabulary tags, version 1.
const (
	TagFirstTimeBuyer   Tag = "first_time_buyer"
	TagInvestor         Tag = "investor"
	TagFamilyWithKids   Tag = "family_with_kids"
	TagExpectingParents Tag = "expecting_parents"
	TagDownsizer        Tag = "downsizer"
	TagRelocating       Tag = "relocating"
	TagUrgent           Tag = "urgent"
	TagCashBuyer        Tag = "cash_buyer"
	TagPreApproved      Tag = "pre_approved"
)

// Entry binds a tag to its facet and curated synonym phrases.
type Entry struct {
	Tag      Tag
	Facet    Facet
	Synonyms []string
}

// Vocabulary is a versioned, fixed set of tags the tagger can assign.
type Vocabulary struct {
	version string
	entries []Entry
}

// NewVocabulary creates a vocabulary from explicit entries.
func NewVocabulary(version string, entries []Entry) Vocabulary {
	return Vocabulary{version: version, entries: entries}
}

// DefaultVocabulary returns the built-in vocabulary. Synonym lists are
// explicit configuration data so tests can assert against a fixed set.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary("v1", []Entry{
		{TagFirstTimeBuyer, FacetBuyerType, []string{
			"first-time buyer", "first time buyer", "first-time", "first time",
			"new buyer", "first home", "starter home",
		}},
		{TagInvestor, FacetBuyerType, []string{
			"investor", "investment", "rental income", "cash flow", "portfolio",
		}},
		{TagFamilyWithKids, FacetLifeStage, []string{
			"family", "families", "kids", "children", "good schools", "school district",
		}},
		{TagExpectingParents, FacetLifeStage, []string{
			"expecting", "baby on the way", "pregnant", "growing family", "nursery",
		}},
		{TagDownsizer, FacetLifeStage, []string{
			"downsize", "downsizing", "empty nest", "retiring", "retirement",
		}},
		{TagRelocating, FacetLifeStage, []string{
			"relocating", "relocation", "job transfer", "moving for work",
		}},
		{TagUrgent, FacetUrgency, []string{
			"urgent", "asap", "immediately", "right away", "ready to offer",
			"make offer", "this month",
		}},
		{TagCashBuyer, FacetFinancial, []string{
			"cash buyer", "all cash", "cash offer", "no financing",
		}},
		{TagPreApproved, FacetFinancial, []string{
			"pre-approved", "pre approved", "preapproved", "pre-approval",
			"pre approval", "approved", "qualified",
		}},
	})
}

// Version returns the vocabulary version label.
func (v Vocabulary) Version() string { return v.version }

// Entries returns the vocabulary entries in declaration order.
func (v Vocabulary) Entries() []Entry { return v.entries }

// CanonicalTag normalizes a free-form tag string ("First-Time Buyer") to the
// controlled form ("first_time_buyer") for exact-presence matching.
func CanonicalTag(s string) Tag {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return Tag(strings.Trim(s, "_"))
}
