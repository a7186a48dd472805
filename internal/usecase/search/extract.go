package search

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/query"
)

// builtinLocations are common qualifiers recognized even when no note lists
// them as a preferred area.
var builtinLocations = []string{
	"downtown", "uptown", "midtown", "westside", "eastside",
	"suburbs", "school district",
}

// propertyTypeSpans maps token spans to property types. Longer spans are
// matched first so "single family" never leaves a stray "family" token.
var propertyTypeSpans = []struct {
	span []string
	typ  note.PropertyType
}{
	{[]string{"single", "family"}, note.SingleFamily},
	{[]string{"single-family"}, note.SingleFamily},
	{[]string{"multi", "family"}, note.MultiFamily},
	{[]string{"multi-family"}, note.MultiFamily},
	{[]string{"multifamily"}, note.MultiFamily},
	{[]string{"duplex"}, note.MultiFamily},
	{[]string{"condo"}, note.Condo},
	{[]string{"condos"}, note.Condo},
	{[]string{"condominium"}, note.Condo},
	{[]string{"townhouse"}, note.Townhouse},
	{[]string{"townhouses"}, note.Townhouse},
	{[]string{"townhome"}, note.Townhouse},
}

// featureSpans maps token spans to canonical property features, matched
// against a note's must-have and nice-to-have lists. Longer spans first.
var featureSpans = []struct {
	span    []string
	feature string
}{
	{[]string{"pet", "friendly"}, "pet friendly"},
	{[]string{"pet-friendly"}, "pet friendly"},
	{[]string{"pets"}, "pet friendly"},
	{[]string{"good", "schools"}, "good schools"},
	{[]string{"pool"}, "pool"},
	{[]string{"garage"}, "garage"},
	{[]string{"parking"}, "parking"},
	{[]string{"yard"}, "yard"},
	{[]string{"backyard"}, "yard"},
}

var (
	maxPriceCues = map[string]bool{"under": true, "below": true, "max": true, "maximum": true}
	minPriceCues = map[string]bool{"over": true, "above": true, "min": true, "minimum": true}
	priceWords   = map[string]bool{"price": true, "budget": true}
	urgencyCues  = map[string]bool{"asap": true, "urgent": true, "urgently": true, "immediately": true}
)

// extraction is the constraint extractor's output: structured constraints,
// the tokens no rule consumed, and labels of discarded malformed constraints.
type extraction struct {
	constraints query.Constraints
	residual    []string
	dropped     []string
}

// extractor walks the token stream applying pattern rules. Each rule marks
// the token span it consumes so later rules and the residual pass skip it
// (first-match-wins per span).
type extractor struct {
	tokens   []string
	consumed []bool
	out      extraction
}

// extract derives QueryConstraints from normalized tokens. gazetteer holds
// lowercase area names collected from the corpus.
func extract(tokens []string, gazetteer []string) extraction {
	e := &extractor{tokens: tokens, consumed: make([]bool, len(tokens))}

	e.extractPrices()
	e.extractCounts()
	e.extractPropertyType()
	e.extractLocations(gazetteer)
	e.extractFeatures()
	e.extractFlags()

	for i, tok := range e.tokens {
		if !e.consumed[i] {
			e.out.residual = append(e.out.residual, tok)
		}
	}
	return e.out
}

func (e *extractor) free(i int) bool {
	return i >= 0 && i < len(e.tokens) && !e.consumed[i]
}

func (e *extractor) claim(from, to int) {
	for i := from; i <= to && i < len(e.tokens); i++ {
		e.consumed[i] = true
	}
}

func (e *extractor) at(i int) string {
	if i < 0 || i >= len(e.tokens) {
		return ""
	}
	return e.tokens[i]
}

func countUnit(tok string) bool {
	return tok == "bedroom" || tok == "bathroom"
}

func number(tok string) (int, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// extractPrices applies the price-range rules. When multiple price cues
// appear, the last fully-matched range wins, reflecting conversational
// correction ("under 600k... actually under 500k").
func (e *extractor) extractPrices() {
	var min, max *int
	matched := false

	setRange := func(lo, hi *int) {
		min, max = lo, hi
		matched = true
	}

	for i := 0; i < len(e.tokens); i++ {
		if !e.free(i) {
			continue
		}
		switch {
		// "between N and M"
		case e.at(i) == "between":
			lo, okLo := number(e.at(i + 1))
			hi, okHi := number(e.at(i + 3))
			if okLo && okHi && e.at(i+2) == "and" && e.free(i+1) && e.free(i+2) && e.free(i+3) {
				e.claim(i, i+3)
				if lo > hi {
					e.out.dropped = append(e.out.dropped, "invalid price range")
					continue
				}
				setRange(&lo, &hi)
			}

		// "under N" / "below N" / "max N". "max 2 bathrooms" is a count
		// constraint, so a trailing unit defers to the count rules.
		case maxPriceCues[e.at(i)]:
			if hi, ok := number(e.at(i + 1)); ok && e.free(i+1) && !countUnit(e.at(i+2)) {
				e.claim(i, i+1)
				setRange(nil, &hi)
			}

		// "over N" / "above N" / "min N"
		case minPriceCues[e.at(i)]:
			if lo, ok := number(e.at(i + 1)); ok && e.free(i+1) && !countUnit(e.at(i+2)) {
				e.claim(i, i+1)
				setRange(&lo, nil)
			}

		// "less than N" / "more than N"
		case (e.at(i) == "less" || e.at(i) == "more") && e.at(i+1) == "than":
			n, ok := number(e.at(i + 2))
			if ok && e.free(i+1) && e.free(i+2) && !countUnit(e.at(i+3)) {
				e.claim(i, i+2)
				if e.at(i) == "less" {
					setRange(nil, &n)
				} else {
					setRange(&n, nil)
				}
			}

		// "N to M" or "N-M" adjacent to a price cue ("price", "budget")
		case priceWords[e.at(i)]:
			if lo, hi, span, ok := e.bareRangeAfter(i + 1); ok {
				e.claim(i, i+span)
				if lo > hi {
					e.out.dropped = append(e.out.dropped, "invalid price range")
					continue
				}
				setRange(&lo, &hi)
			}
		}
	}

	if matched {
		e.out.constraints.PriceMin = min
		e.out.constraints.PriceMax = max
	}
}

// bareRangeAfter matches "N to M" or a single "N-M" token starting at i.
// span is the offset of the last matched token relative to i-1.
func (e *extractor) bareRangeAfter(i int) (lo, hi, span int, ok bool) {
	if lo, okLo := number(e.at(i)); okLo && e.at(i+1) == "to" && e.free(i) && e.free(i+1) && e.free(i+2) {
		if hi, okHi := number(e.at(i + 2)); okHi {
			return lo, hi, 3, true
		}
	}
	if e.free(i) {
		if parts := strings.SplitN(e.at(i), "-", 2); len(parts) == 2 {
			lo, okLo := number(parts[0])
			hi, okHi := number(parts[1])
			if okLo && okHi {
				return lo, hi, 1, true
			}
		}
	}
	return 0, 0, 0, false
}

// extractCounts applies the "N bedroom" / "N bathroom" rules with optional
// "at least" / "minimum" / "up to" modifiers.
func (e *extractor) extractCounts() {
	for i := 0; i < len(e.tokens)-1; i++ {
		if !e.free(i) || !e.free(i+1) {
			continue
		}
		n, ok := number(e.at(i))
		if !ok {
			continue
		}

		var target **query.Count
		switch e.at(i + 1) {
		case "bedroom":
			target = &e.out.constraints.Bedrooms
		case "bathroom":
			target = &e.out.constraints.Bathrooms
		default:
			continue
		}

		bound := query.BoundExact
		from := i
		switch {
		case e.at(i-1) == "least" && e.at(i-2) == "at" && e.free(i-1) && e.free(i-2):
			bound = query.BoundAtLeast
			from = i - 2
		case (e.at(i-1) == "minimum" || e.at(i-1) == "min") && e.free(i-1):
			bound = query.BoundAtLeast
			from = i - 1
		case (e.at(i-1) == "maximum" || e.at(i-1) == "max") && e.free(i-1):
			bound = query.BoundAtMost
			from = i - 1
		case e.at(i-1) == "to" && e.at(i-2) == "up" && e.free(i-1) && e.free(i-2):
			bound = query.BoundAtMost
			from = i - 2
		case e.at(i-1) == "most" && e.at(i-2) == "at" && e.free(i-1) && e.free(i-2):
			bound = query.BoundAtMost
			from = i - 2
		}

		e.claim(from, i+1)
		*target = &query.Count{Value: n, Bound: bound}
	}
}

// extractPropertyType matches the fixed property-type vocabulary.
func (e *extractor) extractPropertyType() {
	for i := 0; i < len(e.tokens); i++ {
		if !e.free(i) {
			continue
		}
		for _, pt := range propertyTypeSpans {
			if e.matchSpan(i, pt.span) {
				e.claim(i, i+len(pt.span)-1)
				typ := pt.typ
				e.out.constraints.PropertyType = &typ
				return
			}
		}
	}
}

func (e *extractor) matchSpan(i int, span []string) bool {
	for j, word := range span {
		if !e.free(i+j) || e.at(i+j) != word {
			return false
		}
	}
	return true
}

// extractLocations matches gazetteer phrases (corpus preferred areas plus
// the built-in qualifiers) as token spans.
func (e *extractor) extractLocations(gazetteer []string) {
	phrases := make([]string, 0, len(gazetteer)+len(builtinLocations))
	phrases = append(phrases, gazetteer...)
	phrases = append(phrases, builtinLocations...)

	seen := make(map[string]bool)
	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		if len(words) == 0 || seen[phrase] {
			continue
		}
		for i := 0; i+len(words) <= len(e.tokens); i++ {
			if e.matchSpan(i, words) {
				e.claim(i, i+len(words)-1)
				e.out.constraints.Locations = append(e.out.constraints.Locations, phrase)
				seen[phrase] = true
				break
			}
		}
	}
}

// extractFeatures matches requested property features ("pool", "pet
// friendly") for matching against a note's must-have lists.
func (e *extractor) extractFeatures() {
	seen := make(map[string]bool)
	for i := 0; i < len(e.tokens); i++ {
		if !e.free(i) {
			continue
		}
		for _, fs := range featureSpans {
			if !e.matchSpan(i, fs.span) || seen[fs.feature] {
				continue
			}
			e.claim(i, i+len(fs.span)-1)
			e.out.constraints.Features = append(e.out.constraints.Features, fs.feature)
			seen[fs.feature] = true
			break
		}
	}
}

// extractFlags spots pre-approval and urgency keywords.
func (e *extractor) extractFlags() {
	yes := true
	for i := 0; i < len(e.tokens); i++ {
		if !e.free(i) {
			continue
		}
		switch {
		case e.at(i) == "pre-approved" || e.at(i) == "preapproved" || e.at(i) == "pre-approval":
			e.claim(i, i)
			e.out.constraints.PreApproved = &yes
		case e.at(i) == "pre" && (e.at(i+1) == "approved" || e.at(i+1) == "approval") && e.free(i+1):
			e.claim(i, i+1)
			e.out.constraints.PreApproved = &yes
		case urgencyCues[e.at(i)]:
			e.claim(i, i)
			e.out.constraints.Urgent = &yes
		}
	}
}
