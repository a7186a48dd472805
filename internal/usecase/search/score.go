package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/notedex/internal/domain/query"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
)

const (
	weightConstraintFit = 0.5
	weightSemantic      = 0.5

	// reasonThreshold keeps near-zero signals out of the explanation list.
	reasonThreshold = 0.1
)

// score evaluates one note's facts and semantic profile against the query.
// A false second return means a hard filter excluded the note.
func score(c query.Constraints, qp semantic.Profile, facts query.FactSheet, np semantic.Profile) (float64, []string, bool) {
	if excluded(c, facts) {
		return 0, nil, false
	}

	fit, fitReasons := constraintFit(c, facts)
	sem, semReasons := semanticOverlap(qp, np)

	// The blend is normalized by the weights of the components the query
	// actually activates, so a rules-only or semantic-only query still
	// spans the full [0,1] range. Absolute scores are therefore not
	// comparable across approach types.
	var total, weights float64
	if !c.IsEmpty() {
		total += weightConstraintFit * fit
		weights += weightConstraintFit
	}
	if !qp.IsZero() {
		total += weightSemantic * sem
		weights += weightSemantic
	}
	if weights == 0 {
		return 0, nil, false
	}

	reasons := append(fitReasons, semReasons...)
	return total / weights, reasons, true
}

// excluded applies the hard filters: price bounds, bedroom/bathroom counts
// and property type. Notes with no stated requirement for a filtered field
// are excluded too; "3 bedrooms under 500k" should not surface clients who
// never mentioned a budget.
func excluded(c query.Constraints, facts query.FactSheet) bool {
	if c.PriceMax != nil {
		// The note's stated ceiling must fit under the query ceiling;
		// a merely overlapping range ("300k-600k" for "under 500k")
		// does not qualify.
		ceiling := facts.MaxPrice
		if ceiling == 0 {
			ceiling = facts.MinPrice
		}
		if ceiling == 0 || ceiling > *c.PriceMax {
			return true
		}
	}
	if c.PriceMin != nil {
		floor := facts.MinPrice
		if floor == 0 {
			floor = facts.MaxPrice
		}
		if floor == 0 || floor < *c.PriceMin {
			return true
		}
	}
	if c.Bedrooms != nil && !c.Bedrooms.Matches(facts.Bedrooms) {
		return true
	}
	if c.Bathrooms != nil && !c.Bathrooms.Matches(facts.Bathrooms) {
		return true
	}
	if c.PropertyType != nil && facts.PropertyType != *c.PropertyType {
		return true
	}
	return false
}

// constraintFit averages the soft per-constraint signals in [0,1].
func constraintFit(c query.Constraints, facts query.FactSheet) (float64, []string) {
	var sum float64
	var n int
	var reasons []string

	add := func(v float64, reason string) {
		sum += v
		n++
		if v > reasonThreshold {
			reasons = append(reasons, reason)
		}
	}

	if c.PriceMax != nil {
		v := proximity(*c.PriceMax, noteBudget(facts))
		add(v, fmt.Sprintf("budget fits under $%s", formatAmount(*c.PriceMax)))
	}
	if c.PriceMin != nil {
		v := proximity(*c.PriceMin, noteBudget(facts))
		add(v, fmt.Sprintf("budget fits over $%s", formatAmount(*c.PriceMin)))
	}
	if c.Bedrooms != nil {
		v := proximity(c.Bedrooms.Value, facts.Bedrooms)
		add(v, fmt.Sprintf("%d bedrooms", facts.Bedrooms))
	}
	if c.Bathrooms != nil {
		v := proximity(c.Bathrooms.Value, facts.Bathrooms)
		add(v, fmt.Sprintf("%d bathrooms", facts.Bathrooms))
	}
	if c.PropertyType != nil {
		// Survived the hard filter, so this is always an exact match.
		add(1, fmt.Sprintf("looking for %s", strings.ToLower(string(*c.PropertyType))))
	}
	if len(c.Locations) > 0 {
		v, matched := locationOverlap(c.Locations, facts.Areas)
		reason := "area match"
		if len(matched) > 0 {
			reason = "interested in " + strings.Join(matched, ", ")
		}
		add(v, reason)
	}
	if len(c.Features) > 0 {
		v, matched := featureOverlap(c.Features, facts)
		reason := "feature match"
		if len(matched) > 0 {
			reason = "wants " + strings.Join(matched, ", ")
		}
		add(v, reason)
	}
	if c.PreApproved != nil {
		v := 0.0
		if facts.PreApproved == *c.PreApproved {
			v = 1
		}
		add(v, "pre-approved for financing")
	}
	if c.Urgent != nil {
		v := 0.0
		if facts.Urgent == *c.Urgent {
			v = 1
		}
		add(v, "urgent timeline")
	}

	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), reasons
}

// proximity is an inverse-distance signal: 1 at an exact match, decaying
// with relative distance from the queried value.
func proximity(want, have int) float64 {
	if want <= 0 {
		if have == want {
			return 1
		}
		return 0
	}
	d := math.Abs(float64(want-have)) / float64(want)
	return 1 / (1 + d)
}

// noteBudget picks the note price most comparable to a query bound: the
// stated maximum, falling back to the minimum.
func noteBudget(facts query.FactSheet) int {
	if facts.MaxPrice > 0 {
		return facts.MaxPrice
	}
	return facts.MinPrice
}

// locationOverlap is the fraction of queried locations the note's preferred
// areas cover. Matching is case-insensitive on whole area names, with
// containment either way so "westside" matches "Westside Hills".
func locationOverlap(wanted, areas []string) (float64, []string) {
	if len(wanted) == 0 {
		return 0, nil
	}
	var matched []string
	for _, w := range wanted {
		lw := strings.ToLower(w)
		for _, a := range areas {
			if a == lw || strings.Contains(a, lw) || strings.Contains(lw, a) {
				matched = append(matched, w)
				break
			}
		}
	}
	return float64(len(matched)) / float64(len(wanted)), matched
}

// featureOverlap is the fraction of requested features found in the note's
// must-have or nice-to-have lists, substring-matched either way so "garage"
// covers "2-car garage".
func featureOverlap(wanted []string, facts query.FactSheet) (float64, []string) {
	if len(wanted) == 0 {
		return 0, nil
	}
	haves := make([]string, 0, len(facts.MustHaves)+len(facts.NiceToHaves))
	haves = append(haves, facts.MustHaves...)
	haves = append(haves, facts.NiceToHaves...)

	var matched []string
	for _, w := range wanted {
		for _, h := range haves {
			if h == w || strings.Contains(h, w) || strings.Contains(w, h) {
				matched = append(matched, w)
				break
			}
		}
	}
	return float64(len(matched)) / float64(len(wanted)), matched
}

// semanticOverlap scores the note profile against the query profile,
// normalized by the query's total weight so a note matching every queried
// tag at full strength scores 1.
func semanticOverlap(qp, np semantic.Profile) (float64, []string) {
	total := qp.TotalWeight()
	if total == 0 {
		return 0, nil
	}
	var sum float64
	var reasons []string
	for _, tag := range qp.Tags() {
		contrib := qp.Weight(tag) * np.Weight(tag)
		sum += contrib
		if contrib/total > reasonThreshold {
			reasons = append(reasons, "matches "+tagLabel(tag))
		}
	}
	return sum / total, reasons
}

func tagLabel(tag semantic.Tag) string {
	return strings.ReplaceAll(string(tag), "_", " ")
}

// formatAmount renders a dollar amount with thousands separators.
func formatAmount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append(parts, s[len(s)-3:])
		s = s[:len(s)-3]
	}
	parts = append(parts, s)
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ",")
}
