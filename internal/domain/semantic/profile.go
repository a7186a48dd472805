package semantic

import "sort"

// Profile maps vocabulary tags to confidence weights in [0,1].
// It is a pure function of its input text/tags, so identical input always
// yields an identical profile.
type Profile map[Tag]float64

// Absorb records a weight for a tag, keeping the maximum of redundant
// signals rather than summing them.
func (p Profile) Absorb(tag Tag, weight float64) {
	if weight <= 0 {
		return
	}
	if weight > 1 {
		weight = 1
	}
	if weight > p[tag] {
		p[tag] = weight
	}
}

// Weight returns the confidence for a tag, 0 when absent.
func (p Profile) Weight(tag Tag) float64 { return p[tag] }

// IsZero reports whether the profile carries no semantic signal.
func (p Profile) IsZero() bool { return len(p) == 0 }

// TotalWeight sums all tag weights (the semantic-overlap normalizer).
func (p Profile) TotalWeight() float64 {
	var sum float64
	for _, w := range p {
		sum += w
	}
	return sum
}

// Tags returns the profile's tags in deterministic byte order.
func (p Profile) Tags() []Tag {
	tags := make([]Tag, 0, len(p))
	for t := range p {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
