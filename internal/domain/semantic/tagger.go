package semantic

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Signal weights. Lexical hits always take precedence over similarity
// gap-fill, which is capped below the synonym weight.
const (
	WeightExact         = 1.0
	WeightSynonym       = 0.7
	MaxSimilarityWeight = 0.6
)

// Similarity is the pluggable continuous scorer, used only to fill gaps the
// lexical rules leave. Implementations own their timeout; a failure degrades
// tagging to lexical-only and must not fail the search.
type Similarity interface {
	Score(ctx context.Context, text string, tags []Tag) (map[Tag]float64, error)
}

// Tagger builds SemanticProfiles from text and free-form tags.
type Tagger struct {
	vocab      Vocabulary
	similarity Similarity
	logger     *zap.Logger
}

// NewTagger creates a tagger. similarity may be nil for lexical-only tagging.
func NewTagger(vocab Vocabulary, similarity Similarity, logger *zap.Logger) *Tagger {
	return &Tagger{vocab: vocab, similarity: similarity, logger: logger}
}

// Vocabulary returns the tagger's controlled vocabulary.
func (t *Tagger) Vocabulary() Vocabulary { return t.vocab }

// ProfileText builds a profile from residual query text.
func (t *Tagger) ProfileText(ctx context.Context, text string) Profile {
	return t.profile(ctx, nil, text)
}

// ProfileNote builds a profile from a note's free-form tags plus its body.
func (t *Tagger) ProfileNote(ctx context.Context, tags []string, body string) Profile {
	return t.profile(ctx, tags, body)
}

func (t *Tagger) profile(ctx context.Context, rawTags []string, text string) Profile {
	p := Profile{}

	canonical := make(map[Tag]bool, len(rawTags))
	loweredTags := make([]string, 0, len(rawTags))
	for _, rt := range rawTags {
		canonical[CanonicalTag(rt)] = true
		loweredTags = append(loweredTags, strings.ToLower(rt))
	}
	lowered := strings.ToLower(text)

	for _, entry := range t.vocab.Entries() {
		// (a) exact tag-string presence.
		if canonical[entry.Tag] {
			p.Absorb(entry.Tag, WeightExact)
			continue
		}
		// (b) curated synonym phrase in the tags or the text.
		if matchesSynonym(entry.Synonyms, lowered, loweredTags) {
			p.Absorb(entry.Tag, WeightSynonym)
		}
	}

	// (c) similarity gap-fill for tags the lexical rules missed.
	t.fillGaps(ctx, lowered, p)

	return p
}

func matchesSynonym(synonyms []string, text string, tags []string) bool {
	for _, syn := range synonyms {
		if containsPhrase(text, syn) {
			return true
		}
		for _, tag := range tags {
			if containsPhrase(tag, syn) {
				return true
			}
		}
	}
	return false
}

// containsPhrase checks for a whole-word phrase occurrence, so "families"
// does not match the synonym "family" by accident of substring grammar
// (it does match via its own synonym entry instead).
func containsPhrase(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryBefore(text string, i int) bool {
	return i == 0 || !isWordByte(text[i-1])
}

func boundaryAfter(text string, i int) bool {
	return i >= len(text) || !isWordByte(text[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// fillGaps asks the similarity scorer for weights on unmatched tags.
// Similarity never overrides a lexical hit and is clamped to [0, 0.6].
func (t *Tagger) fillGaps(ctx context.Context, text string, p Profile) {
	if t.similarity == nil || strings.TrimSpace(text) == "" {
		return
	}

	var gaps []Tag
	for _, entry := range t.vocab.Entries() {
		if p.Weight(entry.Tag) == 0 {
			gaps = append(gaps, entry.Tag)
		}
	}
	if len(gaps) == 0 {
		return
	}

	scores, err := t.similarity.Score(ctx, text, gaps)
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("similarity scorer failed, lexical-only tagging", zap.Error(err))
		}
		return
	}

	for tag, w := range scores {
		if w > MaxSimilarityWeight {
			w = MaxSimilarityWeight
		}
		if p.Weight(tag) == 0 {
			p.Absorb(tag, w)
		}
	}
}
