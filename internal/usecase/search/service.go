package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/search"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
)

// Approach labels reported with every response, describing which signals
// produced the ranking.
const (
	ApproachRules    = "rules"
	ApproachSemantic = "semantic"
	ApproachHybrid   = "hybrid-rules+semantic"
	ApproachText     = "text-fallback"
	ApproachNoSignal = "no-signal"
)

// Service answers natural-language queries over the note corpus.
type Service struct {
	log      *zap.Logger
	repo     Repository
	features FeatureSource
	tagger   QueryTagger
	limit    int
}

// New wires the search service. limit caps the result list; zero means
// unlimited.
func New(log *zap.Logger, repo Repository, features FeatureSource, tagger QueryTagger, limit int) *Service {
	return &Service{log: log, repo: repo, features: features, tagger: tagger, limit: limit}
}

// Search runs the full pipeline: normalize, extract constraints, tag the
// residual text, then score and rank every note in the corpus.
func (s *Service) Search(ctx context.Context, rawQuery string) (search.Response, error) {
	q := strings.TrimSpace(rawQuery)
	if q == "" {
		return search.Response{}, fmt.Errorf("search query: %w", domain.ErrInvalidQuery)
	}

	notes, err := s.repo.List(ctx)
	if err != nil {
		return search.Response{}, fmt.Errorf("list notes: %w", err)
	}

	tokens, lowered := normalize(q)
	ext := extract(tokens, gazetteer(notes))

	profile := s.tagger.ProfileText(ctx, strings.Join(ext.residual, " "))

	approach := approachLabel(ext, profile)
	if approach == ApproachNoSignal {
		// No rule fired and no tag matched: fall back to a plain
		// substring scan over client name, body and tags.
		results := rank(textFallback(lowered, notes), s.limit)
		if len(results) == 0 {
			s.log.Debug("query produced no constraints or semantic signal", zap.String("query", q))
			return search.NewResponse(q, nil, withDropped(ApproachNoSignal, ext.dropped)), nil
		}
		return search.NewResponse(q, results, withDropped(ApproachText, ext.dropped)), nil
	}

	var results []search.ScoredResult
	for i := range notes {
		facts, np := s.features.Features(ctx, notes[i])
		sc, reasons, ok := score(ext.constraints, profile, facts, np)
		if !ok {
			continue
		}
		results = append(results, search.NewScoredResult(notes[i], sc, reasons))
	}
	results = rank(results, s.limit)

	return search.NewResponse(q, results, withDropped(approach, ext.dropped)), nil
}

func approachLabel(ext extraction, profile semantic.Profile) string {
	hasRules := !ext.constraints.IsEmpty()
	hasSemantic := !profile.IsZero()
	switch {
	case hasRules && hasSemantic:
		return ApproachHybrid
	case hasRules:
		return ApproachRules
	case hasSemantic:
		return ApproachSemantic
	default:
		return ApproachNoSignal
	}
}

func withDropped(approach string, dropped []string) string {
	if len(dropped) == 0 {
		return approach
	}
	return approach + " (dropped: " + strings.Join(dropped, "; ") + ")"
}

// textFallback matches the lowered query text against each note's client
// name, body and tags. Hits keep the degenerate-query baseline score of
// zero; the ranker's tie-breaks order them by recency.
func textFallback(lowered string, notes []note.Note) []search.ScoredResult {
	var results []search.ScoredResult
	for i := range notes {
		if matchesText(notes[i], lowered) {
			results = append(results, search.NewScoredResult(notes[i], 0, []string{"matches note text"}))
		}
	}
	return results
}

func matchesText(n note.Note, q string) bool {
	if strings.Contains(strings.ToLower(n.ClientName()), q) ||
		strings.Contains(strings.ToLower(n.Body()), q) {
		return true
	}
	for _, tag := range n.Tags() {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// gazetteer collects the lowercase preferred areas mentioned anywhere in
// the corpus, longest phrases first so multi-word areas win token spans.
func gazetteer(notes []note.Note) []string {
	seen := make(map[string]bool)
	var areas []string
	for i := range notes {
		for _, a := range notes[i].Requirements().PreferredAreas {
			la := strings.ToLower(strings.TrimSpace(a))
			if la == "" || seen[la] {
				continue
			}
			seen[la] = true
			areas = append(areas, la)
		}
	}
	sort.Slice(areas, func(i, j int) bool {
		wi, wj := strings.Count(areas[i], " "), strings.Count(areas[j], " ")
		if wi != wj {
			return wi > wj
		}
		return areas[i] < areas[j]
	})
	return areas
}
