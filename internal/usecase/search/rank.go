package search

import (
	"sort"

	"github.com/kailas-cloud/notedex/internal/domain/search"
)

// rank orders results by score descending, then by meeting date descending
// (fresher conversations first), then by note ID for a stable total order.
// A positive limit truncates the list after ordering.
func rank(results []search.ScoredResult, limit int) []search.ScoredResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score() != results[j].Score() {
			return results[i].Score() > results[j].Score()
		}
		ni, nj := results[i].Note(), results[j].Note()
		if !ni.MeetingDate().Equal(nj.MeetingDate()) {
			return ni.MeetingDate().After(nj.MeetingDate())
		}
		return ni.ID() < nj.ID()
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
