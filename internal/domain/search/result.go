// Package search holds the search response value objects.
package search

import "github.com/kailas-cloud/notedex/internal/domain/note"

// ScoredResult is a single ranked hit.
type ScoredResult struct {
	note    note.Note
	score   float64
	reasons []string
}

// NewScoredResult creates a scored result.
func NewScoredResult(n note.Note, score float64, reasons []string) ScoredResult {
	return ScoredResult{note: n, score: score, reasons: reasons}
}

// Note returns the matched note snapshot.
func (r ScoredResult) Note() note.Note { return r.note }

// Score returns the relevance score in [0,1].
func (r ScoredResult) Score() float64 { return r.score }

// Reasons returns the ordered human-readable match explanations.
func (r ScoredResult) Reasons() []string { return r.reasons }

// Response is the search entry point's result contract.
type Response struct {
	query    string
	results  []ScoredResult
	total    int
	approach string
}

// NewResponse packages ranked results with the approach label.
func NewResponse(query string, results []ScoredResult, approach string) Response {
	return Response{query: query, results: results, total: len(results), approach: approach}
}

// Query returns the original query string.
func (r Response) Query() string { return r.query }

// Results returns the ordered hits.
func (r Response) Results() []ScoredResult { return r.results }

// Total returns the number of meaningful matches.
func (r Response) Total() int { return r.total }

// Approach returns a short label naming the search approach used
// (observability only, never behavior).
func (r Response) Approach() string { return r.approach }
