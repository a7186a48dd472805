package search

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/query"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
)

func exactCount(v int) *query.Count {
	return &query.Count{Value: v, Bound: query.BoundExact}
}

func TestScoreHardFilters(t *testing.T) {
	cases := []struct {
		name     string
		c        query.Constraints
		facts    query.FactSheet
		excluded bool
	}{
		{
			name:     "bedroom mismatch excludes",
			c:        query.Constraints{Bedrooms: exactCount(3)},
			facts:    query.FactSheet{Bedrooms: 2},
			excluded: true,
		},
		{
			name:     "at-least bedroom admits more",
			c:        query.Constraints{Bedrooms: &query.Count{Value: 3, Bound: query.BoundAtLeast}},
			facts:    query.FactSheet{Bedrooms: 4},
			excluded: false,
		},
		{
			name:     "budget floor above query max excludes",
			c:        query.Constraints{PriceMax: query.Int(500000)},
			facts:    query.FactSheet{MinPrice: 600000, MaxPrice: 800000},
			excluded: true,
		},
		{
			name:     "no stated budget excludes on price query",
			c:        query.Constraints{PriceMax: query.Int(500000)},
			facts:    query.FactSheet{Bedrooms: 3},
			excluded: true,
		},
		{
			name:     "budget ceiling below query min excludes",
			c:        query.Constraints{PriceMin: query.Int(400000)},
			facts:    query.FactSheet{MaxPrice: 300000},
			excluded: true,
		},
		{
			name:     "range within cap admits",
			c:        query.Constraints{PriceMax: query.Int(500000)},
			facts:    query.FactSheet{MinPrice: 300000, MaxPrice: 450000},
			excluded: false,
		},
		{
			name:     "ceiling above query max excludes despite overlap",
			c:        query.Constraints{PriceMax: query.Int(500000)},
			facts:    query.FactSheet{MinPrice: 300000, MaxPrice: 600000},
			excluded: true,
		},
		{
			name:     "floor below query min excludes despite overlap",
			c:        query.Constraints{PriceMin: query.Int(500000)},
			facts:    query.FactSheet{MinPrice: 300000, MaxPrice: 600000},
			excluded: true,
		},
		{
			name:     "floor at query min admits",
			c:        query.Constraints{PriceMin: query.Int(500000)},
			facts:    query.FactSheet{MinPrice: 500000, MaxPrice: 700000},
			excluded: false,
		},
		{
			name:     "stated floor stands in for a missing ceiling",
			c:        query.Constraints{PriceMax: query.Int(500000)},
			facts:    query.FactSheet{MinPrice: 400000},
			excluded: false,
		},
		{
			name:     "property type mismatch excludes",
			c:        query.Constraints{PropertyType: ptrType(note.Condo)},
			facts:    query.FactSheet{PropertyType: note.Townhouse},
			excluded: true,
		},
		{
			name:     "pre-approval never excludes",
			c:        query.Constraints{PreApproved: boolPtr(true)},
			facts:    query.FactSheet{PreApproved: false},
			excluded: false,
		},
		{
			name:     "location never excludes",
			c:        query.Constraints{Locations: []string{"downtown"}},
			facts:    query.FactSheet{Areas: []string{"suburbs"}},
			excluded: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, ok := score(tc.c, semantic.Profile{}, tc.facts, semantic.Profile{})
			if ok == tc.excluded {
				t.Errorf("included = %v, want excluded = %v", ok, tc.excluded)
			}
		})
	}
}

func TestScorePerfectConstraintMatch(t *testing.T) {
	c := query.Constraints{
		Bedrooms:  exactCount(3),
		Bathrooms: exactCount(2),
		PriceMax:  query.Int(500000),
	}
	facts := query.FactSheet{Bedrooms: 3, Bathrooms: 2, MinPrice: 400000, MaxPrice: 500000}

	got, reasons, ok := score(c, semantic.Profile{}, facts, semantic.Profile{})
	if !ok {
		t.Fatal("note excluded")
	}
	if got != 1 {
		t.Errorf("score = %v, want 1", got)
	}
	if len(reasons) != 3 {
		t.Errorf("reasons = %v, want 3 entries", reasons)
	}
}

func TestScoreProximityDecays(t *testing.T) {
	c := query.Constraints{PriceMax: query.Int(500000)}
	near := query.FactSheet{MaxPrice: 480000}
	far := query.FactSheet{MaxPrice: 200000}

	sNear, _, _ := score(c, semantic.Profile{}, near, semantic.Profile{})
	sFar, _, _ := score(c, semantic.Profile{}, far, semantic.Profile{})
	if sNear <= sFar {
		t.Errorf("near budget %v should outscore far budget %v", sNear, sFar)
	}
}

func TestScorePreApprovalRanksNotFilters(t *testing.T) {
	yes := true
	c := query.Constraints{PreApproved: &yes}
	approved := query.FactSheet{PreApproved: true}
	notApproved := query.FactSheet{PreApproved: false}

	sYes, _, okYes := score(c, semantic.Profile{}, approved, semantic.Profile{})
	sNo, _, okNo := score(c, semantic.Profile{}, notApproved, semantic.Profile{})
	if !okYes || !okNo {
		t.Fatal("both notes must stay in the result set")
	}
	if sYes <= sNo {
		t.Errorf("approved %v should outscore unapproved %v", sYes, sNo)
	}
}

func TestScoreSemanticOnly(t *testing.T) {
	qp := semantic.Profile{semantic.TagFirstTimeBuyer: 1}
	np := semantic.Profile{semantic.TagFirstTimeBuyer: 1}

	got, reasons, ok := score(query.Constraints{}, qp, query.FactSheet{}, np)
	if !ok {
		t.Fatal("note excluded")
	}
	if got != 1 {
		t.Errorf("score = %v, want 1", got)
	}
	if len(reasons) != 1 || !strings.Contains(reasons[0], "first time buyer") {
		t.Errorf("reasons = %v", reasons)
	}
}

func TestScoreHybridBlend(t *testing.T) {
	c := query.Constraints{Bedrooms: exactCount(3)}
	facts := query.FactSheet{Bedrooms: 3}
	qp := semantic.Profile{semantic.TagInvestor: 1}

	// Perfect constraint fit, zero semantic overlap: equal weights give 0.5.
	got, _, ok := score(c, qp, facts, semantic.Profile{})
	if !ok {
		t.Fatal("note excluded")
	}
	if got != 0.5 {
		t.Errorf("score = %v, want 0.5", got)
	}
}

func TestScoreReasonThreshold(t *testing.T) {
	qp := semantic.Profile{
		semantic.TagInvestor:  1,
		semantic.TagCashBuyer: 1,
	}
	np := semantic.Profile{semantic.TagInvestor: 0.1}

	// Investor contributes 0.1/2 = 0.05 of the query weight, under the
	// reason threshold, so the match is scored but not explained.
	got, reasons, ok := score(query.Constraints{}, qp, query.FactSheet{}, np)
	if !ok {
		t.Fatal("note excluded")
	}
	if got == 0 {
		t.Error("score should be positive")
	}
	if len(reasons) != 0 {
		t.Errorf("reasons = %v, want none", reasons)
	}
}

func TestScoreFeatureSignalRanksNotFilters(t *testing.T) {
	c := query.Constraints{Features: []string{"pool", "garage"}}
	hasPool := query.FactSheet{MustHaves: []string{"pool"}}
	without := query.FactSheet{MustHaves: []string{"quiet street"}}

	sYes, reasons, okYes := score(c, semantic.Profile{}, hasPool, semantic.Profile{})
	sNo, _, okNo := score(c, semantic.Profile{}, without, semantic.Profile{})
	if !okYes || !okNo {
		t.Fatal("feature requests must not hard-filter")
	}
	if sYes <= sNo {
		t.Errorf("pool note %v should outscore %v", sYes, sNo)
	}
	if len(reasons) != 1 || !strings.Contains(reasons[0], "pool") {
		t.Errorf("reasons = %v", reasons)
	}
}

func TestFeatureOverlap(t *testing.T) {
	facts := query.FactSheet{
		MustHaves:   []string{"2-car garage"},
		NiceToHaves: []string{"pool"},
	}
	v, matched := featureOverlap([]string{"garage", "pool", "yard"}, facts)
	if v < 0.66 || v > 0.67 {
		t.Errorf("overlap = %v, want 2/3", v)
	}
	if len(matched) != 2 {
		t.Errorf("matched = %v", matched)
	}
}

func TestLocationOverlap(t *testing.T) {
	v, matched := locationOverlap([]string{"westside", "downtown"}, []string{"westside hills"})
	if v != 0.5 {
		t.Errorf("overlap = %v, want 0.5", v)
	}
	if len(matched) != 1 || matched[0] != "westside" {
		t.Errorf("matched = %v", matched)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[int]string{
		500:     "500",
		5000:    "5,000",
		500000:  "500,000",
		1250000: "1,250,000",
	}
	for in, want := range cases {
		if got := formatAmount(in); got != want {
			t.Errorf("formatAmount(%d) = %q, want %q", in, got, want)
		}
	}
}

func ptrType(pt note.PropertyType) *note.PropertyType { return &pt }

func boolPtr(b bool) *bool { return &b }
