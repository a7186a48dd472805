package search

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/query"
)

func extractQuery(q string, gazetteer ...string) extraction {
	tokens, _ := normalize(q)
	return extract(tokens, gazetteer)
}

func TestExtractCountsAndPrice(t *testing.T) {
	ext := extractQuery("3 bed 2 bath under 500k")

	c := ext.constraints
	if c.Bedrooms == nil || c.Bedrooms.Value != 3 || c.Bedrooms.Bound != query.BoundExact {
		t.Fatalf("bedrooms = %+v", c.Bedrooms)
	}
	if c.Bathrooms == nil || c.Bathrooms.Value != 2 || c.Bathrooms.Bound != query.BoundExact {
		t.Fatalf("bathrooms = %+v", c.Bathrooms)
	}
	if c.PriceMax == nil || *c.PriceMax != 500000 {
		t.Fatalf("price max = %v", c.PriceMax)
	}
	if c.PriceMin != nil {
		t.Fatalf("price min should be unset, got %v", *c.PriceMin)
	}
	if len(ext.residual) != 0 {
		t.Errorf("residual = %v, want none", ext.residual)
	}
}

func TestExtractCountBounds(t *testing.T) {
	cases := []struct {
		q     string
		bound query.Bound
	}{
		{"at least 3 bedrooms", query.BoundAtLeast},
		{"minimum 3 bedrooms", query.BoundAtLeast},
		{"up to 3 bedrooms", query.BoundAtMost},
		{"3 bedrooms", query.BoundExact},
	}
	for _, tc := range cases {
		t.Run(tc.q, func(t *testing.T) {
			ext := extractQuery(tc.q)
			if ext.constraints.Bedrooms == nil {
				t.Fatal("no bedroom constraint")
			}
			if got := ext.constraints.Bedrooms.Bound; got != tc.bound {
				t.Errorf("bound = %v, want %v", got, tc.bound)
			}
			if len(ext.residual) != 0 {
				t.Errorf("residual = %v", ext.residual)
			}
		})
	}
}

func TestExtractPriceForms(t *testing.T) {
	cases := []struct {
		q        string
		min, max int // 0 means unset
	}{
		{"under 500k", 0, 500000},
		{"below $400,000", 0, 400000},
		{"max 450k", 0, 450000},
		{"over 300k", 300000, 0},
		{"above 250k", 250000, 0},
		{"less than 600k", 0, 600000},
		{"more than 350k", 350000, 0},
		{"between 300k and 500k", 300000, 500000},
		{"budget 300k to 500k", 300000, 500000},
		{"price 300k-500k", 300000, 500000},
	}
	for _, tc := range cases {
		t.Run(tc.q, func(t *testing.T) {
			c := extractQuery(tc.q).constraints
			if tc.min == 0 && c.PriceMin != nil {
				t.Errorf("min = %d, want unset", *c.PriceMin)
			}
			if tc.min != 0 && (c.PriceMin == nil || *c.PriceMin != tc.min) {
				t.Errorf("min = %v, want %d", c.PriceMin, tc.min)
			}
			if tc.max == 0 && c.PriceMax != nil {
				t.Errorf("max = %d, want unset", *c.PriceMax)
			}
			if tc.max != 0 && (c.PriceMax == nil || *c.PriceMax != tc.max) {
				t.Errorf("max = %v, want %d", c.PriceMax, tc.max)
			}
		})
	}
}

func TestExtractLastPriceRangeWins(t *testing.T) {
	c := extractQuery("under 600k no wait under 500k").constraints
	if c.PriceMax == nil || *c.PriceMax != 500000 {
		t.Fatalf("price max = %v, want 500000", c.PriceMax)
	}
}

func TestExtractLastRangeReplacesBothBounds(t *testing.T) {
	// A later full match replaces the whole range, not just one bound.
	c := extractQuery("between 300k and 500k actually under 450k").constraints
	if c.PriceMin != nil {
		t.Errorf("price min = %d, want unset", *c.PriceMin)
	}
	if c.PriceMax == nil || *c.PriceMax != 450000 {
		t.Errorf("price max = %v, want 450000", c.PriceMax)
	}
}

func TestExtractInvertedRangeDropped(t *testing.T) {
	ext := extractQuery("between 500k and 300k")
	if !ext.constraints.IsEmpty() {
		t.Errorf("constraints = %+v, want empty", ext.constraints)
	}
	if !reflect.DeepEqual(ext.dropped, []string{"invalid price range"}) {
		t.Errorf("dropped = %v", ext.dropped)
	}
}

func TestExtractPropertyType(t *testing.T) {
	cases := []struct {
		q    string
		want note.PropertyType
	}{
		{"single family home", note.SingleFamily},
		{"a condo downtown", note.Condo},
		{"townhouse listings", note.Townhouse},
		{"multi-family investment", note.MultiFamily},
		{"duplex", note.MultiFamily},
	}
	for _, tc := range cases {
		t.Run(tc.q, func(t *testing.T) {
			c := extractQuery(tc.q).constraints
			if c.PropertyType == nil || *c.PropertyType != tc.want {
				t.Errorf("property type = %v, want %v", c.PropertyType, tc.want)
			}
		})
	}
}

func TestExtractLocations(t *testing.T) {
	ext := extractQuery("looking in oak hills near downtown", "oak hills")
	want := []string{"oak hills", "downtown"}
	if !reflect.DeepEqual(ext.constraints.Locations, want) {
		t.Errorf("locations = %v, want %v", ext.constraints.Locations, want)
	}
}

func TestExtractFlags(t *testing.T) {
	ext := extractQuery("pre-approved buyers who need a place asap")
	c := ext.constraints
	if c.PreApproved == nil || !*c.PreApproved {
		t.Error("pre-approved flag not set")
	}
	if c.Urgent == nil || !*c.Urgent {
		t.Error("urgency flag not set")
	}
}

func TestExtractFeatures(t *testing.T) {
	ext := extractQuery("pet friendly condo with a pool and garage")
	c := ext.constraints
	want := []string{"pet friendly", "pool", "garage"}
	if !reflect.DeepEqual(c.Features, want) {
		t.Errorf("features = %v, want %v", c.Features, want)
	}
	if c.PropertyType == nil || *c.PropertyType != note.Condo {
		t.Errorf("property type = %v, want condo", c.PropertyType)
	}
}

func TestExtractFeatureSynonyms(t *testing.T) {
	cases := map[string]string{
		"pet-friendly place":     "pet friendly",
		"near good schools":      "good schools",
		"needs parking":          "parking",
		"big backyard preferred": "yard",
	}
	for q, want := range cases {
		t.Run(q, func(t *testing.T) {
			ext := extractQuery(q)
			if len(ext.constraints.Features) != 1 || ext.constraints.Features[0] != want {
				t.Errorf("features = %v, want [%s]", ext.constraints.Features, want)
			}
		})
	}
}

func TestExtractResidualSurvives(t *testing.T) {
	ext := extractQuery("first time buyer under 400k")
	want := []string{"first", "time", "buyer"}
	if !reflect.DeepEqual(ext.residual, want) {
		t.Errorf("residual = %v, want %v", ext.residual, want)
	}
}

func TestExtractEmptyTokens(t *testing.T) {
	ext := extract(nil, nil)
	if !ext.constraints.IsEmpty() || len(ext.residual) != 0 {
		t.Errorf("extraction = %+v, want empty", ext)
	}
}
