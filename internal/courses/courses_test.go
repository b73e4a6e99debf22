// ABOUTME: Tests for course catalog filtering and price formatting
// ABOUTME: Covers published-only listing, category/level filters, ordering

package courses

import "testing"

func sampleCourses() []Course {
	return []Course{
		{ID: "1", Title: "Intro to Prompting", Category: "ai", Level: LevelBeginner, PriceCents: 0, Published: true},
		{ID: "2", Title: "Advanced RAG Systems", Category: "ai", Level: LevelAdvanced, PriceCents: 14900, Published: true},
		{ID: "3", Title: "Draft: Agents 101", Category: "ai", Level: LevelBeginner, PriceCents: 4900, Published: false},
		{ID: "4", Title: "Marketing Analytics", Category: "marketing", Level: LevelIntermediate, PriceCents: 9900, Published: true},
	}
}

func TestCatalog_ExcludesUnpublished(t *testing.T) {
	got := Catalog(sampleCourses(), Query{})
	if len(got) != 3 {
		t.Fatalf("Catalog() returned %d courses, want 3", len(got))
	}
	for _, c := range got {
		if c.ID == "3" {
			t.Error("unpublished course leaked into catalog")
		}
	}
}

func TestCatalog_OrderedByTitle(t *testing.T) {
	got := Catalog(sampleCourses(), Query{})
	if got[0].Title != "Advanced RAG Systems" {
		t.Errorf("first title = %q, want alphabetical order", got[0].Title)
	}
}

func TestCatalog_FilterByCategoryAndLevel(t *testing.T) {
	got := Catalog(sampleCourses(), Query{Category: "AI", Level: LevelBeginner})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("Catalog() = %v, want Intro to Prompting only", got)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		cents int
		want  string
	}{
		{0, "Free"},
		{14900, "$149.00"},
		{505, "$5.05"},
	}
	for _, tc := range cases {
		c := Course{PriceCents: tc.cents}
		if got := c.FormatPrice(); got != tc.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
