// ABOUTME: Course catalog domain model with catalog filtering helpers
// ABOUTME: Backs the academy catalog listing

// Package courses models the course catalog the academy client browses.
package courses

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Course levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course is a single catalog entry.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	PriceCents  int       `json:"priceCents"`
	Published   bool      `json:"published"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FormatPrice renders the course price for display; zero is "Free".
func (c Course) FormatPrice() string {
	if c.PriceCents == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%d.%02d", c.PriceCents/100, c.PriceCents%100)
}

// Query narrows a catalog listing. Zero-value fields match everything.
type Query struct {
	Category string
	Level    string
}

// Catalog returns the published courses matching q, ordered by title.
// Unpublished courses never appear in the public catalog.
func Catalog(list []Course, q Query) []Course {
	out := make([]Course, 0, len(list))
	for _, c := range list {
		if !c.Published {
			continue
		}
		if q.Category != "" && !strings.EqualFold(c.Category, q.Category) {
			continue
		}
		if q.Level != "" && !strings.EqualFold(c.Level, q.Level) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}
