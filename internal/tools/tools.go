// ABOUTME: AI tools directory domain model with in-memory filter and sort
// ABOUTME: Backs the explore view of the tools catalog

// Package tools models the AI tools directory and the client-side filtering
// and sorting the explore view performs over an in-memory tool list.
package tools

import (
	"sort"
	"strings"
	"time"
)

// Pricing tiers a tool can be listed under.
const (
	PricingFree     = "free"
	PricingFreemium = "freemium"
	PricingPaid     = "paid"
)

// Tool is a single directory entry.
type Tool struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Pricing     string    `json:"pricing"`
	Description string    `json:"description"`
	Popularity  int       `json:"popularity"`
	AddedAt     time.Time `json:"addedAt"`
	Tags        []string  `json:"tags,omitempty"`
}

// Query narrows a tool list. Zero-value fields match everything.
type Query struct {
	Search   string
	Category string
	Pricing  string
}

// Filter returns the tools matching q, preserving input order. Search is a
// case-insensitive substring match over name, description, and tags;
// category and pricing are exact (case-insensitive) matches.
func Filter(list []Tool, q Query) []Tool {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Tool, 0, len(list))
	for _, t := range list {
		if q.Category != "" && !strings.EqualFold(t.Category, q.Category) {
			continue
		}
		if q.Pricing != "" && !strings.EqualFold(t.Pricing, q.Pricing) {
			continue
		}
		if search != "" && !matches(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matches(t Tool, search string) bool {
	if strings.Contains(strings.ToLower(t.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPopularity SortKey = "popularity"
	SortByNewest     SortKey = "newest"
)

// Sort orders list in place. Name sorts ascending (case-insensitive);
// popularity and newest sort descending. Unknown keys fall back to name.
func Sort(list []Tool, key SortKey) {
	switch key {
	case SortByPopularity:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Popularity > list[j].Popularity
		})
	case SortByNewest:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].AddedAt.After(list[j].AddedAt)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
}

// Categories returns the distinct categories present in list, sorted.
func Categories(list []Tool) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range list {
		if t.Category == "" {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}
