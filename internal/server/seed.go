// ABOUTME: Development seed data for the reference backend
// ABOUTME: Populates demo tools, courses, and a demo account when empty

package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/luminalabs/academy/internal/courses"
	"github.com/luminalabs/academy/internal/tools"
)

// DemoEmail and DemoPassword are the credentials of the seeded demo account.
const (
	DemoEmail    = "demo@academy.example"
	DemoPassword = "academy-demo"
)

// Seed populates the store with demo data when it is empty. Safe to call on
// every startup.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	existing, err := s.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("checking seed state: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	demoTools := []tools.Tool{
		{ID: uuid.New().String(), Name: "DraftWriter", Category: "writing", Pricing: tools.PricingFreemium, Description: "Long-form writing assistant with tone controls.", Popularity: 82, AddedAt: now.AddDate(0, -3, 0), Tags: []string{"copy", "blog"}},
		{ID: uuid.New().String(), Name: "PixelForge", Category: "image", Pricing: tools.PricingPaid, Description: "Image generation studio with style presets.", Popularity: 95, AddedAt: now.AddDate(0, -1, 0), Tags: []string{"art", "design"}},
		{ID: uuid.New().String(), Name: "CodePilot", Category: "coding", Pricing: tools.PricingFree, Description: "Editor autocomplete trained on open source.", Popularity: 71, AddedAt: now.AddDate(0, 0, -10), Tags: []string{"dev"}},
		{ID: uuid.New().String(), Name: "ClipSummarizer", Category: "video", Pricing: tools.PricingFreemium, Description: "Summarizes long recordings into chapters.", Popularity: 54, AddedAt: now.AddDate(0, -2, 0), Tags: []string{"meetings", "notes"}},
	}
	for i := range demoTools {
		if err := s.SaveTool(ctx, &demoTools[i]); err != nil {
			return err
		}
	}

	demoCourses := []courses.Course{
		{ID: uuid.New().String(), Title: "Intro to Prompting", Category: "ai", Level: courses.LevelBeginner, PriceCents: 0, Published: true, Description: "Start here: how to get reliable answers out of language models.", CreatedAt: now.AddDate(0, -4, 0)},
		{ID: uuid.New().String(), Title: "Advanced RAG Systems", Category: "ai", Level: courses.LevelAdvanced, PriceCents: 14900, Published: true, Description: "Retrieval pipelines, chunking strategies, and evaluation.", CreatedAt: now.AddDate(0, -2, 0)},
		{ID: uuid.New().String(), Title: "Marketing Analytics", Category: "marketing", Level: courses.LevelIntermediate, PriceCents: 9900, Published: true, Description: "Measure campaigns without fooling yourself.", CreatedAt: now.AddDate(0, -1, 0)},
	}
	for i := range demoCourses {
		if err := s.SaveCourse(ctx, &demoCourses[i]); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	demo := &User{
		ID:           uuid.New().String(),
		Name:         "Demo User",
		Email:        DemoEmail,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := s.CreateUser(ctx, demo); err != nil && !errors.Is(err, ErrDuplicateEmail) {
		return err
	}

	s.logger.Info("seeded demo data", "tools", len(demoTools), "courses", len(demoCourses))
	return nil
}
