package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/workwAIse/alex-web/pkg/domain"
	"github.com/workwAIse/alex-web/pkg/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProjectCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &domain.Project{
		ID:          "p-1",
		Title:       "Test Project",
		Link:        "https://example.com",
		Description: "A test project.",
		Tech:        "Go",
		Details:     []string{"first detail", "second detail"},
		Position:    2,
	}

	// Create
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	// Get
	got, err := s.GetProject(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Title != "Test Project" {
		t.Errorf("Title = %q, want %q", got.Title, "Test Project")
	}
	if len(got.Details) != 2 || got.Details[1] != "second detail" {
		t.Errorf("Details = %v, want two entries", got.Details)
	}

	// Update
	got.Title = "Updated Title"
	if err := s.UpdateProject(ctx, got); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	got2, _ := s.GetProject(ctx, "p-1")
	if got2.Title != "Updated Title" {
		t.Errorf("after update: Title = %q, want %q", got2.Title, "Updated Title")
	}

	// List
	projects, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("ListProjects len = %d, want 1", len(projects))
	}

	// Delete
	if err := s.DeleteProject(ctx, "p-1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := s.GetProject(ctx, "p-1"); err == nil {
		t.Error("expected error after delete, got nil")
	}
}

func TestListProjectsOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, title := range []string{"third", "first", "second"} {
		pos := map[string]int{"first": 0, "second": 1, "third": 2}[title]
		p := &domain.Project{ID: uuid.New().String(), Title: title, Position: pos}
		if err := s.CreateProject(ctx, p); err != nil {
			t.Fatalf("CreateProject %d: %v", i, err)
		}
	}

	projects, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if projects[i].Title != w {
			t.Errorf("projects[%d].Title = %q, want %q", i, projects[i].Title, w)
		}
	}
}

func TestGemCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	g := &domain.Gem{
		ID:          "g-1",
		Title:       "Test Gem",
		Description: "A test gem.",
		Icon:        "sparkles",
		IconColor:   "#A78BFA",
	}
	if err := s.CreateGem(ctx, g); err != nil {
		t.Fatalf("CreateGem: %v", err)
	}

	gems, err := s.ListGems(ctx)
	if err != nil {
		t.Fatalf("ListGems: %v", err)
	}
	if len(gems) != 1 || gems[0].Icon != "sparkles" {
		t.Errorf("ListGems = %v, want one gem with sparkles icon", gems)
	}

	if err := s.DeleteGem(ctx, "g-1"); err != nil {
		t.Fatalf("DeleteGem: %v", err)
	}
	gems, _ = s.ListGems(ctx)
	if len(gems) != 0 {
		t.Errorf("ListGems after delete len = %d, want 0", len(gems))
	}
}

func TestSeedDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := store.SeedDefaults(ctx, s); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	projects, _ := s.ListProjects(ctx)
	gems, _ := s.ListGems(ctx)
	if len(projects) == 0 || len(gems) == 0 {
		t.Fatalf("seed produced %d projects, %d gems; want both non-empty", len(projects), len(gems))
	}

	// Seeding twice must not duplicate content.
	if err := store.SeedDefaults(ctx, s); err != nil {
		t.Fatalf("second SeedDefaults: %v", err)
	}
	again, _ := s.ListProjects(ctx)
	if len(again) != len(projects) {
		t.Errorf("re-seed changed project count from %d to %d", len(projects), len(again))
	}
}
