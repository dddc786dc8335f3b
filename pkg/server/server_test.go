package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/workwAIse/alex-web/pkg/domain"
	"github.com/workwAIse/alex-web/pkg/store"
)

// stubContent is an in-memory ContentStore for handler tests.
type stubContent struct {
	projects []domain.Project
	gems     []domain.Gem
	listErr  error
}

var _ store.ContentStore = (*stubContent)(nil)

func (c *stubContent) CreateProject(ctx context.Context, p *domain.Project) error {
	c.projects = append(c.projects, *p)
	return nil
}

func (c *stubContent) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	for i := range c.projects {
		if c.projects[i].ID == id {
			return &c.projects[i], nil
		}
	}
	return nil, errors.New("project not found: " + id)
}

func (c *stubContent) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return c.projects, c.listErr
}

func (c *stubContent) UpdateProject(ctx context.Context, p *domain.Project) error { return nil }
func (c *stubContent) DeleteProject(ctx context.Context, id string) error         { return nil }

func (c *stubContent) CreateGem(ctx context.Context, g *domain.Gem) error {
	c.gems = append(c.gems, *g)
	return nil
}

func (c *stubContent) ListGems(ctx context.Context) ([]domain.Gem, error) {
	return c.gems, c.listErr
}

func (c *stubContent) DeleteGem(ctx context.Context, id string) error { return nil }

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func TestListProjects(t *testing.T) {
	content := &stubContent{projects: []domain.Project{
		{ID: "p-1", Title: "First"},
		{ID: "p-2", Title: "Second"},
	}}
	s := New(content, nil, testDistFS)

	rec := get(t, s, "/api/projects")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var projects []domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(projects) != 2 || projects[0].Title != "First" {
		t.Errorf("projects = %v", projects)
	}
}

func TestListProjectsEmptyIsJSONArray(t *testing.T) {
	s := New(&stubContent{}, nil, testDistFS)

	rec := get(t, s, "/api/projects")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body = %q, want []", got)
	}
}

func TestListGems(t *testing.T) {
	content := &stubContent{gems: []domain.Gem{{ID: "g-1", Title: "Sport Lover"}}}
	s := New(content, nil, testDistFS)

	rec := get(t, s, "/api/gems")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var gems []domain.Gem
	if err := json.Unmarshal(rec.Body.Bytes(), &gems); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(gems) != 1 || gems[0].Title != "Sport Lover" {
		t.Errorf("gems = %v", gems)
	}
}

func TestListProjectsStoreErrorReturns500(t *testing.T) {
	s := New(&stubContent{listErr: errors.New("db locked")}, nil, testDistFS)

	rec := get(t, s, "/api/projects")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestStaticServesIndexFallback(t *testing.T) {
	s := New(&stubContent{}, nil, testDistFS)

	for _, path := range []string{"/", "/impressum"} {
		rec := get(t, s, path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<html") {
			t.Errorf("GET %s: body does not look like index.html", path)
		}
	}
}

func TestUnknownAPIPathIs404(t *testing.T) {
	s := New(&stubContent{}, nil, testDistFS)

	rec := get(t, s, "/api/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
