// Package store defines persistence interfaces for the site's portfolio
// content. Chat conversations are deliberately not stored here; the
// upstream assistant thread is the only durable conversation state.
package store

import (
	"context"

	"github.com/workwAIse/alex-web/pkg/domain"
)

// ContentStore manages the portfolio content served by the public API.
type ContentStore interface {
	// CreateProject persists a new project. The ID field must be set by the caller.
	CreateProject(ctx context.Context, p *domain.Project) error

	// GetProject retrieves a project by its unique ID.
	// Returns an error if the project does not exist.
	GetProject(ctx context.Context, id string) (*domain.Project, error)

	// ListProjects returns all projects, ordered by position ascending.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// UpdateProject persists changes to an existing project.
	UpdateProject(ctx context.Context, p *domain.Project) error

	// DeleteProject removes a project by ID.
	DeleteProject(ctx context.Context, id string) error

	// CreateGem persists a new gem. The ID field must be set by the caller.
	CreateGem(ctx context.Context, g *domain.Gem) error

	// ListGems returns all gems, ordered by position ascending.
	ListGems(ctx context.Context) ([]domain.Gem, error)

	// DeleteGem removes a gem by ID.
	DeleteGem(ctx context.Context, id string) error
}
