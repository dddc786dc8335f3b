// Package sqlite implements the content store on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/workwAIse/alex-web/pkg/domain"
	"github.com/workwAIse/alex-web/pkg/store"
)

// Store implements store.ContentStore using SQLite.
type Store struct {
	db *sql.DB
}

// Verify interface compliance at compile time.
var _ store.ContentStore = (*Store)(nil)

// New opens (or creates) a SQLite database at the given path and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		tech TEXT NOT NULL DEFAULT '',
		details TEXT NOT NULL DEFAULT '[]',
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_projects_position ON projects(position);

	CREATE TABLE IF NOT EXISTS gems (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		icon_color TEXT NOT NULL DEFAULT '',
		link TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_gems_position ON gems(position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// --- Projects ---

func (s *Store) CreateProject(ctx context.Context, p *domain.Project) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	details, err := json.Marshal(p.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (id, title, link, description, tech, details, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Link, p.Description, p.Tech, string(details), p.Position,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *Store) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	p := &domain.Project{}
	var details string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, link, description, tech, details, position, created_at, updated_at
		 FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Link, &p.Description, &p.Tech, &details, &p.Position,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(details), &p.Details); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, link, description, tech, details, position, created_at, updated_at
		 FROM projects ORDER BY position ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var details string
		if err := rows.Scan(&p.ID, &p.Title, &p.Link, &p.Description, &p.Tech, &details,
			&p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(details), &p.Details); err != nil {
			return nil, fmt.Errorf("decode details for %s: %w", p.ID, err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) UpdateProject(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()
	details, err := json.Marshal(p.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, link = ?, description = ?, tech = ?, details = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Link, p.Description, p.Tech, string(details), p.Position, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project not found: %s", p.ID)
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

// --- Gems ---

func (s *Store) CreateGem(ctx context.Context, g *domain.Gem) error {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO gems (id, title, description, icon, icon_color, link, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.Description, g.Icon, g.IconColor, g.Link, g.Position,
		g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (s *Store) ListGems(ctx context.Context) ([]domain.Gem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, icon, icon_color, link, position, created_at, updated_at
		 FROM gems ORDER BY position ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gems []domain.Gem
	for rows.Next() {
		var g domain.Gem
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Icon, &g.IconColor, &g.Link,
			&g.Position, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		gems = append(gems, g)
	}
	return gems, rows.Err()
}

func (s *Store) DeleteGem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM gems WHERE id = ?`, id)
	return err
}
