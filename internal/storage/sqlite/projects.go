package sqlite

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

const selectProject = `SELECT id, title, description, owner_id, members, created_at FROM projects`

// CreateProject persists a new project with a mandatory title.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return models.Project{}, invalid("project title must not be empty")
	}
	p.ID = uuid.NewString()
	p.Description = strings.TrimSpace(p.Description)
	p.CreatedAt = s.now().UTC()
	if p.Members == nil {
		p.Members = []string{}
	}

	members, err := encodeIDs(p.Members)
	if err != nil {
		return models.Project{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `INSERT INTO projects(id, title, description, owner_id, members, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.OwnerID, members, p.CreatedAt)
	if err != nil {
		return models.Project{}, unavailable("insert project", err)
	}
	return p, nil
}

// ListProjects retrieves all projects ordered by creation.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, selectProject+` ORDER BY rowid`)
	if err != nil {
		return nil, unavailable("list projects", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, unavailable("scan project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list projects", err)
	}
	return projects, nil
}

// GetProject fetches a single project by id.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	p, err := scanProject(s.db.QueryRowContext(ctx, selectProject+` WHERE id = ?`, id))
	if isNoRows(err) {
		return models.Project{}, notFound("project")
	}
	if err != nil {
		return models.Project{}, unavailable("get project", err)
	}
	return p, nil
}

// UpdateProject applies the non-nil fields of patch.
func (s *Store) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Project{}, invalid("project title must not be empty")
	}

	current, err := s.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if patch.Title != nil {
		current.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		current.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.OwnerID != nil {
		current.OwnerID = *patch.OwnerID
	}
	if patch.Members != nil {
		current.Members = *patch.Members
	}

	members, err := encodeIDs(current.Members)
	if err != nil {
		return models.Project{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE projects SET title = ?, description = ?, owner_id = ?, members = ? WHERE id = ?`,
		current.Title, current.Description, current.OwnerID, members, id)
	if err != nil {
		return models.Project{}, unavailable("update project", err)
	}
	ok, err := affectedOne("update project", res)
	if err != nil {
		return models.Project{}, err
	}
	if !ok {
		return models.Project{}, notFound("project")
	}
	return current, nil
}

// DeleteProject removes a project. Members keep their references.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return unavailable("delete project", err)
	}
	ok, err := affectedOne("delete project", res)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("project")
	}
	return nil
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p       models.Project
		members string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.OwnerID, &members, &p.CreatedAt); err != nil {
		return models.Project{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	ids, err := decodeIDs(members)
	if err != nil {
		return models.Project{}, err
	}
	p.Members = ids
	return p, nil
}
