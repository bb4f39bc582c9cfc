package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

const selectMember = `SELECT id, name, role, email, profile_picture, projects, created_at FROM team_members`

// CreateMember persists a new team member. Only the name is mandatory.
func (s *Store) CreateMember(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return models.TeamMember{}, invalid("member name must not be empty")
	}
	m.ID = uuid.NewString()
	m.Role = strings.TrimSpace(m.Role)
	m.Email = strings.TrimSpace(m.Email)
	m.CreatedAt = s.now().UTC()
	if m.Projects == nil {
		m.Projects = []string{}
	}

	projects, err := encodeIDs(m.Projects)
	if err != nil {
		return models.TeamMember{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `INSERT INTO team_members(id, name, role, email, profile_picture, projects, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Role, m.Email, m.ProfilePicture, projects, m.CreatedAt)
	if err != nil {
		return models.TeamMember{}, unavailable("insert member", err)
	}
	return m, nil
}

// ListMembers returns all team members in insertion order.
func (s *Store) ListMembers(ctx context.Context) ([]models.TeamMember, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, selectMember+` ORDER BY rowid`)
	if err != nil {
		return nil, unavailable("list members", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, unavailable("scan member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list members", err)
	}
	return members, nil
}

// GetMember fetches a single team member by id.
func (s *Store) GetMember(ctx context.Context, id string) (models.TeamMember, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	m, err := scanMember(s.db.QueryRowContext(ctx, selectMember+` WHERE id = ?`, id))
	if isNoRows(err) {
		return models.TeamMember{}, notFound("member")
	}
	if err != nil {
		return models.TeamMember{}, unavailable("get member", err)
	}
	return m, nil
}

// UpdateMember applies the non-nil fields of patch and returns the result.
func (s *Store) UpdateMember(ctx context.Context, id string, patch models.TeamMemberPatch) (models.TeamMember, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.TeamMember{}, invalid("member name must not be empty")
	}

	current, err := s.GetMember(ctx, id)
	if err != nil {
		return models.TeamMember{}, err
	}
	if patch.Name != nil {
		current.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Role != nil {
		current.Role = strings.TrimSpace(*patch.Role)
	}
	if patch.Email != nil {
		current.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.ProfilePicture != nil {
		current.ProfilePicture = *patch.ProfilePicture
	}
	if patch.Projects != nil {
		current.Projects = *patch.Projects
	}

	projects, err := encodeIDs(current.Projects)
	if err != nil {
		return models.TeamMember{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `UPDATE team_members SET name = ?, role = ?, email = ?, profile_picture = ?, projects = ? WHERE id = ?`,
		current.Name, current.Role, current.Email, current.ProfilePicture, projects, id)
	if err != nil {
		return models.TeamMember{}, unavailable("update member", err)
	}
	ok, err := affectedOne("update member", res)
	if err != nil {
		return models.TeamMember{}, err
	}
	if !ok {
		return models.TeamMember{}, notFound("member")
	}
	return current, nil
}

// DeleteMember removes a member and returns the record as it was.
func (s *Store) DeleteMember(ctx context.Context, id string) (models.TeamMember, error) {
	current, err := s.GetMember(ctx, id)
	if err != nil {
		return models.TeamMember{}, err
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return models.TeamMember{}, unavailable("delete member", err)
	}
	ok, err := affectedOne("delete member", res)
	if err != nil {
		return models.TeamMember{}, err
	}
	if !ok {
		return models.TeamMember{}, notFound("member")
	}
	return current, nil
}

func scanMember(row rowScanner) (models.TeamMember, error) {
	var (
		m        models.TeamMember
		projects string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Email, &m.ProfilePicture, &projects, &m.CreatedAt); err != nil {
		return models.TeamMember{}, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	ids, err := decodeIDs(projects)
	if err != nil {
		return models.TeamMember{}, err
	}
	m.Projects = ids
	return m, nil
}

// encodeIDs stores a list of references as a JSON array column.
func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encode ids: %w", err)
	}
	return string(raw), nil
}

func decodeIDs(raw string) ([]string, error) {
	ids := []string{}
	if raw == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode ids: %w", err)
	}
	return ids, nil
}
