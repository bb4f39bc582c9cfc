package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/models"
)

const selectTask = `SELECT id, title, description, deadline, completed, created_at FROM tasks`

// CreateTask persists a new task. The title is trimmed and must not be empty.
func (s *Store) CreateTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, invalid("task title must not be empty")
	}

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	if in.CreatedAt != nil {
		t.CreatedAt = in.CreatedAt.UTC()
	}
	if in.Deadline != nil {
		d := in.Deadline.UTC()
		t.Deadline = &d
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks(id, title, description, deadline, completed, created_at) VALUES(?, ?, ?, ?, 0, ?)`,
		t.ID, t.Title, nullString(t.Description), nullTime(t.Deadline), t.CreatedAt)
	if err != nil {
		return models.Task{}, unavailable("insert task", err)
	}
	s.logger.Debug("task created", "id", t.ID)
	return t, nil
}

// ListTasks returns every task in insertion order.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, selectTask+` ORDER BY rowid`)
	if err != nil {
		return nil, unavailable("list tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, unavailable("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list tasks", err)
	}
	return tasks, nil
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	t, err := scanTask(s.db.QueryRowContext(ctx, selectTask+` WHERE id = ?`, id))
	if isNoRows(err) {
		return models.Task{}, notFound("task")
	}
	if err != nil {
		return models.Task{}, unavailable("get task", err)
	}
	return t, nil
}

// ToggleTask flips the completion flag of a task and returns the new state.
// The flip is a single UPDATE so concurrent toggles never read a stale value.
func (s *Store) ToggleTask(ctx context.Context, id string) (models.Task, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, unavailable("begin toggle", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE tasks SET completed = NOT completed WHERE id = ?`, id)
	if err != nil {
		return models.Task{}, unavailable("toggle task", err)
	}
	ok, err := affectedOne("toggle task", res)
	if err != nil {
		return models.Task{}, err
	}
	if !ok {
		return models.Task{}, notFound("task")
	}

	t, err := scanTask(tx.QueryRowContext(ctx, selectTask+` WHERE id = ?`, id))
	if err != nil {
		return models.Task{}, unavailable("reload task", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Task{}, unavailable("commit toggle", err)
	}
	return t, nil
}

// DeleteTask removes a task by id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return unavailable("delete task", err)
	}
	ok, err := affectedOne("delete task", res)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("task")
	}
	return nil
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		t           models.Task
		description sql.NullString
		deadline    sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &deadline, &t.Completed, &t.CreatedAt); err != nil {
		return models.Task{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	if description.Valid {
		t.Description = &description.String
	}
	if deadline.Valid {
		d := deadline.Time.UTC()
		t.Deadline = &d
	}
	return t, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
