package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdesk/backend/domain"
	"github.com/taskdesk/backend/repository"
)

// Timestamps and due dates are stored as RFC 3339 UTC text. Second precision
// keeps the stored strings ordered the same way the instants are.
const timeLayout = time.RFC3339

type taskRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewTaskRepository returns a SQLite-backed implementation of TaskRepository.
func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db, now: time.Now}
}

const taskColumns = "id, title, description, status, due_date, created_at, updated_at"

func (r *taskRepository) Create(ctx context.Context, task repository.NewTask) (*domain.Task, error) {
	id := uuid.NewString()
	now := r.now().UTC().Truncate(time.Second)

	status := task.Status
	if status == "" {
		status = domain.StatusTodo
	}

	var description interface{}
	if task.Description != nil {
		description = *task.Description
	}

	const query = `
	INSERT INTO tasks (id, title, description, status, due_date, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		id,
		task.Title,
		description,
		string(status),
		task.DueDate.UTC().Format(timeLayout),
		now.Format(timeLayout),
		now.Format(timeLayout),
	); err != nil {
		return nil, err
	}

	// Read-back so server-assigned fields are authoritative, not echoed input.
	return r.FindByID(ctx, id)
}

func (r *taskRepository) FindAll(ctx context.Context) ([]domain.Task, error) {
	// rowid breaks created_at ties for rows created within the same second,
	// keeping newest-first stable.
	query := fmt.Sprintf("SELECT %s FROM tasks ORDER BY created_at DESC, rowid DESC", taskColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = ?", taskColumns)
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	now := r.now().UTC().Truncate(time.Second)

	const query = `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, string(status), now.Format(timeLayout), id)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrTaskNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *taskRepository) Update(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = ?", taskColumns)
	existing, err := scanTask(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	merged := *existing
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	switch {
	case patch.ClearDescription:
		merged.Description = nil
	case patch.Description != nil:
		merged.Description = patch.Description
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.DueDate != nil {
		merged.DueDate = *patch.DueDate
	}
	merged.UpdatedAt = r.now().UTC().Truncate(time.Second)

	var description interface{}
	if merged.Description != nil {
		description = *merged.Description
	}

	const update = `
	UPDATE tasks
	SET title = ?, description = ?, status = ?, due_date = ?, updated_at = ?
	WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, update,
		merged.Title,
		description,
		string(merged.Status),
		merged.DueDate.UTC().Format(timeLayout),
		merged.UpdatedAt.Format(timeLayout),
		id,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *taskRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
		dueDate     string
		createdAt   string
		updatedAt   string
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&dueDate,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	task.Status = domain.Status(status)

	var err error
	if task.DueDate, err = time.Parse(timeLayout, dueDate); err != nil {
		return nil, fmt.Errorf("parsing due_date %q: %w", dueDate, err)
	}
	if task.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	if task.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at %q: %w", updatedAt, err)
	}

	return &task, nil
}
