package repository

import (
	"context"
	"time"

	"github.com/taskdesk/backend/domain"
)

// NewTask carries the validated, normalized fields for a creation. The
// repository owns identifier generation and timestamp stamping; everything
// else arrives here already defaulted.
type NewTask struct {
	Title       string
	Description *string
	Status      domain.Status
	DueDate     time.Time
}

// TaskPatch describes a partial update. Nil pointers mean "field omitted,
// preserve the stored value". Description clearing is explicit: an omitted
// description leaves both fields zero, a new value sets Description, and an
// explicit null/empty in the request sets ClearDescription.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *domain.Status
	DueDate          *time.Time
}

// Empty reports whether the patch changes nothing beyond updated_at.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription &&
		p.Status == nil && p.DueDate == nil
}

// TaskRepository maps domain operations onto the task store. Absent rows
// surface as domain.ErrTaskNotFound so every caller handles both outcomes.
type TaskRepository interface {
	Create(ctx context.Context, task NewTask) (*domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error)
	Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
}
