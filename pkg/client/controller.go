package client

import (
	"context"
	"sync"

	"github.com/taskdesk/backend/domain"
)

// Filter selects which statuses the derived view shows.
type Filter string

const (
	FilterAll        Filter = "ALL"
	FilterTodo       Filter = Filter(domain.StatusTodo)
	FilterInProgress Filter = Filter(domain.StatusInProgress)
	FilterDone       Filter = Filter(domain.StatusDone)
)

// ConfirmFunc asks the user to confirm a destructive action. Returning false
// aborts the action before any request is sent.
type ConfirmFunc func(id string) bool

// Controller holds the client-side task list state and orchestrates the
// round-trips behind it. Mutations are never applied optimistically: each one
// goes to the server first, then Refresh replaces the local list wholesale.
type Controller struct {
	api     API
	confirm ConfirmFunc

	mu      sync.Mutex
	tasks   []domain.Task
	filter  Filter
	editing string
	lastErr string
	loading bool
}

// NewController builds a Controller. confirm may be nil, in which case
// deletions proceed without confirmation.
func NewController(api API, confirm ConfirmFunc) *Controller {
	return &Controller{
		api:     api,
		confirm: confirm,
		filter:  FilterAll,
	}
}

// Refresh fetches the full list and replaces local state. On transport
// failure the previous list stays intact and the error surfaces to the user.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	tasks, err := c.api.ListTasks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = "Failed to load tasks. Make sure the backend server is running."
		return err
	}
	c.tasks = tasks
	c.lastErr = ""
	return nil
}

// Create sends a creation request and refreshes on success.
func (c *Controller) Create(ctx context.Context, task NewTask) error {
	if _, err := c.api.CreateTask(ctx, task); err != nil {
		c.setError(err)
		return err
	}
	return c.Refresh(ctx)
}

// UpdateFields sends a partial update, refreshes, and clears the
// edit-in-progress marker on success.
func (c *Controller) UpdateFields(ctx context.Context, id string, patch TaskPatch) error {
	if _, err := c.api.UpdateTask(ctx, id, patch); err != nil {
		c.setError(err)
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		return err
	}
	c.ClearEditing()
	return nil
}

// SetStatus sends a status-only update and refreshes on success.
func (c *Controller) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if _, err := c.api.UpdateTaskStatus(ctx, id, status); err != nil {
		c.setError(err)
		return err
	}
	return c.Refresh(ctx)
}

// Remove deletes a task after user confirmation. A declined confirmation is
// not an error; no request is sent.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if c.confirm != nil && !c.confirm(id) {
		return nil
	}
	if err := c.api.DeleteTask(ctx, id); err != nil {
		c.setError(err)
		return err
	}
	return c.Refresh(ctx)
}

// DerivedView recomputes the filtered task list. Pure function of
// (tasks, filter); no caching.
func (c *Controller) DerivedView() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := make([]domain.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if c.filter == FilterAll || t.Status == domain.Status(c.filter) {
			view = append(view, t)
		}
	}
	return view
}

// Tasks returns a copy of the unfiltered list.
func (c *Controller) Tasks() []domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// SetFilter switches the active status filter.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

// Filter returns the active status filter.
func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetEditing marks the task currently being edited.
func (c *Controller) SetEditing(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = id
}

// ClearEditing clears the edit-in-progress marker.
func (c *Controller) ClearEditing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = ""
}

// Editing returns the id of the task being edited, empty when none.
func (c *Controller) Editing() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// Err returns the last user-facing error message, empty when none.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Loading reports whether a refresh is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err.Error()
}
