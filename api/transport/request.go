package transport

import "github.com/taskdesk/backend/domain"

// TaskRequest is the body of both POST /api/tasks and PUT /api/tasks/{id}.
// Every field is an Optional so the handlers can tell an omitted key from an
// explicit null; the validators decide what each state means per operation.
type TaskRequest struct {
	Title       domain.Optional `json:"title"`
	Description domain.Optional `json:"description"`
	Status      domain.Optional `json:"status"`
	DueDate     domain.Optional `json:"due_date"`
}

// StatusRequest is the body of PATCH /api/tasks/{id}/status.
type StatusRequest struct {
	Status domain.Optional `json:"status"`
}
