package task

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taskdesk/backend/domain"
	"github.com/taskdesk/backend/repository"
)

const titleMaxLength = 255

// Accepted due date layouts. The stored form is always RFC 3339 UTC.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CreateInput is the raw field set of a creation request. Optional fields
// remember whether their key was present at all.
type CreateInput struct {
	Title       domain.Optional
	Description domain.Optional
	Status      domain.Optional
	DueDate     domain.Optional
}

// UpdateInput is the raw field set of a partial update.
type UpdateInput struct {
	Title       domain.Optional
	Description domain.Optional
	Status      domain.Optional
	DueDate     domain.Optional
}

// StatusInput is the raw field set of a status-only update.
type StatusInput struct {
	Status domain.Optional
}

// ValidateCreate checks a creation payload and returns either the normalized
// fields or the full list of violations. It never short-circuits on the
// first failure and never touches storage.
func ValidateCreate(in CreateInput) (repository.NewTask, []string) {
	var errs []string
	var fields repository.NewTask

	title := strings.TrimSpace(in.Title.String())
	switch {
	case !in.Title.Present() || title == "":
		errs = append(errs, "Title is required and must be a non-empty string")
	case utf8.RuneCountInString(title) > titleMaxLength:
		errs = append(errs, "Title must be 255 characters or fewer")
	default:
		fields.Title = title
	}

	fields.Description = normalizeDescription(in.Description)

	fields.Status = domain.StatusTodo
	if in.Status.Present() && in.Status.Value != "" {
		status := domain.Status(in.Status.Value)
		if !status.Valid() {
			errs = append(errs, "Status must be one of: "+domain.StatusList())
		} else {
			fields.Status = status
		}
	}

	if due := strings.TrimSpace(in.DueDate.String()); !in.DueDate.Present() || due == "" {
		errs = append(errs, "Due date is required")
	} else if parsed, ok := parseDueDate(due); !ok {
		errs = append(errs, "Due date must be a valid date/time")
	} else {
		fields.DueDate = parsed
	}

	if len(errs) > 0 {
		return repository.NewTask{}, errs
	}
	return fields, nil
}

// ValidateStatusUpdate checks a status-only update payload.
func ValidateStatusUpdate(in StatusInput) (domain.Status, []string) {
	if !in.Status.Present() || in.Status.Value == "" {
		return "", []string{"Status is required"}
	}
	status := domain.Status(in.Status.Value)
	if !status.Valid() {
		return "", []string{"Status must be one of: " + domain.StatusList()}
	}
	return status, nil
}

// ValidateUpdate checks a partial update: every field is optional, but a
// field that is present must satisfy the same rule as on creation. An
// omitted key preserves the stored value; an explicit null or empty
// description clears it.
func ValidateUpdate(in UpdateInput) (repository.TaskPatch, []string) {
	var errs []string
	var patch repository.TaskPatch

	if in.Title.Set {
		title := strings.TrimSpace(in.Title.String())
		switch {
		case in.Title.Null || title == "":
			errs = append(errs, "Title must be a non-empty string")
		case utf8.RuneCountInString(title) > titleMaxLength:
			errs = append(errs, "Title must be 255 characters or fewer")
		default:
			patch.Title = &title
		}
	}

	if in.Description.Set {
		if desc := normalizeDescription(in.Description); desc != nil {
			patch.Description = desc
		} else {
			patch.ClearDescription = true
		}
	}

	if in.Status.Present() && in.Status.Value != "" {
		status := domain.Status(in.Status.Value)
		if !status.Valid() {
			errs = append(errs, "Status must be one of: "+domain.StatusList())
		} else {
			patch.Status = &status
		}
	}

	if in.DueDate.Set {
		due := strings.TrimSpace(in.DueDate.String())
		if parsed, ok := parseDueDate(due); in.DueDate.Null || due == "" || !ok {
			errs = append(errs, "Due date must be a valid date/time")
		} else {
			patch.DueDate = &parsed
		}
	}

	if len(errs) > 0 {
		return repository.TaskPatch{}, errs
	}
	return patch, nil
}

// normalizeDescription trims a present description and collapses null or
// blank values to nil (stored as NULL).
func normalizeDescription(opt domain.Optional) *string {
	if !opt.Present() {
		return nil
	}
	trimmed := strings.TrimSpace(opt.Value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func parseDueDate(value string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
