package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/backend/domain"
	"github.com/taskdesk/backend/repository"
)

// fakeRepo records whether any store operation was reached.
type fakeRepo struct {
	repository.TaskRepository

	touched   bool
	deleteOK  bool
	deleteErr error
}

func (f *fakeRepo) Create(ctx context.Context, task repository.NewTask) (*domain.Task, error) {
	f.touched = true
	return &domain.Task{ID: "1", Title: task.Title, Status: task.Status}, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	f.touched = true
	return &domain.Task{ID: id, Status: status}, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	f.touched = true
	return &domain.Task{ID: id}, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	f.touched = true
	return f.deleteOK, f.deleteErr
}

func TestValidationShortCircuitsBeforeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := New(repo, nil)

		_, err := uc.Create(ctx, CreateInput{})
		vErr, ok := domain.AsValidationError(err)
		require.True(t, ok)
		assert.NotEmpty(t, vErr.Errors)
		assert.False(t, repo.touched)
	})

	t.Run("status update", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := New(repo, nil)

		_, err := uc.UpdateStatus(ctx, "1", StatusInput{Status: domain.OptionalOf("NOPE")})
		_, ok := domain.AsValidationError(err)
		require.True(t, ok)
		assert.False(t, repo.touched)
	})

	t.Run("partial update", func(t *testing.T) {
		repo := &fakeRepo{}
		uc := New(repo, nil)

		_, err := uc.Update(ctx, "1", UpdateInput{DueDate: domain.OptionalOf("never")})
		_, ok := domain.AsValidationError(err)
		require.True(t, ok)
		assert.False(t, repo.touched)
	})
}

func TestDeleteMapsMissingRowToNotFound(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row", func(t *testing.T) {
		uc := New(&fakeRepo{deleteOK: false}, nil)
		err := uc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("removed row", func(t *testing.T) {
		uc := New(&fakeRepo{deleteOK: true}, nil)
		assert.NoError(t, uc.Delete(ctx, "1"))
	})
}
