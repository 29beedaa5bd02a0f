package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/backend/domain"
	"github.com/taskdesk/backend/internal/config"
	sqliteInfra "github.com/taskdesk/backend/internal/infrastructure/sqlite"
	"github.com/taskdesk/backend/repository"
)

// setupRepo opens a fresh database under a temp dir and migrates the schema.
func setupRepo(t *testing.T) *taskRepository {
	t.Helper()

	db, err := sqliteInfra.Open(config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "tasks.db"),
		BusyTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqliteInfra.Migrate(db, nil))

	return &taskRepository{db: db, now: time.Now}
}

func dueDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	t.Run("assigns id and identical timestamps", func(t *testing.T) {
		created, err := repo.Create(ctx, repository.NewTask{
			Title:   "Test Task",
			DueDate: dueDate(t, "2026-03-01T12:00:00Z"),
		})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Test Task", created.Title)
		assert.Nil(t, created.Description)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
		assert.True(t, created.DueDate.Equal(dueDate(t, "2026-03-01T12:00:00Z")))
	})

	t.Run("defaults status to TODO", func(t *testing.T) {
		created, err := repo.Create(ctx, repository.NewTask{
			Title:   "No status",
			DueDate: dueDate(t, "2026-03-01T12:00:00Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusTodo, created.Status)
	})

	t.Run("persists supplied fields", func(t *testing.T) {
		created, err := repo.Create(ctx, repository.NewTask{
			Title:       "Full task",
			Description: strPtr("some notes"),
			Status:      domain.StatusInProgress,
			DueDate:     dueDate(t, "2026-06-15T09:30:00Z"),
		})
		require.NoError(t, err)

		fetched, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, fetched.Status)
		require.NotNil(t, fetched.Description)
		assert.Equal(t, "some notes", *fetched.Description)
	})
}

func TestFindAll(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	t.Run("empty store yields empty slice", func(t *testing.T) {
		tasks, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("orders newest first", func(t *testing.T) {
		base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
		for i, title := range []string{"first", "second", "third"} {
			offset := time.Duration(i) * time.Minute
			repo.now = func() time.Time { return base.Add(offset) }
			_, err := repo.Create(ctx, repository.NewTask{
				Title:   title,
				DueDate: dueDate(t, "2026-03-01T12:00:00Z"),
			})
			require.NoError(t, err)
		}
		repo.now = time.Now

		tasks, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "third", tasks[0].Title)
		assert.Equal(t, "second", tasks[1].Title)
		assert.Equal(t, "first", tasks[2].Title)
	})
}

func TestFindByID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	t.Run("unknown id yields not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "no-such-id")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("round-trips a created task", func(t *testing.T) {
		created, err := repo.Create(ctx, repository.NewTask{
			Title:   "X",
			DueDate: dueDate(t, "2026-03-01T12:00:00Z"),
		})
		require.NoError(t, err)

		fetched, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "X", fetched.Title)
		assert.True(t, fetched.DueDate.Equal(dueDate(t, "2026-03-01T12:00:00Z")))
	})
}

func TestUpdateStatus(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	t.Run("unknown id yields not found", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, "no-such-id", domain.StatusDone)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("changes only status and updated_at", func(t *testing.T) {
		created, err := repo.Create(ctx, repository.NewTask{
			Title:       "Track me",
			Description: strPtr("keep this"),
			DueDate:     dueDate(t, "2026-03-01T12:00:00Z"),
		})
		require.NoError(t, err)

		repo.now = func() time.Time { return created.CreatedAt.Add(2 * time.Second) }
		defer func() { repo.now = time.Now }()

		updated, err := repo.UpdateStatus(ctx, created.ID, domain.StatusInProgress)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusInProgress, updated.Status)
		assert.Equal(t, created.Title, updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "keep this", *updated.Description)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("repeating the same update is idempotent", func(t *testing.T) {
		created, err := repo.Create(ctx, repository.NewTask{
			Title:   "Twice",
			DueDate: dueDate(t, "2026-03-01T12:00:00Z"),
		})
		require.NoError(t, err)

		first, err := repo.UpdateStatus(ctx, created.ID, domain.StatusDone)
		require.NoError(t, err)
		second, err := repo.UpdateStatus(ctx, created.ID, domain.StatusDone)
		require.NoError(t, err)

		assert.Equal(t, first.Status, second.Status)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	})
}

func TestUpdate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	newTask := func(t *testing.T) *domain.Task {
		t.Helper()
		created, err := repo.Create(ctx, repository.NewTask{
			Title:       "Original",
			Description: strPtr("original notes"),
			Status:      domain.StatusTodo,
			DueDate:     dueDate(t, "2026-03-01T12:00:00Z"),
		})
		require.NoError(t, err)
		return created
	}

	t.Run("unknown id yields not found", func(t *testing.T) {
		title := "anything"
		_, err := repo.Update(ctx, "no-such-id", repository.TaskPatch{Title: &title})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("omitted fields retain prior values", func(t *testing.T) {
		created := newTask(t)
		title := "Renamed"

		updated, err := repo.Update(ctx, created.ID, repository.TaskPatch{Title: &title})
		require.NoError(t, err)

		assert.Equal(t, "Renamed", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "original notes", *updated.Description)
		assert.Equal(t, created.Status, updated.Status)
		assert.True(t, updated.DueDate.Equal(created.DueDate))
	})

	t.Run("explicit clear removes description", func(t *testing.T) {
		created := newTask(t)

		updated, err := repo.Update(ctx, created.ID, repository.TaskPatch{ClearDescription: true})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
	})

	t.Run("updated_at always refreshed", func(t *testing.T) {
		created := newTask(t)
		repo.now = func() time.Time { return created.CreatedAt.Add(3 * time.Second) }
		defer func() { repo.now = time.Now }()

		updated, err := repo.Update(ctx, created.ID, repository.TaskPatch{})
		require.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("all fields replaced", func(t *testing.T) {
		created := newTask(t)
		title := "Rewritten"
		desc := "new notes"
		status := domain.StatusDone
		due := dueDate(t, "2026-07-01T08:00:00Z")

		updated, err := repo.Update(ctx, created.ID, repository.TaskPatch{
			Title:       &title,
			Description: &desc,
			Status:      &status,
			DueDate:     &due,
		})
		require.NoError(t, err)

		assert.Equal(t, "Rewritten", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "new notes", *updated.Description)
		assert.Equal(t, domain.StatusDone, updated.Status)
		assert.True(t, updated.DueDate.Equal(due))
	})
}

func TestDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	t.Run("reports false for unknown id", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "no-such-id")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("removes the row", func(t *testing.T) {
		created, err := repo.Create(ctx, repository.NewTask{
			Title:   "Doomed",
			DueDate: dueDate(t, "2026-03-01T12:00:00Z"),
		})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)

		deleted, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestStatusCheckConstraint(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, repository.NewTask{
		Title:   "Constrained",
		DueDate: dueDate(t, "2026-03-01T12:00:00Z"),
	})
	require.NoError(t, err)

	// Second line of defense behind application validation.
	_, err = repo.db.ExecContext(ctx, "UPDATE tasks SET status = 'BOGUS' WHERE id = ?", created.ID)
	assert.Error(t, err)
}
