package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdesk/backend/domain"
	appLogger "github.com/taskdesk/backend/pkg/logger"
	"github.com/taskdesk/backend/repository"
)

// UseCase wires validation in front of the task repository. Validation runs
// before every mutation, so a rejected request never reaches the store.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*domain.Task, error) {
	fields, errs := ValidateCreate(in)
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}

	created, err := uc.tasks.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	appLogger.WithRequestID(ctx, uc.logger).Debug("task created", zap.String("task_id", created.ID))
	return created, nil
}

func (uc *UseCase) List(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.FindAll(ctx)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.FindByID(ctx, id)
}

func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in StatusInput) (*domain.Task, error) {
	status, errs := ValidateStatusUpdate(in)
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}
	return uc.tasks.UpdateStatus(ctx, id, status)
}

func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*domain.Task, error) {
	patch, errs := ValidateUpdate(in)
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}
	return uc.tasks.Update(ctx, id, patch)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	appLogger.WithRequestID(ctx, uc.logger).Debug("task deleted", zap.String("task_id", id))
	return nil
}
