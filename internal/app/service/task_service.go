package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository, now: time.Now}
}

// WithClock replaces the source of "today" used by ListTasks.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

func (s *TaskService) AddTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return domain.Task{}, domain.ErrInvalidPriority
	}
	if input.DueDate != nil {
		value := domain.DateOnly(*input.DueDate)
		input.DueDate = &value
	}

	return s.taskRepository.CreateTask(ctx, userID, input)
}

// ListTasks reconciles overdue tasks against today before reading, so every
// listing shows statuses that are current.
func (s *TaskService) ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error) {
	if _, err := s.ReconcileOverdue(ctx, userID, s.now()); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.ListTasksByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	domain.SortTasks(tasks)

	return tasks, nil
}

func (s *TaskService) ReconcileOverdue(ctx context.Context, userID uint64, today time.Time) (int64, error) {
	updated, err := s.taskRepository.MarkOverdue(ctx, userID, domain.DateOnly(today))
	if err != nil {
		return 0, fmt.Errorf("reconcile overdue tasks: %w", err)
	}
	if updated > 0 {
		zap.L().Info("marked tasks overdue", zap.Uint64("user_id", userID), zap.Int64("count", updated))
	}
	return updated, nil
}

// CompleteTask returns the task as stored afterwards. Completing an already
// completed task is not an error; a task the user does not own is reported
// as ErrTaskNotFound, the same as a missing one.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID uint64) (domain.Task, error) {
	if _, err := s.taskRepository.CompleteTask(ctx, userID, taskID); err != nil {
		return domain.Task{}, fmt.Errorf("complete task: %w", err)
	}

	task, err := s.taskRepository.GetTask(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.Task{}, err
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	deleted, err := s.taskRepository.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

var _ ports.TaskService = (*TaskService)(nil)
