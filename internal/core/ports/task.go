package ports

import (
	"context"
	"io"
	"time"

	"studyplanner/internal/core/domain"
)

// TaskRepository scopes every statement by the owning user id.
type TaskRepository interface {
	CreateTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error)
	ListTasksByUser(ctx context.Context, userID uint64) ([]domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error)
	CompleteTask(ctx context.Context, userID, taskID uint64) (bool, error)
	DeleteTask(ctx context.Context, userID, taskID uint64) (bool, error)
	MarkOverdue(ctx context.Context, userID uint64, today time.Time) (int64, error)
}

type TaskService interface {
	AddTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error)
	ListTasks(ctx context.Context, userID uint64) ([]domain.Task, error)
	CompleteTask(ctx context.Context, userID, taskID uint64) (domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uint64) error
	ReconcileOverdue(ctx context.Context, userID uint64, today time.Time) (int64, error)
}

type ReportService interface {
	Stats(ctx context.Context, userID uint64) (domain.TaskStats, error)
	ExportCSV(ctx context.Context, userID uint64, w io.Writer) error
	EmailTasks(ctx context.Context, identity domain.Identity) error
}
