package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
)

const listTasksByUserQuery = `
SELECT id, user_id, task, due_date, priority, status
FROM tasks
WHERE user_id = ?
ORDER BY id;
`

const getTaskQuery = `
SELECT id, user_id, task, due_date, priority, status
FROM tasks
WHERE id = ? AND user_id = ?;
`

const markOverdueQuery = `
UPDATE tasks
SET status = ?
WHERE user_id = ? AND status = ? AND due_date IS NOT NULL AND LENGTH(due_date) > 0 AND due_date < ?;
`

type TaskRepository struct {
	db *sqlx.DB
}

// Legacy rows may hold NULL text, priority or status.
type taskRow struct {
	ID       uint64         `db:"id"`
	UserID   uint64         `db:"user_id"`
	Task     sql.NullString `db:"task"`
	DueDate  sql.NullString `db:"due_date"`
	Priority sql.NullString `db:"priority"`
	Status   sql.NullString `db:"status"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	var dueDate sql.NullString
	if input.DueDate != nil {
		dueDate = sql.NullString{String: input.DueDate.Format(domain.DateLayout), Valid: true}
	}

	result, err := r.db.ExecContext(
		ctx,
		"INSERT INTO tasks (user_id, task, due_date, priority, status) VALUES (?, ?, ?, ?, ?)",
		userID,
		input.Text,
		dueDate,
		string(input.Priority),
		string(domain.TaskStatusPending),
	)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("read task id: %w", err)
	}

	task := domain.Task{
		ID:       uint64(id),
		UserID:   userID,
		Text:     input.Text,
		Priority: input.Priority,
		Status:   domain.TaskStatusPending,
	}
	if input.DueDate != nil {
		value := domain.DateOnly(*input.DueDate)
		task.DueDate = &value
	}

	return task, nil
}

func (r *TaskRepository) ListTasksByUser(ctx context.Context, userID uint64) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksByUserQuery, userID); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, taskID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	return mapTaskRowToDomainTask(row), nil
}

// CompleteTask reports whether a row changed. Already completed tasks and
// tasks owned by someone else leave the table untouched.
func (r *TaskRepository) CompleteTask(ctx context.Context, userID, taskID uint64) (bool, error) {
	result, err := r.db.ExecContext(
		ctx,
		"UPDATE tasks SET status = ? WHERE id = ? AND user_id = ? AND (status IS NULL OR status <> ?)",
		string(domain.TaskStatusCompleted),
		taskID,
		userID,
		string(domain.TaskStatusCompleted),
	)
	if err != nil {
		return false, err
	}
	return rowsChanged(result)
}

func (r *TaskRepository) DeleteTask(ctx context.Context, userID, taskID uint64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID)
	if err != nil {
		return false, err
	}
	return rowsChanged(result)
}

func (r *TaskRepository) MarkOverdue(ctx context.Context, userID uint64, today time.Time) (int64, error) {
	result, err := r.db.ExecContext(
		ctx,
		markOverdueQuery,
		string(domain.TaskStatusOverdue),
		userID,
		string(domain.TaskStatusPending),
		today.Format(domain.DateLayout),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func rowsChanged(result sql.Result) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:       row.ID,
		UserID:   row.UserID,
		Text:     row.Task.String,
		Priority: domain.TaskPriorityMedium,
		Status:   domain.TaskStatusPending,
	}

	if row.Priority.Valid && row.Priority.String != "" {
		task.Priority = domain.TaskPriority(row.Priority.String)
	}

	if row.Status.Valid && row.Status.String != "" {
		task.Status = domain.TaskStatus(row.Status.String)
	}

	if row.DueDate.Valid {
		if value, err := domain.ParseDate(row.DueDate.String); err == nil {
			task.DueDate = &value
		}
	}

	return task
}
