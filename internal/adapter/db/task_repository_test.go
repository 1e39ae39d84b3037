package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"studyplanner/internal/core/domain"
)

func TestTaskRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	created, err := repo.CreateTask(ctx, alice.ID, domain.CreateTaskInput{
		Text:     "Read chapter 1",
		DueDate:  date(t, "2024-01-01"),
		Priority: domain.TaskPriorityHigh,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, domain.TaskStatusPending, created.Status)

	_, err = repo.CreateTask(ctx, alice.ID, domain.CreateTaskInput{Text: "", Priority: domain.TaskPriorityLow})
	require.NoError(t, err)
	_, err = repo.CreateTask(ctx, bob.ID, domain.CreateTaskInput{Text: "Bob's task", Priority: domain.TaskPriorityMedium})
	require.NoError(t, err)

	tasks, err := repo.ListTasksByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, created, tasks[0])
	require.Equal(t, "2024-01-01", tasks[0].DueDate.Format(domain.DateLayout))
	require.Nil(t, tasks[1].DueDate)
	require.Equal(t, "", tasks[1].Text)

	got, err := repo.GetTask(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = repo.GetTask(ctx, bob.ID, created.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_MutationsAreScopedByOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	task, err := repo.CreateTask(ctx, alice.ID, domain.CreateTaskInput{Text: "Essay", Priority: domain.TaskPriorityMedium})
	require.NoError(t, err)

	changed, err := repo.CompleteTask(ctx, bob.ID, task.ID)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = repo.DeleteTask(ctx, bob.ID, task.ID)
	require.NoError(t, err)
	require.False(t, changed)

	got, err := repo.GetTask(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusPending, got.Status)

	changed, err = repo.CompleteTask(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = repo.CompleteTask(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = repo.DeleteTask(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	require.True(t, changed)

	tasks, err := repo.ListTasksByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)
}

func TestTaskRepository_MarkOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	today := *date(t, "2024-06-01")

	yesterday, err := repo.CreateTask(ctx, alice.ID, domain.CreateTaskInput{Text: "late", DueDate: date(t, "2024-05-31"), Priority: domain.TaskPriorityHigh})
	require.NoError(t, err)
	dueToday, err := repo.CreateTask(ctx, alice.ID, domain.CreateTaskInput{Text: "today", DueDate: date(t, "2024-06-01"), Priority: domain.TaskPriorityHigh})
	require.NoError(t, err)
	undated, err := repo.CreateTask(ctx, alice.ID, domain.CreateTaskInput{Text: "someday", Priority: domain.TaskPriorityLow})
	require.NoError(t, err)
	done, err := repo.CreateTask(ctx, alice.ID, domain.CreateTaskInput{Text: "done", DueDate: date(t, "2023-01-01"), Priority: domain.TaskPriorityLow})
	require.NoError(t, err)
	_, err = repo.CompleteTask(ctx, alice.ID, done.ID)
	require.NoError(t, err)
	bobs, err := repo.CreateTask(ctx, bob.ID, domain.CreateTaskInput{Text: "bob late", DueDate: date(t, "2020-01-01"), Priority: domain.TaskPriorityLow})
	require.NoError(t, err)

	updated, err := repo.MarkOverdue(ctx, alice.ID, today)
	require.NoError(t, err)
	require.Equal(t, int64(1), updated)

	updated, err = repo.MarkOverdue(ctx, alice.ID, today)
	require.NoError(t, err)
	require.Zero(t, updated)

	expected := map[uint64]domain.TaskStatus{
		yesterday.ID: domain.TaskStatusOverdue,
		dueToday.ID:  domain.TaskStatusPending,
		undated.ID:   domain.TaskStatusPending,
		done.ID:      domain.TaskStatusCompleted,
	}
	tasks, err := repo.ListTasksByUser(ctx, alice.ID)
	require.NoError(t, err)
	for _, task := range tasks {
		require.Equal(t, expected[task.ID], task.Status, task.Text)
	}

	got, err := repo.GetTask(ctx, bob.ID, bobs.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusPending, got.Status)
}
