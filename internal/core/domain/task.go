package domain

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date format used for due dates everywhere.
const DateLayout = "2006-01-02"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusOverdue   TaskStatus = "Overdue"
)

// TaskStatuses lists statuses in display order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusCompleted, TaskStatusOverdue}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

// TaskPriorities lists priorities in display order.
var TaskPriorities = []TaskPriority{TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// ParseTaskPriority returns the default priority for an empty value.
func ParseTaskPriority(value string) (TaskPriority, error) {
	if value == "" {
		return TaskPriorityMedium, nil
	}
	priority := TaskPriority(value)
	if !priority.Valid() {
		return "", ErrInvalidPriority
	}
	return priority, nil
}

type Task struct {
	ID       uint64
	UserID   uint64
	Text     string
	DueDate  *time.Time
	Priority TaskPriority
	Status   TaskStatus
}

type CreateTaskInput struct {
	Text     string
	DueDate  *time.Time
	Priority TaskPriority
}

// TaskFilter selects tasks by status. The zero value keeps every task.
type TaskFilter struct {
	Status *TaskStatus
}

// ParseTaskFilter accepts "", "All" or one of the task statuses.
func ParseTaskFilter(value string) (TaskFilter, error) {
	if value == "" || value == "All" {
		return TaskFilter{}, nil
	}
	status := TaskStatus(value)
	if !status.Valid() {
		return TaskFilter{}, ErrInvalidStatus
	}
	return TaskFilter{Status: &status}, nil
}

func (f TaskFilter) Apply(tasks []Task) []Task {
	if f.Status == nil {
		return tasks
	}
	filtered := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == *f.Status {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// SortTasks orders by due date, undated tasks last, then by id.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil && b == nil:
			return tasks[i].ID < tasks[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// DateOnly returns t's calendar day, taken in t's own location, as midnight
// UTC. With time.Now that is the server's local date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses the leading calendar date of value, so both "2024-01-01"
// and "2024-01-01T00:00:00Z" are accepted.
func ParseDate(value string) (time.Time, error) {
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return time.Parse(DateLayout, value)
}
