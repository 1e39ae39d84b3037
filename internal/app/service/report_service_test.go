package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studyplanner/internal/app/service"
	"studyplanner/internal/core/domain"
)

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: 1, UserID: 9, Text: "Read chapter 1", DueDate: ptr(day("2024-01-01")), Priority: domain.TaskPriorityHigh, Status: domain.TaskStatusOverdue},
		{ID: 2, UserID: 9, Text: "Essay, draft", Priority: domain.TaskPriorityMedium, Status: domain.TaskStatusPending},
		{ID: 3, UserID: 9, Text: "Lab report", DueDate: ptr(day("2024-02-01")), Priority: domain.TaskPriorityHigh, Status: domain.TaskStatusCompleted},
	}
}

func newReportFixture(tasks []domain.Task) (*taskRepositoryMock, *mailerMock, *service.ReportService) {
	repo := new(taskRepositoryMock)
	repo.On("MarkOverdue", mock.Anything, uint64(9), mock.Anything).Return(int64(0), nil)
	repo.On("ListTasksByUser", mock.Anything, uint64(9)).Return(tasks, nil)
	mailer := new(mailerMock)
	return repo, mailer, service.NewReportService(service.NewTaskService(repo), mailer, "")
}

func TestReportService_ExportCSV(t *testing.T) {
	_, _, reports := newReportFixture(sampleTasks())

	var buf bytes.Buffer
	require.NoError(t, reports.ExportCSV(context.Background(), 9, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, []string{"id", "user_id", "task", "due_date", "priority", "status"}, records[0])
	require.Equal(t, []string{"1", "9", "Read chapter 1", "2024-01-01", "High", "Overdue"}, records[1])
	require.Equal(t, []string{"3", "9", "Lab report", "2024-02-01", "High", "Completed"}, records[2])
	require.Equal(t, []string{"2", "9", "Essay, draft", "", "Medium", "Pending"}, records[3])
}

func TestWriteTasksCSV_EmptyListHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, service.WriteTasksCSV(&buf, nil))
	require.Equal(t, "id,user_id,task,due_date,priority,status\n", buf.String())
}

func TestReportService_Stats(t *testing.T) {
	_, _, reports := newReportFixture(sampleTasks())

	stats, err := reports.Stats(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, []domain.StatusCount{
		{Status: domain.TaskStatusPending, Count: 1},
		{Status: domain.TaskStatusCompleted, Count: 1},
		{Status: domain.TaskStatusOverdue, Count: 1},
	}, stats.ByStatus)
	assert.Len(t, stats.ByPriorityStatus, 9)
	assert.Contains(t, stats.ByPriorityStatus, domain.PriorityStatusCount{Priority: domain.TaskPriorityHigh, Status: domain.TaskStatusOverdue, Count: 1})
	assert.Contains(t, stats.ByPriorityStatus, domain.PriorityStatusCount{Priority: domain.TaskPriorityLow, Status: domain.TaskStatusPending, Count: 0})
}

func TestReportService_EmailTasks_SendsToOwnAddress(t *testing.T) {
	_, mailer, reports := newReportFixture(sampleTasks())
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.MailMessage) bool {
		return msg.To == "alice@x.com" &&
			msg.Subject == "Your Study Tasks" &&
			strings.Contains(msg.Body, "Read chapter 1") &&
			strings.Contains(msg.Body, "Essay, draft")
	})).Return(nil).Once()

	err := reports.EmailTasks(context.Background(), domain.Identity{UserID: 9, Username: "alice", Email: "alice@x.com"})

	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestReportService_EmailTasks_ReturnsTransportError(t *testing.T) {
	_, mailer, reports := newReportFixture(sampleTasks())
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 authentication failed")).Once()

	err := reports.EmailTasks(context.Background(), domain.Identity{UserID: 9, Email: "alice@x.com"})

	require.EqualError(t, err, "535 authentication failed")
	mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestFormatTaskTable(t *testing.T) {
	table := service.FormatTaskTable(sampleTasks()[:2])
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")

	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "id"))
	require.Contains(t, lines[1], "2024-01-01")
	require.Contains(t, lines[2], "-")
	require.Equal(t, "No tasks yet!\n", service.FormatTaskTable(nil))
}
