package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
)

const (
	ExportFileName     = "study_tasks.csv"
	DefaultMailSubject = "Your Study Tasks"
)

// CSVHeader is the column set of an export.
var CSVHeader = []string{"id", "user_id", "task", "due_date", "priority", "status"}

type ReportService struct {
	taskService ports.TaskService
	mailer      ports.Mailer
	subject     string
}

func NewReportService(taskService ports.TaskService, mailer ports.Mailer, subject string) *ReportService {
	if subject == "" {
		subject = DefaultMailSubject
	}
	return &ReportService{taskService: taskService, mailer: mailer, subject: subject}
}

func (s *ReportService) Stats(ctx context.Context, userID uint64) (domain.TaskStats, error) {
	tasks, err := s.taskService.ListTasks(ctx, userID)
	if err != nil {
		return domain.TaskStats{}, err
	}
	return domain.SummarizeTasks(tasks), nil
}

func (s *ReportService) ExportCSV(ctx context.Context, userID uint64, w io.Writer) error {
	tasks, err := s.taskService.ListTasks(ctx, userID)
	if err != nil {
		return err
	}
	return WriteTasksCSV(w, tasks)
}

// EmailTasks sends the full task list to the identity's own address. Transport
// errors are returned as is; nothing is retried.
func (s *ReportService) EmailTasks(ctx context.Context, identity domain.Identity) error {
	tasks, err := s.taskService.ListTasks(ctx, identity.UserID)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, domain.MailMessage{
		To:      identity.Email,
		Subject: s.subject,
		Body:    FormatTaskTable(tasks),
	})
}

func WriteTasksCSV(w io.Writer, tasks []domain.Task) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, task := range tasks {
		record := []string{
			strconv.FormatUint(task.ID, 10),
			strconv.FormatUint(task.UserID, 10),
			task.Text,
			formatDueDate(task, ""),
			string(task.Priority),
			string(task.Status),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatTaskTable renders tasks as an aligned plain-text table.
func FormatTaskTable(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return "No tasks yet!\n"
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\ttask\tdue_date\tpriority\tstatus")
	for _, task := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", task.ID, task.Text, formatDueDate(task, "-"), task.Priority, task.Status)
	}
	_ = tw.Flush()
	return buf.String()
}

func formatDueDate(task domain.Task, empty string) string {
	if task.DueDate == nil {
		return empty
	}
	return task.DueDate.Format(domain.DateLayout)
}

var _ ports.ReportService = (*ReportService)(nil)
