package validation

import (
	"errors"
	"strings"
	"time"

	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput maps a bound request to the domain input. An empty or
// missing due date means "no due date"; an empty priority means Medium.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	priority := domain.TaskPriorityMedium
	if req.Priority != nil {
		parsed, err := domain.ParseTaskPriority(strings.TrimSpace(*req.Priority))
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		priority = parsed
	}

	var dueDate *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		parsedDueDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(*req.DueDate))
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		dueDate = &parsedDueDate
	}

	return domain.CreateTaskInput{
		Text:     req.Task,
		DueDate:  dueDate,
		Priority: priority,
	}, nil
}
