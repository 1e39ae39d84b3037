package mapper

import (
	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:       task.ID,
		UserID:   task.UserID,
		Task:     task.Text,
		Priority: string(task.Priority),
		Status:   string(task.Status),
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(domain.DateLayout)
		item.DueDate = &value
	}

	return item
}

func ToTaskStatsResponse(stats domain.TaskStats) dto.TaskStatsResponse {
	response := dto.TaskStatsResponse{
		Total:            stats.Total,
		ByStatus:         make([]dto.StatusCountItem, 0, len(stats.ByStatus)),
		ByPriorityStatus: make([]dto.PriorityStatusCountItem, 0, len(stats.ByPriorityStatus)),
	}
	for _, count := range stats.ByStatus {
		response.ByStatus = append(response.ByStatus, dto.StatusCountItem{
			Status:  string(count.Status),
			Count:   count.Count,
			Percent: domain.Percent(count.Count, stats.Total),
		})
	}
	for _, count := range stats.ByPriorityStatus {
		response.ByPriorityStatus = append(response.ByPriorityStatus, dto.PriorityStatusCountItem{
			Priority: string(count.Priority),
			Status:   string(count.Status),
			Count:    count.Count,
		})
	}
	return response
}
