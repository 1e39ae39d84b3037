package domain

type StatusCount struct {
	Status TaskStatus
	Count  int
}

type PriorityStatusCount struct {
	Priority TaskPriority
	Status   TaskStatus
	Count    int
}

// TaskStats backs the status-distribution and priority-by-status charts.
type TaskStats struct {
	Total            int
	ByStatus         []StatusCount
	ByPriorityStatus []PriorityStatusCount
}

// SummarizeTasks counts tasks per status and per (priority, status). Every
// known combination is present, zero counts included.
func SummarizeTasks(tasks []Task) TaskStats {
	statusCounts := make(map[TaskStatus]int, len(TaskStatuses))
	pairCounts := make(map[TaskPriority]map[TaskStatus]int, len(TaskPriorities))
	for _, task := range tasks {
		statusCounts[task.Status]++
		if pairCounts[task.Priority] == nil {
			pairCounts[task.Priority] = make(map[TaskStatus]int, len(TaskStatuses))
		}
		pairCounts[task.Priority][task.Status]++
	}

	stats := TaskStats{Total: len(tasks)}
	for _, status := range TaskStatuses {
		stats.ByStatus = append(stats.ByStatus, StatusCount{Status: status, Count: statusCounts[status]})
	}
	for _, priority := range TaskPriorities {
		for _, status := range TaskStatuses {
			stats.ByPriorityStatus = append(stats.ByPriorityStatus, PriorityStatusCount{
				Priority: priority,
				Status:   status,
				Count:    pairCounts[priority][status],
			})
		}
	}
	return stats
}

// Percent returns the share of count in total, 0 when total is 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) * 100 / float64(total)
}
