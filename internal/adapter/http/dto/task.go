package dto

type TaskItem struct {
	ID       uint64  `json:"id"`
	UserID   uint64  `json:"user_id"`
	Task     string  `json:"task"`
	DueDate  *string `json:"due_date"`
	Priority string  `json:"priority"`
	Status   string  `json:"status"`
}

// CreateTaskRequest binds both the JSON API body and the HTML add-task form.
// Empty text is accepted as is.
type CreateTaskRequest struct {
	Task     string  `json:"task" form:"task" binding:"max=1000"`
	DueDate  *string `json:"due_date" form:"due_date"`
	Priority *string `json:"priority" form:"priority" binding:"omitempty,oneof=High Medium Low"`
}

type StatusCountItem struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type PriorityStatusCountItem struct {
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
}

type TaskStatsResponse struct {
	Total            int                       `json:"total"`
	ByStatus         []StatusCountItem         `json:"by_status"`
	ByPriorityStatus []PriorityStatusCountItem `json:"by_priority_status"`
}
