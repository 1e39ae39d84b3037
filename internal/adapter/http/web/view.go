package web

import (
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"studyplanner/internal/core/domain"
	"studyplanner/pkg/translator"
)

const (
	StatusChartID   = "statusChart"
	PriorityChartID = "priorityChart"

	chartWidth  = "480px"
	chartHeight = "320px"
)

var statusColors = map[domain.TaskStatus]string{
	domain.TaskStatusPending:   "#f0ad4e",
	domain.TaskStatusCompleted: "#5cb85c",
	domain.TaskStatusOverdue:   "#d9534f",
}

type TaskRow struct {
	ID        uint64
	Text      string
	Due       string
	Priority  string
	Status    string
	Completed bool
}

// StatusSummary is the text legend shown under the status chart.
type StatusSummary struct {
	Status  string
	Count   int
	Percent float64
}

// BarSeries is one status across all priorities of the priority chart.
type BarSeries struct {
	Status string
	Data   []opts.BarData
}

// Chart is an echarts fragment ready to be embedded in a page.
type Chart struct {
	Element template.HTML
	Script  template.HTML
}

// AuthPage backs the login and register forms.
type AuthPage struct {
	Notice   string
	Error    string
	Username string
	Email    string
}

type Dashboard struct {
	Welcome    string
	EmptyText  string
	Notice     string
	Error      string
	Filter     string
	Filters    []string
	Priorities []string
	Tasks      []TaskRow
	HasTasks   bool
	Summary    []StatusSummary

	StatusData    []opts.PieData
	PriorityAxis  []string
	PriorityData  []BarSeries
	StatusChart   Chart
	PriorityChart Chart
}

// NewDashboard builds the page model. all is the unfiltered task set; charts
// always describe it, the list shows only what filter keeps.
func NewDashboard(identity domain.Identity, all []domain.Task, filter domain.TaskFilter, lang string) Dashboard {
	view := Dashboard{
		Welcome:   translator.Localize("welcome", lang, map[string]interface{}{"Username": identity.Username}),
		EmptyText: translator.Localize("noTasks", lang, nil),
		Filter:    "All",
		Filters:   []string{"All"},
		HasTasks:  len(all) > 0,
	}
	if filter.Status != nil {
		view.Filter = string(*filter.Status)
	}
	for _, status := range domain.TaskStatuses {
		view.Filters = append(view.Filters, string(status))
	}
	for _, priority := range domain.TaskPriorities {
		view.Priorities = append(view.Priorities, string(priority))
	}

	for _, task := range filter.Apply(all) {
		row := TaskRow{
			ID:        task.ID,
			Text:      task.Text,
			Due:       "No due date",
			Priority:  string(task.Priority),
			Status:    string(task.Status),
			Completed: task.Status == domain.TaskStatusCompleted,
		}
		if task.DueDate != nil {
			row.Due = task.DueDate.Format(domain.DateLayout)
		}
		view.Tasks = append(view.Tasks, row)
	}

	stats := domain.SummarizeTasks(all)
	for _, count := range stats.ByStatus {
		view.Summary = append(view.Summary, StatusSummary{
			Status:  string(count.Status),
			Count:   count.Count,
			Percent: domain.Percent(count.Count, stats.Total),
		})
	}

	view.StatusData = statusPieData(stats)
	view.PriorityAxis, view.PriorityData = priorityBarData(stats)
	if view.HasTasks {
		view.StatusChart = statusChart(view.StatusData)
		view.PriorityChart = priorityChart(view.PriorityAxis, view.PriorityData)
	}
	return view
}

// statusPieData leaves out empty statuses so the pie has no zero slices.
func statusPieData(stats domain.TaskStats) []opts.PieData {
	data := make([]opts.PieData, 0, len(stats.ByStatus))
	for _, count := range stats.ByStatus {
		if count.Count == 0 {
			continue
		}
		data = append(data, opts.PieData{
			Name:      string(count.Status),
			Value:     count.Count,
			ItemStyle: &opts.ItemStyle{Color: statusColors[count.Status]},
		})
	}
	return data
}

func priorityBarData(stats domain.TaskStats) ([]string, []BarSeries) {
	counts := make(map[domain.TaskPriority]map[domain.TaskStatus]int, len(domain.TaskPriorities))
	for _, count := range stats.ByPriorityStatus {
		if counts[count.Priority] == nil {
			counts[count.Priority] = make(map[domain.TaskStatus]int, len(domain.TaskStatuses))
		}
		counts[count.Priority][count.Status] = count.Count
	}

	axis := make([]string, 0, len(domain.TaskPriorities))
	for _, priority := range domain.TaskPriorities {
		axis = append(axis, string(priority))
	}

	series := make([]BarSeries, 0, len(domain.TaskStatuses))
	for _, status := range domain.TaskStatuses {
		data := make([]opts.BarData, 0, len(domain.TaskPriorities))
		for _, priority := range domain.TaskPriorities {
			data = append(data, opts.BarData{Value: counts[priority][status]})
		}
		series = append(series, BarSeries{Status: string(status), Data: data})
	}
	return axis, series
}

func statusChart(data []opts.PieData) Chart {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: StatusChartID, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Task Status Overview"}),
	)
	pie.AddSeries("Status", data)
	return snippet(pie.Renderer.RenderSnippet())
}

func priorityChart(axis []string, series []BarSeries) Chart {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: PriorityChartID, Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Tasks by Priority & Status"}),
	)
	bar.SetXAxis(axis)
	for _, s := range series {
		bar.AddSeries(s.Status, s.Data, charts.WithItemStyleOpts(opts.ItemStyle{
			Color: statusColors[domain.TaskStatus(s.Status)],
		}))
	}
	return snippet(bar.Renderer.RenderSnippet())
}

// snippet trusts the markup go-echarts generates; user text never reaches it.
func snippet(rendered render.ChartSnippet) Chart {
	return Chart{Element: template.HTML(rendered.Element), Script: template.HTML(rendered.Script)}
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}
