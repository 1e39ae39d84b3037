package http

import (
	"studyplanner/internal/adapter/http/handlers"
	"studyplanner/internal/adapter/http/middleware"
	"studyplanner/internal/adapter/http/web"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Tasks  *handlers.TaskHandler
	Web    *handlers.WebHandler
}

// RegisterRoutes mounts the JSON API under /api and the HTML pages at the
// root. The engine must already run middleware.SessionMiddleware.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.SetHTMLTemplate(web.Templates())

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)

		protected := api.Group("")
		protected.Use(middleware.RequireAPISession())
		{
			protected.GET("/me", h.Auth.Me)
			protected.GET("/tasks", h.Tasks.ListTasks)
			protected.POST("/tasks", h.Tasks.CreateTask)
			protected.GET("/tasks/stats", h.Tasks.TaskStats)
			protected.GET("/tasks/export", h.Tasks.ExportTasks)
			protected.POST("/tasks/email", h.Tasks.EmailTasks)
			protected.PATCH("/tasks/:id/complete", h.Tasks.CompleteTask)
			protected.DELETE("/tasks/:id", h.Tasks.DeleteTask)
		}
	}

	pages := r.Group("")
	pages.Use(middleware.LanguageMiddleware())
	{
		pages.GET("/login", h.Web.LoginPage)
		pages.POST("/login", h.Web.Login)
		pages.GET("/register", h.Web.RegisterPage)
		pages.POST("/register", h.Web.Register)
		pages.POST("/logout", h.Web.Logout)

		private := pages.Group("")
		private.Use(middleware.RequirePageSession("/login"))
		{
			private.GET("/", h.Web.Dashboard)
			private.POST("/tasks", h.Web.AddTask)
			private.POST("/tasks/:id/complete", h.Web.CompleteTask)
			private.POST("/tasks/:id/delete", h.Web.DeleteTask)
			private.GET("/export.csv", h.Web.ExportCSV)
			private.POST("/email", h.Web.EmailTasks)
		}
	}
}
