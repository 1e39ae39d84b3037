package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/adapter/http/middleware"
	"studyplanner/internal/adapter/http/validation"
	"studyplanner/internal/adapter/http/web"
	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
	"studyplanner/pkg/apierrors"
	"studyplanner/pkg/translator"
)

const (
	noticeRegistered    = "registered"
	noticeTaskAdded     = "taskAdded"
	noticeTaskCompleted = "taskCompleted"
	noticeTaskDeleted   = "taskDeleted"
	noticeEmailSent     = "emailSent"

	loginPage     = "login.html"
	registerPage  = "register.html"
	dashboardPage = "dashboard.html"

	mailErrorCookieName   = "study_mail_error"
	mailErrorCookieMaxAge = 60
	maxMailErrorLength    = 512
)

// Only these keys may be echoed back from a query string.
var (
	pageNotices = map[string]bool{
		noticeRegistered:    true,
		noticeTaskAdded:     true,
		noticeTaskCompleted: true,
		noticeTaskDeleted:   true,
		noticeEmailSent:     true,
	}
	pageErrors = map[string]bool{
		apierrors.MsgInvalidTaskPayload:  true,
		apierrors.MsgInvalidStatusFilter: true,
	}
)

// WebHandler serves the server-rendered pages. Form posts answer with a 303
// redirect so a browser refresh never repeats them.
type WebHandler struct {
	authService   ports.AuthService
	taskService   ports.TaskService
	reportService ports.ReportService
	sessions      ports.SessionManager
	cookieSecure  bool
}

func NewWebHandler(
	authService ports.AuthService,
	taskService ports.TaskService,
	reportService ports.ReportService,
	sessions ports.SessionManager,
	cookieSecure bool,
) *WebHandler {
	return &WebHandler{
		authService:   authService,
		taskService:   taskService,
		reportService: reportService,
		sessions:      sessions,
		cookieSecure:  cookieSecure,
	}
}

func (h *WebHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.GetIdentity(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.HTML(http.StatusOK, loginPage, web.AuthPage{Notice: queryMessage(c, "notice", pageNotices)})
}

func (h *WebHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, loginPage, web.AuthPage{
			Error: translator.Localize(apierrors.MsgInvalidLoginPayload, lang, nil),
			Email: req.Email,
		})
		return
	}

	identity, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, key := http.StatusUnauthorized, apierrors.MsgInvalidLogin
		if !errors.Is(err, domain.ErrInvalidLogin) {
			zap.L().Error("failed to log in", zap.Error(err))
			status, key = http.StatusInternalServerError, apierrors.MsgFailLogin
		}
		c.HTML(status, loginPage, web.AuthPage{
			Error: translator.Localize(key, lang, nil),
			Email: req.Email,
		})
		return
	}

	token, expiresAt, err := h.sessions.Issue(identity)
	if err != nil {
		zap.L().Error("failed to issue session", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		c.HTML(http.StatusInternalServerError, loginPage, web.AuthPage{
			Error: translator.Localize(apierrors.MsgFailLogin, lang, nil),
			Email: req.Email,
		})
		return
	}

	middleware.SetSessionCookie(c, token, expiresAt, h.cookieSecure)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *WebHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, registerPage, web.AuthPage{})
}

func (h *WebHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, registerPage, web.AuthPage{
			Error:    translator.Localize(apierrors.MsgInvalidRegisterPayload, lang, nil),
			Username: req.Username,
			Email:    req.Email,
		})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, key := http.StatusInternalServerError, apierrors.MsgFailRegister
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			status, key = http.StatusConflict, apierrors.MsgUserAlreadyExists
		case errors.Is(err, domain.ErrMissingCredentials):
			status, key = http.StatusBadRequest, apierrors.MsgInvalidRegisterPayload
		default:
			zap.L().Error("failed to register user", zap.Error(err))
		}
		c.HTML(status, registerPage, web.AuthPage{
			Error:    translator.Localize(key, lang, nil),
			Username: req.Username,
			Email:    req.Email,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/login?notice="+noticeRegistered)
}

func (h *WebHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *WebHandler) Dashboard(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	lang := middleware.GetLang(c)
	errMsg := queryMessage(c, "error", pageErrors)
	if c.Query("error") == apierrors.MsgEmailFailed {
		errMsg = translator.Localize(apierrors.MsgEmailFailed, lang, map[string]interface{}{"Error": h.popMailError(c)})
	}
	filter, err := domain.ParseTaskFilter(c.Query("status"))
	if err != nil {
		errMsg = translator.Localize(apierrors.MsgInvalidStatusFilter, lang, nil)
	}

	view, ok := h.dashboard(c, identity, filter)
	if !ok {
		return
	}
	view.Notice = queryMessage(c, "notice", pageNotices)
	view.Error = errMsg
	c.HTML(http.StatusOK, dashboardPage, view)
}

func (h *WebHandler) AddTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectDashboard(c, "", "error", apierrors.MsgInvalidTaskPayload)
		return
	}
	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		redirectDashboard(c, "", "error", apierrors.MsgInvalidTaskPayload)
		return
	}

	if _, err := h.taskService.AddTask(c.Request.Context(), identity.UserID, input); err != nil {
		if errors.Is(err, domain.ErrInvalidPriority) {
			redirectDashboard(c, "", "error", apierrors.MsgInvalidTaskPayload)
			return
		}
		zap.L().Error("failed to create task", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		c.String(http.StatusInternalServerError, translator.Localize(apierrors.MsgFailCreateTask, middleware.GetLang(c), nil))
		return
	}

	redirectDashboard(c, "", "notice", noticeTaskAdded)
}

// CompleteTask and DeleteTask treat a task id the caller does not own exactly
// like a missing one: nothing changes and the dashboard is shown again.
func (h *WebHandler) CompleteTask(c *gin.Context) {
	h.mutateTask(c, noticeTaskCompleted, func(c *gin.Context, userID, taskID uint64) error {
		_, err := h.taskService.CompleteTask(c.Request.Context(), userID, taskID)
		return err
	})
}

func (h *WebHandler) DeleteTask(c *gin.Context) {
	h.mutateTask(c, noticeTaskDeleted, func(c *gin.Context, userID, taskID uint64) error {
		return h.taskService.DeleteTask(c.Request.Context(), userID, taskID)
	})
}

func (h *WebHandler) ExportCSV(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	body, err := exportCSV(c, h.reportService, identity)
	if err != nil {
		c.String(http.StatusInternalServerError, translator.Localize(apierrors.MsgFailExportTasks, middleware.GetLang(c), nil))
		return
	}
	writeCSVAttachment(c, body)
}

// EmailTasks redirects like every other form post. The transport error text
// travels to the next page in a short-lived cookie rather than the URL.
func (h *WebHandler) EmailTasks(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := h.reportService.EmailTasks(c.Request.Context(), identity); err != nil {
		zap.L().Warn("failed to email tasks", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		h.setMailErrorCookie(c, err.Error())
		redirectDashboard(c, "", "error", apierrors.MsgEmailFailed)
		return
	}

	redirectDashboard(c, "", "notice", noticeEmailSent)
}

func (h *WebHandler) setMailErrorCookie(c *gin.Context, detail string) {
	if len(detail) > maxMailErrorLength {
		detail = detail[:maxMailErrorLength]
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     mailErrorCookieName,
		Value:    url.QueryEscape(detail),
		Path:     "/",
		MaxAge:   mailErrorCookieMaxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popMailError reads and clears the cookie left by EmailTasks.
func (h *WebHandler) popMailError(c *gin.Context) string {
	value, err := c.Cookie(mailErrorCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     mailErrorCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	detail, err := url.QueryUnescape(value)
	if err != nil {
		return ""
	}
	return detail
}

func (h *WebHandler) dashboard(c *gin.Context, identity domain.Identity, filter domain.TaskFilter) (web.Dashboard, bool) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), identity.UserID)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		c.String(http.StatusInternalServerError, translator.Localize(apierrors.MsgFailListTask, middleware.GetLang(c), nil))
		return web.Dashboard{}, false
	}
	return web.NewDashboard(identity, tasks, filter, middleware.GetLang(c)), true
}

func (h *WebHandler) mutateTask(c *gin.Context, notice string, apply func(c *gin.Context, userID, taskID uint64) error) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	filter := c.PostForm("status")
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		redirectDashboard(c, filter, "", "")
		return
	}

	if err := apply(c, identity.UserID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			redirectDashboard(c, filter, "", "")
			return
		}
		zap.L().Error("failed to update task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.String(http.StatusInternalServerError, translator.Localize(apierrors.MsgFailUpdateTask, middleware.GetLang(c), nil))
		return
	}

	redirectDashboard(c, filter, "notice", notice)
}

func redirectDashboard(c *gin.Context, status, param, key string) {
	query := url.Values{}
	if status != "" && status != "All" {
		query.Set("status", status)
	}
	if param != "" {
		query.Set(param, key)
	}
	target := "/"
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	c.Redirect(http.StatusSeeOther, target)
}

func queryMessage(c *gin.Context, param string, allowed map[string]bool) string {
	key := c.Query(param)
	if !allowed[key] {
		return ""
	}
	return translator.Localize(key, middleware.GetLang(c), nil)
}
