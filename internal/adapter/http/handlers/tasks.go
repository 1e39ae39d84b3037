package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/adapter/http/mapper"
	"studyplanner/internal/adapter/http/middleware"
	"studyplanner/internal/adapter/http/validation"
	"studyplanner/internal/app/service"
	"studyplanner/internal/core/domain"
	"studyplanner/internal/core/ports"
	"studyplanner/pkg/apierrors"
)

const csvContentType = "text/csv; charset=utf-8"

type TaskHandler struct {
	taskService   ports.TaskService
	reportService ports.ReportService
}

func NewTaskHandler(taskService ports.TaskService, reportService ports.ReportService) *TaskHandler {
	return &TaskHandler{taskService: taskService, reportService: reportService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	filter, err := domain.ParseTaskFilter(c.Query("status"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidStatusFilter, lang),
		)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), identity.UserID)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(filter.Apply(tasks)))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.AddTask(c.Request.Context(), identity.UserID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPriority) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
			)
			return
		}

		zap.L().Error("failed to create task", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(c.Request.Context(), identity.UserID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to complete task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), identity.UserID, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to delete task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) TaskStats(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	stats, err := h.reportService.Stats(c.Request.Context(), identity.UserID)
	if err != nil {
		zap.L().Error("failed to compute task stats", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTaskStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskStatsResponse(stats))
}

func (h *TaskHandler) ExportTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	body, err := exportCSV(c, h.reportService, identity)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailExportTasks, lang),
		)
		return
	}

	writeCSVAttachment(c, body)
}

// EmailTasks reports a transport failure with its message and does not retry.
func (h *TaskHandler) EmailTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.reportService.EmailTasks(c.Request.Context(), identity); err != nil {
		zap.L().Warn("failed to email tasks", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		c.JSON(
			http.StatusBadGateway,
			apierrors.CreateErrorWithData(http.StatusBadGateway, apierrors.MsgEmailFailed, lang, map[string]interface{}{
				"Error": err.Error(),
			}),
		)
		return
	}

	c.Status(http.StatusAccepted)
}

func parseTaskID(c *gin.Context, lang string) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return taskID, true
}

// exportCSV renders into memory first so a failure can still produce an
// error response instead of a truncated download.
func exportCSV(c *gin.Context, reports ports.ReportService, identity domain.Identity) ([]byte, error) {
	var buf bytes.Buffer
	if err := reports.ExportCSV(c.Request.Context(), identity.UserID, &buf); err != nil {
		zap.L().Error("failed to export tasks", zap.Uint64("user_id", identity.UserID), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSVAttachment(c *gin.Context, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+service.ExportFileName+`"`)
	c.Data(http.StatusOK, csvContentType, body)
}
