package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/satriadi/go-task-api/internal/application"
	"github.com/satriadi/go-task-api/internal/domain/repository"
	"github.com/satriadi/go-task-api/internal/interface/middleware"
	"github.com/satriadi/go-task-api/pkg/response"
	"github.com/satriadi/go-task-api/pkg/validation"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
	Debug  bool
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger, debug bool) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger, Debug: debug}
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	Completed   *bool      `json:"completed"`
}

// Create POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	u := middleware.Identity(c)
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), u.ID, application.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondError(c, h.Logger, h.Debug, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "task created")
}

// List GET /api/tasks?completed=&due_before=
func (h *TaskHandler) List(c *gin.Context) {
	u := middleware.Identity(c)

	var f repository.TaskFilter
	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"completed": "must be a boolean value"})
			return
		}
		f.Completed = &b
	}
	if v := c.Query("due_before"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"due_before": "must be a valid RFC3339 timestamp"})
			return
		}
		f.DueBefore = &ts
	}

	tasks, err := h.Svc.List(c.Request.Context(), u.ID, f)
	if err != nil {
		respondError(c, h.Logger, h.Debug, err)
		return
	}
	response.Success(c, http.StatusOK, tasks, "tasks")
}

// Get GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	u := middleware.Identity(c)

	t, err := h.Svc.Get(c.Request.Context(), u.ID, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, h.Debug, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task")
}

// Update PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	u := middleware.Identity(c)
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Update(c.Request.Context(), u.ID, c.Param("id"), application.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	})
	if err != nil {
		respondError(c, h.Logger, h.Debug, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task updated")
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	u := middleware.Identity(c)

	if err := h.Svc.Delete(c.Request.Context(), u.ID, c.Param("id")); err != nil {
		respondError(c, h.Logger, h.Debug, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "task deleted")
}

// Search GET /api/tasks/search?q=&size=
func (h *TaskHandler) Search(c *gin.Context) {
	u := middleware.Identity(c)

	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), u.ID, q, size)
	if err != nil {
		respondError(c, h.Logger, h.Debug, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
