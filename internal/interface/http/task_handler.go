package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskboard/taskboard/internal/application"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/interface/middleware"
	"github.com/taskboard/taskboard/pkg/validation"
)

type TaskHandler struct {
	Service *application.TaskService
	Logger  *logrus.Logger
}

func NewTaskHandler(service *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Service: service, Logger: logger}
}

type taskOut struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Owner     string `json:"owner"`
}

func toTaskOut(t *entity.Task) taskOut {
	return taskOut{ID: t.ID, Title: t.Title, Completed: t.Completed, Owner: t.Owner}
}

type taskCreateRequest struct {
	Title string `json:"title" binding:"required"`
}

type taskUpdateRequest struct {
	Title     string `json:"title" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

func principal(c *gin.Context) string {
	return c.GetString(middleware.CtxUsernameKey)
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid task id"})
		return 0, false
	}
	return id, true
}

// mapTaskError writes the 404/403 split the task endpoints share. verb
// varies per operation ("access", "update", "delete").
func (h *TaskHandler) mapTaskError(c *gin.Context, err error, verb string) {
	switch {
	case errors.Is(err, application.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
	case errors.Is(err, application.ErrNotTaskOwner):
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not authorized to " + verb + " this task"})
	default:
		h.Logger.WithError(err).Error("task operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

// Create POST /tasks {title}
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validation.ToDetails(err)})
		return
	}
	t, err := h.Service.Create(c.Request.Context(), principal(c), req.Title)
	if err != nil {
		h.Logger.WithError(err).Error("task create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, toTaskOut(t))
}

// List GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.Service.List(c.Request.Context(), principal(c))
	if err != nil {
		h.Logger.WithError(err).Error("task list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	out := make([]taskOut, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskOut(t))
	}
	c.JSON(http.StatusOK, out)
}

// Get GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	t, err := h.Service.Get(c.Request.Context(), principal(c), id)
	if err != nil {
		h.mapTaskError(c, err, "access")
		return
	}
	c.JSON(http.StatusOK, toTaskOut(t))
}

// Update PUT /tasks/:id {title, completed}
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validation.ToDetails(err)})
		return
	}
	t, err := h.Service.Update(c.Request.Context(), principal(c), id, req.Title, *req.Completed)
	if err != nil {
		h.mapTaskError(c, err, "update")
		return
	}
	c.JSON(http.StatusOK, toTaskOut(t))
}

// Delete DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), principal(c), id); err != nil {
		h.mapTaskError(c, err, "delete")
		return
	}
	c.Status(http.StatusNoContent)
}
