package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

var allowedTaskUpdates = map[string]bool{
	"description": true,
	"completed":   true,
}

type taskHandler struct {
	tasks TaskProvider
}

func newTaskHandler(tasks TaskProvider) *taskHandler {
	return &taskHandler{tasks: tasks}
}

func (h *taskHandler) register(r *gin.Engine, users UserProvider) {
	authed := r.Group("/tasks", AuthRequired(users))
	{
		authed.POST("", h.create)
		authed.GET("", h.list)
		authed.GET("/:id", h.get)
		authed.PATCH("/:id", h.update)
		authed.DELETE("/:id", h.delete)
	}
}

type createTaskRequest struct {
	Description string `json:"description" validate:"required"`
	Completed   *bool  `json:"completed"`
}

func (h *taskHandler) create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completed := req.Completed != nil && *req.Completed
	task, err := h.tasks.Create(c.Request.Context(), currentUser(c).ID, req.Description, completed)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *taskHandler) list(c *gin.Context) {
	f, err := parseListFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.tasks.List(c.Request.Context(), currentUser(c).ID, f)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, out)
}

// parseListFilter maps the listing query parameters onto a repository
// filter. Bad values are errors; unknown query keys and unknown sort fields
// are quietly ignored.
func parseListFilter(c *gin.Context) (tasks.Filter, error) {
	var f tasks.Filter

	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.New("completed must be true or false")
		}
		f.Completed = &completed
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return f, errors.New("limit must be a non-negative integer")
		}
		f.Limit = limit
	}

	if v := c.Query("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil || skip < 0 {
			return f, errors.New("skip must be a non-negative integer")
		}
		f.Skip = skip
	}

	if v := c.Query("sortBy"); v != "" {
		field, dir, _ := strings.Cut(v, ":")
		f.SortBy = field
		f.SortDesc = dir == "desc"
	}

	return f, nil
}

func (h *taskHandler) get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.renderTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	Description *string `json:"description" validate:"omitempty,min=1"`
	Completed   *bool   `json:"completed"`
}

func (h *taskHandler) update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := checkAllowedKeys(raw, allowedTaskUpdates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidUpdates})
		return
	}

	var req updateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		req.Description = &trimmed
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), services.TaskParams{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.renderTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *taskHandler) delete(c *gin.Context) {
	task, err := h.tasks.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.renderTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *taskHandler) renderTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
	case errors.Is(err, common.ErrorNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
