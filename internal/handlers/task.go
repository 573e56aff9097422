package handlers

import (
	"errors"
	"net/http"

	"github.com/emrecancorapci/chingu-backend/internal/dto"
	apierrors "github.com/emrecancorapci/chingu-backend/internal/errors"
	"github.com/emrecancorapci/chingu-backend/internal/middleware"
	"github.com/emrecancorapci/chingu-backend/internal/policy"
	"github.com/emrecancorapci/chingu-backend/internal/services"
	"github.com/emrecancorapci/chingu-backend/internal/utils"
	"github.com/emrecancorapci/chingu-backend/internal/validation"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns the tasks in the caller's scope.
func (h *TaskHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.List(principal, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedEnvelope{
		Data: dto.ToTaskDTOs(tasks),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one task in the caller's scope.
func (h *TaskHandler) Get(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	id, apiErr := validation.ParseID(c.Param("id"))
	if apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	task, err := h.taskService.Get(principal, id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.ToTaskDTO(*task)})
}

// Create adds a task under a project in the caller's scope.
func (h *TaskHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	var req validation.CreateTaskRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	task, err := h.taskService.Create(principal, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{Data: dto.CreatedDTO{
		ID:        task.ID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}})
}

// Patch partially updates a task in the caller's scope.
func (h *TaskHandler) Patch(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	id, apiErr := validation.ParseID(c.Param("id"))
	if apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	var req validation.PatchTaskRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	task, err := h.taskService.Patch(principal, id, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.ToTaskDTO(*task)})
}

// Delete removes a task in the caller's scope.
func (h *TaskHandler) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	id, apiErr := validation.ParseID(c.Param("id"))
	if apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	if err := h.taskService.Delete(principal, id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.DeletedDTO{ID: id}})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrCorruptRole):
		apierrors.Respond(c, apierrors.BadRequest("Token is corrupted"))
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.Respond(c, apierrors.NotFound(""))
	default:
		apierrors.Respond(c, err)
	}
}
