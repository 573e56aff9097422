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

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns the caller's projects.
func (h *ProjectHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.List(principal, params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedEnvelope{
		Data: dto.ToProjectDTOs(projects),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one project in the caller's scope.
func (h *ProjectHandler) Get(c *gin.Context) {
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

	project, err := h.projectService.Get(principal, id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.ToProjectDTO(*project)})
}

// Create adds a project owned by the caller.
func (h *ProjectHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	var req validation.CreateProjectRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	project, err := h.projectService.Create(principal, req)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{Data: dto.CreatedDTO{
		ID:        project.ID,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}})
}

// Patch partially updates a project in the caller's scope.
func (h *ProjectHandler) Patch(c *gin.Context) {
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

	var req validation.PatchProjectRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	project, err := h.projectService.Patch(principal, id, req)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.ToProjectDTO(*project)})
}

// Delete removes a project in the caller's scope.
func (h *ProjectHandler) Delete(c *gin.Context) {
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

	if err := h.projectService.Delete(principal, id); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.DeletedDTO{ID: id}})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrCorruptRole):
		apierrors.Respond(c, apierrors.BadRequest("Token is corrupted"))
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.Respond(c, apierrors.NotFound(""))
	default:
		apierrors.Respond(c, err)
	}
}
