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

// UserHandler coordinates user management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns all users. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(principal, params)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PagedEnvelope{
		Data: dto.ToUserDTOs(users),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one user. Self or admin.
func (h *UserHandler) Get(c *gin.Context) {
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

	user, err := h.userService.Get(principal, id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.ToUserDTO(*user)})
}

// Create adds a new user. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return
	}

	var req validation.CreateUserRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	user, err := h.userService.Create(principal, req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{Data: dto.CreatedDTO{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}})
}

// Patch partially updates a user. Self or admin.
func (h *UserHandler) Patch(c *gin.Context) {
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

	var req validation.PatchUserRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	user, err := h.userService.Patch(principal, id, req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.ToUserDTO(*user)})
}

// Delete removes a user. Self or admin.
func (h *UserHandler) Delete(c *gin.Context) {
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

	if err := h.userService.Delete(principal, id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Data: dto.DeletedDTO{ID: id}})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrCorruptRole):
		apierrors.Respond(c, apierrors.BadRequest("Token is corrupted"))
	case errors.Is(err, services.ErrForbidden):
		apierrors.Respond(c, apierrors.Forbidden(""))
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Respond(c, apierrors.NotFound(""))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Respond(c, apierrors.Conflict("User already exists"))
	default:
		apierrors.Respond(c, err)
	}
}
