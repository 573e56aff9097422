package handlers

import (
	"errors"
	"net/http"

	"github.com/emrecancorapci/chingu-backend/internal/dto"
	apierrors "github.com/emrecancorapci/chingu-backend/internal/errors"
	"github.com/emrecancorapci/chingu-backend/internal/services"
	"github.com/emrecancorapci/chingu-backend/internal/validation"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns its id with a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req validation.RegisterRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	result, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{Data: dto.RegisteredDTO{
		ID:    result.ID,
		Token: result.Token,
	}})
}

// Login authenticates a user and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req validation.LoginRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope{Data: dto.TokenDTO{Token: token}})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Respond(c, apierrors.Conflict("User already exists"))
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Respond(c, apierrors.Unauthorized("Invalid email or password."))
	default:
		apierrors.Respond(c, err)
	}
}
