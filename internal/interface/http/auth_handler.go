package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/learnsphere/learnsphere-api/internal/application"
	"github.com/learnsphere/learnsphere-api/internal/interface/middleware"
	"github.com/learnsphere/learnsphere-api/pkg/response"
	"github.com/learnsphere/learnsphere-api/pkg/validation"
)

// AuthHandler exposes registration, login and current-user endpoints.
// Success responses use explicit per-operation structs so the wire contract
// is statically checkable; errors go through the shared envelope, which keeps
// the stable "message" field.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Student"`
}

// Login checks presence only; a malformed email is just an unknown one and
// falls through to the same 401 as any other bad credential.
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userView `json:"user"`
}

type meResponse struct {
	Success bool     `json:"success"`
	User    userView `json:"user"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Error[any](c, http.StatusBadRequest, "invalid role", nil)
		default:
			h.Logger.WithError(err).Error("registration failed")
			response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   res.Token,
		User:    viewUser(res.User),
	})
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "please provide email and password", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   res.Token,
		User:    viewUser(res.User),
	})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
		return
	}

	u, err := h.Svc.CurrentUser(c.Request.Context(), id.ID)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("current user lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	c.JSON(http.StatusOK, meResponse{Success: true, User: viewUser(u)})
}
