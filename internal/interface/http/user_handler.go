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

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Student"`
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Create POST /user/add (admin only)
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
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
			h.Logger.WithError(err).Error("user create failed")
			response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, viewUser(u), "user created")
}

// List GET /user/all (admin only)
func (h *UserHandler) List(c *gin.Context) {
	us, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("user list failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, viewUsers(us), "users")
}

// Get GET /user/:id (owner or admin)
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("user get failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, viewUser(u), "user")
}

// Update PUT /user/update/:id (owner or admin)
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("user update failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, viewUser(u), "user updated")
}

// Delete DELETE /user/:id (admin only)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("user delete failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted")
}

// UploadImage POST /user/uploadImage (any authenticated user)
func (h *UserHandler) UploadImage(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadProfileImage(c.Request.Context(), id.ID, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).Error("profile image upload failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "image uploaded")
}
