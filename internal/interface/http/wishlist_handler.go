package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/learnsphere/learnsphere-api/internal/application"
	"github.com/learnsphere/learnsphere-api/internal/interface/middleware"
	"github.com/learnsphere/learnsphere-api/pkg/response"
)

type WishlistHandler struct {
	Svc    *application.WishlistService
	Logger *logrus.Logger
}

func NewWishlistHandler(svc *application.WishlistService, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{Svc: svc, Logger: logger}
}

// Add POST /wishlist/:courseId
func (h *WishlistHandler) Add(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	if err := h.Svc.Add(c.Request.Context(), id.ID, c.Param("courseId")); err != nil {
		switch {
		case errors.Is(err, application.ErrCourseNotFound):
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
		case errors.Is(err, application.ErrAlreadyWishlisted):
			response.Error[any](c, http.StatusBadRequest, "course already in wishlist", nil)
		default:
			h.Logger.WithError(err).Error("wishlist add failed")
			response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		}
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "added to wishlist")
}

// Remove DELETE /wishlist/:courseId
func (h *WishlistHandler) Remove(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	if err := h.Svc.Remove(c.Request.Context(), id.ID, c.Param("courseId")); err != nil {
		if errors.Is(err, application.ErrNotWishlisted) {
			response.Error[any](c, http.StatusNotFound, "course not in wishlist", nil)
			return
		}
		h.Logger.WithError(err).Error("wishlist remove failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "removed from wishlist")
}

// List GET /wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	cs, err := h.Svc.List(c.Request.Context(), id.ID)
	if err != nil {
		h.Logger.WithError(err).Error("wishlist list failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, viewCourses(cs), "wishlist")
}
