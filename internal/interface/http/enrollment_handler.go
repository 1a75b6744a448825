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

type EnrollmentHandler struct {
	Svc    *application.EnrollmentService
	Logger *logrus.Logger
}

func NewEnrollmentHandler(svc *application.EnrollmentService, logger *logrus.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{Svc: svc, Logger: logger}
}

// Enroll POST /enrollments/:courseId
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	e, err := h.Svc.Enroll(c.Request.Context(), id.ID, c.Param("courseId"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCourseNotFound):
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
		case errors.Is(err, application.ErrAlreadyEnrolled):
			response.Error[any](c, http.StatusBadRequest, "already enrolled in this course", nil)
		default:
			h.Logger.WithError(err).Error("enrollment failed")
			response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": e.ID, "courseId": e.CourseID}, "enrolled")
}

// MyCourses GET /enrollments/my
func (h *EnrollmentHandler) MyCourses(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	cs, err := h.Svc.MyCourses(c.Request.Context(), id.ID)
	if err != nil {
		h.Logger.WithError(err).Error("enrollment list failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, viewCourses(cs), "enrolled courses")
}
