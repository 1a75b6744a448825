package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/learnsphere/learnsphere-api/internal/application"
	"github.com/learnsphere/learnsphere-api/pkg/response"
)

type CourseHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewCourseHandler(svc *application.CourseService, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Logger: logger}
}

// Create POST /courses/create (admin only). Accepts multipart form fields
// title, description, videoUrl, price and an optional image file.
func (h *CourseHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		response.Error[any](c, http.StatusBadRequest, "title is required", nil)
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		response.Error[any](c, http.StatusBadRequest, "price must be a non-negative number", nil)
		return
	}

	var (
		image    io.Reader
		filename string
		ctype    string
	)
	if f, hd, ferr := c.Request.FormFile("file"); ferr == nil {
		defer func() { _ = f.Close() }()
		image, filename, ctype = f, hd.Filename, hd.Header.Get("Content-Type")
	}

	in := application.CreateCourseInput{
		Title:       title,
		Description: c.PostForm("description"),
		VideoURL:    c.PostForm("videoUrl"),
		Price:       price,
	}

	cr, err := h.Svc.Create(c.Request.Context(), in, image, filename, ctype)
	if err != nil {
		h.Logger.WithError(err).Error("course create failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}

	response.Success(c, http.StatusCreated, viewCourse(cr), "Course created successfully")
}

// List GET /courses/all (admin only)
func (h *CourseHandler) List(c *gin.Context) {
	cs, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("course list failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, viewCourses(cs), "courses")
}

// Delete DELETE /courses/delete/:id (admin only)
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrCourseNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("course delete failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Course deleted successfully")
}

// Search GET /courses/search?q= (any authenticated user)
func (h *CourseHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("course search failed")
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
