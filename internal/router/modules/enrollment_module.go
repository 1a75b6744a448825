package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-api/internal/container"
	handlers "github.com/learnsphere/learnsphere-api/internal/interface/http"
	"github.com/learnsphere/learnsphere-api/internal/interface/middleware"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
)

// EnrollmentModule wires course sign-up routes for authenticated users.
type EnrollmentModule struct {
	Handler *handlers.EnrollmentHandler
	JWT     *helpers.JWTManager
}

func NewEnrollmentModule(h *handlers.EnrollmentHandler, jwt *helpers.JWTManager) *EnrollmentModule {
	return &EnrollmentModule{Handler: h, JWT: jwt}
}

func (m *EnrollmentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/enrollments")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))

	auth.POST("/:courseId", m.Handler.Enroll)
	auth.GET("/my", m.Handler.MyCourses)
}
