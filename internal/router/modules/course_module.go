package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-api/internal/container"
	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	handlers "github.com/learnsphere/learnsphere-api/internal/interface/http"
	"github.com/learnsphere/learnsphere-api/internal/interface/middleware"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
)

// CourseModule wires course management (admin) and search (any user).
type CourseModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
}

func NewCourseModule(h *handlers.CourseHandler, jwt *helpers.JWTManager) *CourseModule {
	return &CourseModule{Handler: h, JWT: jwt}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/courses")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))

	adminOnly := middleware.RequireRoles(entity.RoleAdmin)

	auth.POST("/create", adminOnly, m.Handler.Create)
	auth.GET("/all", adminOnly, m.Handler.List)
	auth.DELETE("/delete/:id", adminOnly, m.Handler.Delete)
	auth.GET("/search", m.Handler.Search)
}
