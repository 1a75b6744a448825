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

// UserModule wires admin user management and the owner-or-admin profile
// routes. Everything here requires an authenticated caller.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/user")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))

	adminOnly := middleware.RequireRoles(entity.RoleAdmin)
	selfOrAdmin := middleware.RequireSelfOrAdmin("id")

	auth.POST("/uploadImage", m.Handler.UploadImage)
	auth.POST("/add", adminOnly, m.Handler.Create)
	auth.GET("/all", adminOnly, m.Handler.List)
	auth.GET("/:id", selfOrAdmin, m.Handler.Get)
	auth.PUT("/update/:id", selfOrAdmin, m.Handler.Update)
	auth.DELETE("/:id", adminOnly, m.Handler.Delete)
}
