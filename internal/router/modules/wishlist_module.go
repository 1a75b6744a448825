package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-api/internal/container"
	handlers "github.com/learnsphere/learnsphere-api/internal/interface/http"
	"github.com/learnsphere/learnsphere-api/internal/interface/middleware"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
)

// WishlistModule wires the per-user wishlist routes.
type WishlistModule struct {
	Handler *handlers.WishlistHandler
	JWT     *helpers.JWTManager
}

func NewWishlistModule(h *handlers.WishlistHandler, jwt *helpers.JWTManager) *WishlistModule {
	return &WishlistModule{Handler: h, JWT: jwt}
}

func (m *WishlistModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/wishlist")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))

	auth.GET("", m.Handler.List)
	auth.POST("/:courseId", m.Handler.Add)
	auth.DELETE("/:courseId", m.Handler.Remove)
}
