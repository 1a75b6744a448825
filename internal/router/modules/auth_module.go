package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-api/internal/container"
	handlers "github.com/learnsphere/learnsphere-api/internal/interface/http"
	"github.com/learnsphere/learnsphere-api/internal/interface/middleware"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
)

// AuthModule wires registration, login and current-user routes.
// Public: POST /auth/register, POST /auth/login
// Protected: GET /auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
