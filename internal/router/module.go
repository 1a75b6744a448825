package router

import "github.com/gin-gonic/gin"

// Module is one feature area (auth, users, courses, ...) that knows how to
// mount its own routes and route-level middleware.
type Module interface {
	Register(rg *gin.RouterGroup)
}
