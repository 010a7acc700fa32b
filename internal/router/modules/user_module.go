package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/placebook/internal/interface/http"
	"github.com/oksasatya/placebook/internal/interface/middleware"
)

// UserModule wires account routes.
// Public: POST /api/users/signup, POST /api/users/login, GET /api/users
// Protected: GET /api/users/getuser
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   Guard
}

func NewUserModule(h *handlers.UserHandler, g Guard) *UserModule {
	return &UserModule{Handler: h, Guard: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	credsLimiter := m.Guard.Limit(10, time.Minute, middleware.KeyByIPAndPath()) // 10 req/min per IP and route

	users := rg.Group("/users")
	users.GET("", m.Handler.ListUsers)
	users.POST("/signup", credsLimiter, m.Handler.Signup)
	users.POST("/login", credsLimiter, m.Handler.Login)
	users.GET("/getuser", m.Guard.Auth(), m.Handler.GetUser)
}
