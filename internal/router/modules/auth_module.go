package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/container"
	handlers "github.com/taskboard/taskboard/internal/interface/http"
	"github.com/taskboard/taskboard/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Uniform per-IP limit on the public surface. This is transport-level
	// abuse protection, not an account lockout: it does not vary with
	// authentication outcomes.
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.POST("/register", limiter, m.Handler.Register)
	rg.POST("/login", limiter, m.Handler.Login)
}
