package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/container"
	handlers "github.com/taskboard/taskboard/internal/interface/http"
	"github.com/taskboard/taskboard/internal/interface/middleware"
	"github.com/taskboard/taskboard/pkg/token"
)

type TaskModule struct {
	Handler *handlers.TaskHandler
	Tokens  *token.Manager
}

func NewTaskModule(h *handlers.TaskHandler, tokens *token.Manager) *TaskModule {
	return &TaskModule{Handler: h, Tokens: tokens}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	// The bearer gate runs before every task handler; persistence is never
	// touched for a request that fails validation.
	tasks := rg.Group("/tasks")
	tasks.Use(limiter, middleware.Auth(m.Tokens, container.GetLogger()))
	{
		tasks.POST("", m.Handler.Create)
		tasks.GET("", m.Handler.List)
		tasks.GET("/:id", m.Handler.Get)
		tasks.PUT("/:id", m.Handler.Update)
		tasks.DELETE("/:id", m.Handler.Delete)
	}
}
