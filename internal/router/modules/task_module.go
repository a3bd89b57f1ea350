package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/satriadi/go-task-api/internal/interface/http"
	"github.com/satriadi/go-task-api/internal/interface/middleware"
)

// TaskModule wires the owner-scoped task routes. Everything here requires a
// bearer token; update and delete additionally run the ownership guard
// inside the service before writing.
type TaskModule struct {
	Handler *handlers.TaskHandler
	Authn   middleware.Authenticator
	Logger  *logrus.Logger
}

func NewTaskModule(h *handlers.TaskHandler, authn middleware.Authenticator, logger *logrus.Logger) *TaskModule {
	return &TaskModule{Handler: h, Authn: authn, Logger: logger}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.Use(middleware.Auth(m.Authn, m.Logger))
	{
		tasks.GET("", m.Handler.List)
		tasks.POST("", m.Handler.Create)
		tasks.GET("/search", m.Handler.Search)
		tasks.GET("/:id", m.Handler.Get)
		tasks.PUT("/:id", m.Handler.Update)
		tasks.DELETE("/:id", m.Handler.Delete)
	}
}
