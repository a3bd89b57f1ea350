package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/satriadi/go-task-api/internal/interface/http"
	"github.com/satriadi/go-task-api/internal/interface/middleware"
)

// AuthModule wires registration, login, and the authenticated profile route.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Authn   middleware.Authenticator
	Logger  *logrus.Logger
}

func NewAuthModule(h *handlers.AuthHandler, authn middleware.Authenticator, logger *logrus.Logger) *AuthModule {
	return &AuthModule{Handler: h, Authn: authn, Logger: logger}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Authn, m.Logger))
	{
		auth.GET("/me", m.Handler.Me)
	}
}
