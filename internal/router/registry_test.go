package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingModule struct{}

func (pingModule) Register(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tag": c.GetString("tag")})
	})
}

func TestRegistry_UseAppliesToModuleRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	reg := NewRegistry(engine)
	reg.Use(func(c *gin.Context) {
		c.Set("tag", "tagged")
		c.Next()
	})
	reg.Add(pingModule{})
	reg.RegisterAll()

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// Middleware added through the registry runs on every module route.
	assert.Contains(t, w.Body.String(), "tagged")
}
