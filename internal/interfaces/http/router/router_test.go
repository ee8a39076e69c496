package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.Prefix())
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.middleware)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.Prefix())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("stores", "/stores")
	group.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/stores/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/stores/ping").Code)
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Let-In") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	})

	group := NewDomainGroup("tasks", "/tasks")
	group.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
	r.Register(group).Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/tasks/7").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/7", nil)
	req.Header.Set("X-Let-In", "1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("recipe", "/manuals")
		assert.Equal(t, "recipe", g.Name())
		assert.Equal(t, "/manuals", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("vendors", "/vendors")
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g.GET("", ok).POST("", ok).PUT("/:id", ok).PATCH("/:id", ok).DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		cases := []struct{ method, path string }{
			{http.MethodGet, "/api/v1/vendors"},
			{http.MethodPost, "/api/v1/vendors"},
			{http.MethodPut, "/api/v1/vendors/1"},
			{http.MethodPatch, "/api/v1/vendors/1"},
			{http.MethodDelete, "/api/v1/vendors/1"},
		}
		for _, tc := range cases {
			assert.Equal(t, http.StatusOK, serve(engine, tc.method, tc.path).Code, tc.method)
		}
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("inventory", "/inventory")
		g.Use(func(c *gin.Context) {
			c.Set("seen", true)
			c.Next()
		})
		g.GET("/groups", func(c *gin.Context) {
			if c.GetBool("seen") {
				c.Status(http.StatusOK)
				return
			}
			c.Status(http.StatusInternalServerError)
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/inventory/groups").Code)
	})

	t.Run("subgroups nest under the parent prefix", func(t *testing.T) {
		engine := gin.New()
		parent := NewDomainGroup("launch", "")
		stores := parent.Group("stores", "/stores")
		stores.GET("/:id/tasks", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
		tasks := parent.Group("tasks", "/tasks")
		tasks.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "task") })
		parent.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/stores/abc/tasks")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc", w.Body.String())
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/tasks/1").Code)
	})
}
