package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.GET("/admin", func(c *gin.Context) {
			if role != "" {
				c.Set(CtxRole, role)
			}
		}, RequireAdmin(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	run := func(r *gin.Engine) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, run(newRouter(RoleAdmin)))
	assert.Equal(t, http.StatusForbidden, run(newRouter("user")))
	assert.Equal(t, http.StatusForbidden, run(newRouter("")))
}
