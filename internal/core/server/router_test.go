package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop(), origins)
	r.POST("/news", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/categories", func(c *gin.Context) {
		c.Header("X-Content-Degraded", "1")
		c.JSON(http.StatusOK, []string{})
	})
	return r
}

func TestCORSPreflightAllowsAuthorization(t *testing.T) {
	for name, origins := range map[string][]string{
		"default":    nil,
		"configured": {"http://admin.example"},
	} {
		t.Run(name, func(t *testing.T) {
			r := newTestRouter(origins)
			req := httptest.NewRequest(http.MethodOptions, "/news", nil)
			req.Header.Set("Origin", "http://admin.example")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code >= 300 {
				t.Fatalf("preflight rejected: %d", w.Code)
			}
			if w.Header().Get("Access-Control-Allow-Origin") == "" {
				t.Fatalf("origin not allowed: %v", w.Header())
			}
			allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
			if !strings.Contains(allowed, "authorization") {
				t.Fatalf("Authorization not allowed: %q", allowed)
			}
		})
	}
}

func TestCORSExposesDegradedHeader(t *testing.T) {
	r := newTestRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://reader.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	if w.Code != http.StatusOK || !strings.Contains(exposed, "x-content-degraded") {
		t.Fatalf("degraded header not exposed: %d %q", w.Code, exposed)
	}
}
