package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/spinwheel/internal/admin"
	"github.com/playmatatu/spinwheel/internal/config"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdminToken(t *testing.T) {
	hash, err := admin.HashToken("letmein")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/x", RequireAdminToken(&config.Config{AdminTokenHash: hash}), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	require.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(AdminHeader, "nope")
	require.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(AdminHeader, "letmein")
	require.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestRequireAdminTokenUnconfigured(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireAdminToken(&config.Config{}), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(AdminHeader, "anything")
	require.Equal(t, http.StatusServiceUnavailable, serve(r, req).Code)
}

func TestWebSocketCORSCheck(t *testing.T) {
	tests := []struct {
		env, origin string
		want        int
	}{
		{"development", "http://localhost:3000", http.StatusOK},
		{"development", "https://evil.example", http.StatusForbidden},
		{"production", "https://wheel.example", http.StatusOK},
		{"production", "http://localhost:5173", http.StatusForbidden},
		{"production", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		cfg := &config.Config{Environment: tt.env, FrontendURL: "https://wheel.example"}
		r := gin.New()
		r.GET("/ws", WebSocketCORSCheck(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		require.Equal(t, tt.want, serve(r, req).Code, "%s %q", tt.env, tt.origin)
	}
}

func TestWebSocketCORSCheckIgnoresPlainRequests(t *testing.T) {
	r := gin.New()
	r.GET("/ws", WebSocketCORSCheck(&config.Config{Environment: "production"}), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	require.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestCORSMiddlewareAllowsFrontend(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.Config{Environment: "production", FrontendURL: "https://wheel.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://wheel.example")
	w := serve(r, req)
	require.Equal(t, "https://wheel.example", w.Header().Get("Access-Control-Allow-Origin"))
}
