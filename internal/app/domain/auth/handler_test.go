package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/observability/metrics"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/pkg/config"
)

func newTestRouter(t *testing.T, onLogout func(uid string)) (*gin.Engine, config.JWTConfig) {
	t.Helper()
	metrics.InitAppMetrics()
	gin.SetMode(gin.TestMode)

	jwtCfg := config.JWTConfig{
		SecretKey: "test-secret-key-at-least-32-characters",
		TokenTTL:  time.Hour,
		Issuer:    "yatra-test",
	}
	h := NewHandler(NewSessionManager(0, zap.NewNop()), jwtCfg, zap.NewNop(), onLogout)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/guest", h.LoginAsGuest)
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/api/auth/session", h.Session)
	return r, jwtCfg
}

func authCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("auth cookie not set")
	return nil
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("SetsCookieAndReturnsSession", func(t *testing.T) {
		r, jwtCfg := newTestRouter(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email": "asha@example.com", "password": "secret123"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"displayName":"asha"`)

		cookie := authCookie(t, resp)
		session, err := ValidateToken(cookie.Value, jwtCfg)
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", session.Email)
	})

	t.Run("RejectsShortPassword", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email": "asha@example.com", "password": "abc"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("RejectsMissingBody", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestSessionEndpoint(t *testing.T) {
	t.Run("AnonymousWithoutCookie", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"kind":"anonymous"`)
	})

	t.Run("GuestRoundTrip", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)

		loginResp := httptest.NewRecorder()
		r.ServeHTTP(loginResp, httptest.NewRequest(http.MethodPost, "/api/auth/guest", nil))
		require.Equal(t, http.StatusOK, loginResp.Code)
		cookie := authCookie(t, loginResp)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.AddCookie(cookie)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"kind":"guest"`)
		assert.Contains(t, resp.Body.String(), "Guest Traveler")
	})
}

func TestLogoutEndpoint(t *testing.T) {
	var droppedUID string
	r, _ := newTestRouter(t, func(uid string) { droppedUID = uid })

	loginResp := httptest.NewRecorder()
	r.ServeHTTP(loginResp, httptest.NewRequest(http.MethodPost, "/api/auth/guest", nil))
	cookie := authCookie(t, loginResp)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"kind":"anonymous"`)
	assert.True(t, strings.HasPrefix(droppedUID, "guest-"))

	// The cleared cookie expires immediately.
	cleared := authCookie(t, resp)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.MaxAge < 0)
}
