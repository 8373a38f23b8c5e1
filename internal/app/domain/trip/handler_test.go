package trip

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/middleware"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/observability/metrics"
)

func newHandlerRouter(t *testing.T, search *MockSearch, gen *MockGenerator, shares *MockShares) *gin.Engine {
	t.Helper()
	metrics.InitAppMetrics()
	gin.SetMode(gin.TestMode)

	service := newTestService(search, gen, shares)
	handler := NewHandler(service, shares, NewManager(), zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(middleware.SessionContextKey), models.Session{
			Kind: models.SessionGuest,
			UID:  "guest-test",
		})
		c.Next()
	})
	r.POST("/api/search", handler.Search)
	r.GET("/api/trip", handler.GetTrip)
	r.POST("/api/trip/select", handler.Toggle)
	r.POST("/api/trip/generate", handler.Generate)
	r.POST("/api/trip/reset", handler.Reset)
	r.POST("/api/share", handler.Share)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestTripEndpoints(t *testing.T) {
	t.Run("FreshTripIsIdle", func(t *testing.T) {
		r := newHandlerRouter(t, new(MockSearch), new(MockGenerator), new(MockShares))

		req := httptest.NewRequest(http.MethodGet, "/api/trip", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"state":"IDLE"`)
	})

	t.Run("SearchReturnsSelectingSnapshot", func(t *testing.T) {
		search := new(MockSearch)
		search.On("Search", mock.Anything, "Jaipur").Return(jaipurResults, nil)
		r := newHandlerRouter(t, search, new(MockGenerator), new(MockShares))

		resp := postJSON(r, "/api/search", `{"query": "Jaipur"}`)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"state":"SELECTING"`)
		assert.Contains(t, resp.Body.String(), "Hawa Mahal")
	})

	t.Run("ToggleOutsideSelectingIsConflict", func(t *testing.T) {
		r := newHandlerRouter(t, new(MockSearch), new(MockGenerator), new(MockShares))

		resp := postJSON(r, "/api/trip/select", `{"attractionId": "hawa-mahal"}`)

		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("GenerateWithEmptySelectionIsRejected", func(t *testing.T) {
		search := new(MockSearch)
		search.On("Search", mock.Anything, "Jaipur").Return(jaipurResults, nil)
		r := newHandlerRouter(t, search, new(MockGenerator), new(MockShares))

		postJSON(r, "/api/search", `{"query": "Jaipur"}`)
		resp := postJSON(r, "/api/trip/generate", "")

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("FullFlowThroughShare", func(t *testing.T) {
		search := new(MockSearch)
		search.On("Search", mock.Anything, "Jaipur").Return(jaipurResults, nil)
		gen := new(MockGenerator)
		gen.On("Generate", mock.Anything, "Jaipur", mock.Anything).Return(jaipurPlan, nil)
		shares := new(MockShares)
		shares.On("Save", mock.Anything, *jaipurPlan, "Jaipur").Return("abc123def", nil)
		r := newHandlerRouter(t, search, gen, shares)

		postJSON(r, "/api/search", `{"query": "Jaipur"}`)
		postJSON(r, "/api/trip/select", `{"attractionId": "hawa-mahal"}`)

		resp := postJSON(r, "/api/trip/generate", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"state":"VIEWING_PLAN"`)

		resp = postJSON(r, "/api/share", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"url":"/?trip=abc123def"`)
	})

	t.Run("ShareWithoutPlanIsConflict", func(t *testing.T) {
		r := newHandlerRouter(t, new(MockSearch), new(MockGenerator), new(MockShares))

		resp := postJSON(r, "/api/share", "")

		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("SharedLinkParamJumpsToPlan", func(t *testing.T) {
		shares := new(MockShares)
		shares.On("Load", mock.Anything, "abc123def").Return(&models.SharedTripRecord{
			ID:        "abc123def",
			Itinerary: *jaipurPlan,
			Location:  "Jaipur",
		}, nil)
		r := newHandlerRouter(t, new(MockSearch), new(MockGenerator), shares)

		req := httptest.NewRequest(http.MethodGet, "/api/trip?trip=abc123def", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"state":"VIEWING_PLAN"`)
		assert.Contains(t, resp.Body.String(), "Jaipur highlights")
	})

	t.Run("ResetReturnsIdle", func(t *testing.T) {
		search := new(MockSearch)
		search.On("Search", mock.Anything, "Jaipur").Return(jaipurResults, nil)
		r := newHandlerRouter(t, search, new(MockGenerator), new(MockShares))

		postJSON(r, "/api/search", `{"query": "Jaipur"}`)
		resp := postJSON(r, "/api/trip/reset", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"state":"IDLE"`)
	})
}
