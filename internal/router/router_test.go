package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"guardianclima/internal/auth"
	"guardianclima/internal/config"
	"guardianclima/internal/handler"
	"guardianclima/internal/model"
)

func newTestRouter() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{}
	jwtService := auth.NewJWTService("test-secret")

	// Handlers are never reached in these tests; the middleware rejects first.
	Register(
		e,
		cfg,
		jwtService,
		handler.NewAuthHandler(nil),
		handler.NewUserHandler(nil),
		handler.NewWeatherHandler(nil, nil),
		handler.NewAdviceHandler(nil),
		handler.NewOutfitHandler(nil),
	)
	return e
}

func TestRouter_SecuredRoutesRejectUnauthenticated(t *testing.T) {
	e := newTestRouter()

	securedRoutes := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/user/preferences"},
		{http.MethodPost, "/user/upgrade"},
		{http.MethodGet, "/v1/weather/Madrid"},
		{http.MethodGet, "/v1/history"},
		{http.MethodGet, "/v1/ai-advice/Madrid"},
		{http.MethodPost, "/v1/ai-outfit"},
		{http.MethodPost, "/v1/ai-travel-assistant"},
		{http.MethodGet, "/v1/outfits"},
		{http.MethodPost, "/v1/outfits"},
	}

	for _, route := range securedRoutes {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.target, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "missing token")

			req = httptest.NewRequest(route.method, route.target, nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
			rec = httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "garbage token")
		})
	}
}

func TestRouter_ForgedTokenIsRejected(t *testing.T) {
	e := newTestRouter()

	forged, err := auth.NewJWTService("other-secret").IssueForUser(&model.User{ID: 4, Username: "ana", Plan: model.PlanFree})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_PublicRoutes(t *testing.T) {
	e := newTestRouter()

	t.Run("healthz needs no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("register validates before touching the service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
