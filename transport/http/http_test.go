package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roombook/config"
	jwtMocks "roombook/infras/jwt/mocks"
	"roombook/infras/otel/mocks"
	"roombook/permissions"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/transport/http/middleware"
	"roombook/transport/http/router"
)

func newTestServer(t *testing.T) (*HTTP, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}

	r := router.New(router.DomainHandlers{}, router.Middlewares{
		App:      middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewMockRedisCache(ctrl)),
		AuthRole: middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(ctrl), mocks.NewOtel(), permissions.Get(), cfg),
	})

	server := New(cfg, r, nil, mocks.NewOtel())

	return server, server.Handler()
}

func TestHTTP_HealthFollowsState(t *testing.T) {
	server, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	server.state.Store(int32(ServerStateInGracePeriod))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTP_CleanupPeriodRejectsRequests(t *testing.T) {
	server, handler := newTestServer(t)

	server.state.Store(int32(ServerStateInCleanupPeriod))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/bookings", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTP_ProtectedRouteNeedsToken(t *testing.T) {
	_, handler := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/admin/rooms/r-1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
