package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MomentumReport/pkg/logger"
)

type routes struct{}

func (routes) RegisterRoutes(e *echo.Echo) {
	e.GET("/ok", func(c echo.Context) error { return SuccessResponse(c, "fine") })
	e.GET("/boom", func(echo.Context) error { panic("boom") })
	e.GET("/missing", func(c echo.Context) error {
		return AppErrorResponse(c, NotFoundErrorf("report %s not found", "2026-10-19"))
	})
}

func serve(s *Server, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestServerRoutesAndMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewServer(routes{}, logger.Nop(), WithPort(0), WithMetrics("/metrics", reg, reg))

	rec := serve(s, http.MethodGet, "/ok", map[string]string{"Origin": "https://example.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"message":"OK","data":"fine"}`, rec.Body.String())
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(s, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(s, http.MethodGet, "/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"ERR_NOT_FOUND"`)
	assert.Contains(t, rec.Body.String(), "report 2026-10-19 not found")

	rec = serve(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/ok",status="200"} 1`)
}

func TestServerMetricsPathDisabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewServer(routes{}, logger.Nop(), WithMetrics("", reg, reg), WithHost("127.0.0.1"), WithPort(9090))

	assert.Equal(t, "127.0.0.1:9090", s.Addr())
	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/metrics", nil).Code)
}
