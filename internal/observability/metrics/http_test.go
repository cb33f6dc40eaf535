package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGinMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	engine := gin.New()
	engine.Use(m.GinMiddleware())
	engine.GET("/api/customers", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, testutil.CollectAndCount(m.requestsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.requestsTotal.WithLabelValues(http.MethodGet, "/api/customers", "200"),
	))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
}
