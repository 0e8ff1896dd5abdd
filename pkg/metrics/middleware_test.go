package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(GinMiddleware())
	engine.POST("/webhooks/paypal", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/health/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/webhooks/paypal", http.MethodPost, "200"))
	probesBefore := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/health/live", http.MethodGet, "200"))

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/webhooks/paypal", nil))
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/webhooks/paypal", http.MethodPost, "200")))
	assert.Equal(t, probesBefore, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/health/live", http.MethodGet, "200")))
}
