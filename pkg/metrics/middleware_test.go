package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, labels ...string) float64 {
	var m dto.Metric
	require.NoError(t, HttpRequestsTotal.WithLabelValues(labels...).Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, available string) float64 {
	var m dto.Metric
	require.NoError(t, PetsInventory.WithLabelValues(available).Write(&m))
	return m.GetGauge().GetValue()
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(GinPrometheusMiddleware("metrics-test"))
	router.GET("/pets/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestGinPrometheusMiddleware_UsesRouteTemplate(t *testing.T) {
	router := setupRouter()
	before := counterValue(t, "metrics-test", http.MethodGet, "/pets/:id", "200")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pets/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pets/2", nil))

	assert.Equal(t, before+2, counterValue(t, "metrics-test", http.MethodGet, "/pets/:id", "200"))
}

func TestGinPrometheusMiddleware_UnmatchedRoute(t *testing.T) {
	router := setupRouter()
	before := counterValue(t, "metrics-test", http.MethodGet, "unmatched", "404")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/1", nil))

	assert.Equal(t, before+1, counterValue(t, "metrics-test", http.MethodGet, "unmatched", "404"))
}

func TestGinPrometheusMiddleware_SkipsHealth(t *testing.T) {
	router := setupRouter()
	before := counterValue(t, "metrics-test", http.MethodGet, "/health", "200")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, before, counterValue(t, "metrics-test", http.MethodGet, "/health", "200"))
}

func TestSetInventory_FillsBothLabels(t *testing.T) {
	SetInventory(map[bool]int64{true: 3})

	assert.Equal(t, float64(3), gaugeValue(t, "true"))
	assert.Equal(t, float64(0), gaugeValue(t, "false"))
}
