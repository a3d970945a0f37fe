package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("CountsRequests", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/counted", func(c *gin.Context) {
			c.String(200, "ok")
		})

		before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/counted", "200"))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/counted", nil))
		after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/counted", "200"))

		assert.Equal(t, before+1, after)
	})

	t.Run("LabelsErrorStatus", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/failing", func(c *gin.Context) {
			c.String(500, "boom")
		})

		before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/failing", "500"))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/failing", nil))
		after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/failing", "500"))

		assert.Equal(t, before+1, after)
	})

	t.Run("StaticCountersByKind", func(t *testing.T) {
		fileBefore := testutil.ToFloat64(StaticServedTotal.WithLabelValues("file"))
		fbBefore := testutil.ToFloat64(StaticServedTotal.WithLabelValues("fallback"))

		RecordStaticFile()
		RecordStaticFile()
		RecordStaticFallback()

		assert.Equal(t, fileBefore+2, testutil.ToFloat64(StaticServedTotal.WithLabelValues("file")))
		assert.Equal(t, fbBefore+1, testutil.ToFloat64(StaticServedTotal.WithLabelValues("fallback")))
	})
}
