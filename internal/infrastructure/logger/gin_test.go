package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGinMiddleware_EnrichesRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	engine.Use(GinMiddleware(zap.NewNop()))

	var (
		ctxRequestID string
		ctxLogger    *zap.Logger
	)
	engine.GET("/ping", func(c *gin.Context) {
		ctxRequestID = GetRequestID(c.Request.Context())
		ctxLogger = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-42", ctxRequestID)
	assert.NotNil(t, ctxLogger)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the stored request logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		stored := zap.NewNop()
		c.Set("logger", stored)

		assert.Equal(t, stored, GetGinLogger(c))
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		assert.NotPanics(t, func() {
			GetGinLogger(c).Info("test")
		})
	})
}
