package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupRecoveryRouter(logger *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(Recovery(logger))
	r.POST("/tasks/reassign", func(c *gin.Context) {
		panic("planner exploded")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRecovery_LogsPanicWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	router := setupRecoveryRouter(zap.New(core).Sugar())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tasks/reassign", nil)
	req.Header.Set(RequestIDHeader, "req-42")

	require.NotPanics(t, func() { router.ServeHTTP(w, req) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "/tasks/reassign", fields["path"])
	assert.Equal(t, http.MethodPost, fields["method"])
	assert.Equal(t, "planner exploded", fields["error"])
	assert.NotEmpty(t, fields["stack"])
}

func TestRecovery_GeneratedRequestIDIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	router := setupRecoveryRouter(zap.New(core).Sugar())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks/reassign", nil))

	id := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
}

func TestRecovery_PassesThroughNormalRequests(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	router := setupRecoveryRouter(zap.New(core).Sugar())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, logs.Len())
}
