package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apierrors "github.com/rroosshhaann/whisper-diarization/internal/api/errors"
	apperrors "github.com/rroosshhaann/whisper-diarization/internal/app/errors"
)

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.Use(StructuredLogging(zaptest.NewLogger(t)))
	router.Use(ErrorHandler(zaptest.NewLogger(t)))
	router.Use(CORS([]string{"*"}))
	return router
}

func TestRequestID(t *testing.T) {
	router := newRouter(t)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "given-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "given-id", w.Body.String())
	assert.Equal(t, "given-id", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	router := newRouter(t)
	router.GET("/boom", func(c *gin.Context) {
		panic(errors.New("nil map write"))
	})
	router.GET("/conflict", func(c *gin.Context) {
		panic(apierrors.NewConflictError("busy"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, "Internal server error", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleError(t *testing.T) {
	router := newRouter(t)
	router.GET("/jobs/:id", func(c *gin.Context) {
		HandleError(c, apperrors.JobNotFound(c.Param("id")))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"not_found"`)
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(t)
	router.POST("/jobs", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestCORSAllowList(t *testing.T) {
	testCases := []struct {
		name    string
		origins []string
		origin  string
		allowed string
	}{
		{name: "listed origin", origins: []string{"https://app.example"}, origin: "https://app.example", allowed: "https://app.example"},
		{name: "unlisted origin", origins: []string{"https://app.example"}, origin: "https://evil.example", allowed: ""},
		{name: "no origins configured", origins: nil, origin: "https://app.example", allowed: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(CORS(tc.origins))
			router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tc.origin)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.allowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
