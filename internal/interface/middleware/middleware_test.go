package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(helpers.DiscardLogger()))
	r.Use(mw...)
	r.NoRoute(NoRoute())
	return r
}

func do(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerAppError(t *testing.T) {
	r := newEngine()
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(apperror.Validation(apperror.InvalidInput).WithDetails(map[string]string{"name": "is required"}))
	})

	w := do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"message":"Invalid inputs passed, please check your data.","details":{"name":"is required"}}`, w.Body.String())
}

func TestErrorHandlerUnknownError(t *testing.T) {
	r := newEngine()
	r.GET("/x", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })

	w := do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"An unknown error occurred!"}`, w.Body.String())
}

func TestErrorHandlerSkipsWrittenResponse(t *testing.T) {
	r := newEngine()
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		_ = c.Error(errors.New("late"))
	})

	w := do(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestNoRoute(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Could not find this route."}`, w.Body.String())
}

func TestAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret")
	r := newEngine()
	r.Use(Auth(jwt))
	r.Any("/me", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	token, _, err := jwt.Issue("u1", "a@x.com")
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	for _, h := range []string{"", "Bearer", "Basic abc", "Bearer garbage"} {
		w = do(r, http.MethodGet, "/me", http.Header{"Authorization": {h}})
		assert.Equal(t, http.StatusUnauthorized, w.Code, h)
		assert.JSONEq(t, `{"message":"Authentication failed!"}`, w.Body.String())
	}

	w = do(r, http.MethodOptions, "/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestIDKey)) })

	w := do(r, http.MethodGet, "/x", nil)
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))

	id := uuid.NewString()
	w = do(r, http.MethodGet, "/x", http.Header{HeaderRequestID: {id}})
	assert.Equal(t, id, w.Body.String())
}

func TestRealIP(t *testing.T) {
	r := newEngine(RealIP())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	w := do(r, http.MethodGet, "/x", http.Header{"X-Forwarded-For": {"203.0.113.7, 10.0.0.1"}})
	assert.Equal(t, "203.0.113.7", w.Body.String())

	w = do(r, http.MethodGet, "/x", http.Header{"Cf-Connecting-Ip": {"198.51.100.2"}, "X-Forwarded-For": {"203.0.113.7"}})
	assert.Equal(t, "198.51.100.2", w.Body.String())

	// httptest requests come from 192.0.2.1
	w = do(r, http.MethodGet, "/x", http.Header{"X-Forwarded-For": {"not-an-ip"}})
	assert.Equal(t, "192.0.2.1", w.Body.String())
}

func TestLocalRateLimit(t *testing.T) {
	r := newEngine(LocalRateLimit(2, time.Minute, KeyByIP(), nil))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/login", nil).Code)
	w := do(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// preflight is never limited
	assert.NotEqual(t, http.StatusTooManyRequests, do(r, http.MethodOptions, "/login", nil).Code)
}

func TestRateLimitWithoutRedisFallsBackToLocal(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/x", nil).Code)
}

func TestAllowPrivateIPBypass(t *testing.T) {
	r := newEngine(LocalRateLimit(1, time.Minute, KeyByIP(), AllowPrivateIP()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	// httptest requests come from 192.0.2.1, which is not private
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/x", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/x", nil).Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetricsMap("test_http_metrics")
	// metrics must wrap the error handler to see the final status
	r := gin.New()
	r.Use(Metrics(m), ErrorHandler(helpers.DiscardLogger()))
	r.NoRoute(NoRoute())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do(r, http.MethodGet, "/x", nil)
	do(r, http.MethodGet, "/missing", nil)

	assert.Equal(t, "1", m.Get("status_204").String())
	assert.Equal(t, "1", m.Get("status_404").String())
	assert.Equal(t, "2", m.Get("requests_total").String())
	assert.Same(t, m, NewMetricsMap("test_http_metrics"))
}
