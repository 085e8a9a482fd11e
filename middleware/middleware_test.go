package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/weathergate/api/auth"
	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/middleware"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
	"github.com/dev-mohitbeniwal/weathergate/api/test/mock"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitNopLogger()
}

type stubVerifier struct {
	result *auth.Result
	err    error
}

func (v stubVerifier) Verify(*http.Request) (*auth.Result, error) {
	return v.result, v.err
}

type recordingListener struct {
	identity string
	creds    []model.Credential
}

func (l *recordingListener) OnCredentialsVerified(_ context.Context, identity string, creds []model.Credential) {
	l.identity = identity
	l.creds = creds
}

func echoIdentity(c *gin.Context) {
	c.String(http.StatusOK, util.GetIdentityFromContext(c))
}

func serve(r http.Handler, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, "/weatherStats", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	unauthenticated := stubVerifier{err: fmt.Errorf("%w: no token", echo_errors.ErrUnauthenticated)}
	certs := []model.Credential{{Type: "cool-cert"}}

	t.Run("records presented certificates", func(t *testing.T) {
		listener := &recordingListener{}
		r := gin.New()
		r.Use(middleware.Authenticate(stubVerifier{result: &auth.Result{Identity: "abc", Certificates: certs}}, listener, false))
		r.GET("/weatherStats", echoIdentity)

		w := serve(r, http.MethodGet)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc", w.Body.String())
		assert.Equal(t, "abc", listener.identity)
		assert.Equal(t, certs, listener.creds)
	})

	t.Run("identity without certificates", func(t *testing.T) {
		listener := &recordingListener{}
		r := gin.New()
		r.Use(middleware.Authenticate(stubVerifier{result: &auth.Result{Identity: "abc"}}, listener, false))
		r.GET("/weatherStats", echoIdentity)

		w := serve(r, http.MethodGet)

		assert.Equal(t, "abc", w.Body.String())
		assert.Empty(t, listener.identity)
	})

	t.Run("rejects unauthenticated", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.Authenticate(unauthenticated, &recordingListener{}, false))
		r.GET("/weatherStats", echoIdentity)

		w := serve(r, http.MethodGet)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"status":"error","description":"Authentication required"}`, w.Body.String())
	})

	t.Run("allows anonymous when configured", func(t *testing.T) {
		r := gin.New()
		r.Use(middleware.Authenticate(unauthenticated, &recordingListener{}, true))
		r.GET("/weatherStats", echoIdentity)

		w := serve(r, http.MethodGet)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS())
	r.GET("/weatherStats", echoIdentity)

	t.Run("headers on every response", func(t *testing.T) {
		w := serve(r, http.MethodGet)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Expose-Headers"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Private-Network"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		w := serve(r, http.MethodOptions)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Methods"))
	})
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewMemoryLimiter(2, time.Hour)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-Identity"); id != "" {
			util.SetIdentity(c, id)
		}
		c.Next()
	})
	r.Use(middleware.RateLimiter(limiter, 2, time.Hour))
	r.GET("/weatherStats", echoIdentity)

	call := func(identity string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/weatherStats", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		if identity != "" {
			req.Header.Set("X-Test-Identity", identity)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("abc"))
	assert.Equal(t, http.StatusOK, call("abc"))
	assert.Equal(t, http.StatusTooManyRequests, call("abc"))

	// other identities and anonymous callers have their own buckets
	assert.Equal(t, http.StatusOK, call("def"))
	assert.Equal(t, http.StatusOK, call(""))
	assert.Equal(t, http.StatusOK, call(""))
	assert.Equal(t, http.StatusTooManyRequests, call(""))
}

func TestLoggerRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Logger())
	r.GET("/weatherStats", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(util.RequestIDContextKey))
	})

	w := serve(r, http.MethodGet)
	id := w.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	w2 := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/weatherStats", nil)
	req.Header.Set(middleware.RequestIDHeader, "given-id")
	r.ServeHTTP(w2, req)
	assert.Equal(t, "given-id", w2.Header().Get(middleware.RequestIDHeader))
}

func TestMemoryLimiterEvictsIdleKeys(t *testing.T) {
	clock := mock.NewFakeClock(time.Date(2024, time.July, 7, 12, 0, 0, 0, time.UTC))
	limiter := middleware.NewMemoryLimiterWithClock(1, time.Minute, clock)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		allowed, err := limiter.Allow(ctx, fmt.Sprintf("10.0.0.%d", i))
		assert.NoError(t, err)
		assert.True(t, allowed)
	}
	assert.Equal(t, 50, limiter.Len())

	allowed, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)

	clock.Advance(time.Minute)
	allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, allowed)
	assert.Equal(t, 1, limiter.Len())

	// the recreated bucket still enforces the limit
	allowed, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, allowed)
}
