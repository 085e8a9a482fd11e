package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/weathergate/api/auth"
	"github.com/dev-mohitbeniwal/weathergate/api/controller"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/middleware"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
	"github.com/dev-mohitbeniwal/weathergate/api/pdp/dao"
	"github.com/dev-mohitbeniwal/weathergate/api/provider"
	"github.com/dev-mohitbeniwal/weathergate/api/router"
	"github.com/dev-mohitbeniwal/weathergate/api/service"
	"github.com/dev-mohitbeniwal/weathergate/api/test/mock"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

const (
	coolCert  = "cool-cert"
	certifier = "trusted-certifier"
)

var secret = []byte("router-secret")

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitNopLogger()
}

func newEngine(limiter middleware.Limiter) *gin.Engine {
	engine, _ := newEngineWithLedger(limiter, nil)
	return engine
}

func newEngineWithLedger(limiter middleware.Limiter, pay gin.HandlerFunc) (*gin.Engine, *dao.CredentialLedger) {
	clock := mock.NewFakeClock(time.Now())
	cache := util.NewResultCache(provider.NewSyntheticProvider(clock, 7), clock, 5*time.Minute)
	ledger := dao.NewCredentialLedger()
	services := service.InitializeServices(ledger, cache, coolCert, util.NewEventBus(), clock)

	verifier := auth.NewJWTVerifier(secret, util.NewValidationUtil(util.CertificateRequest{
		Certifiers: []string{certifier},
		Types:      map[string][]string{coolCert: {"cool"}},
	}))

	return router.SetupRouter(controller.InitializeControllers(services), router.Options{
		Verifier:          verifier,
		Listener:          services.GateKeeper,
		Limiter:           limiter,
		RateLimitRequests: 1,
		RateLimitDuration: time.Hour,
		Payment:           pay,
	}), ledger
}

func token(t *testing.T, identity string, certs ...model.Credential) string {
	tok, err := auth.IssueToken(secret, identity, certs, time.Minute)
	require.NoError(t, err)
	return tok
}

func get(r http.Handler, path, tok string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealthBypassesAuthentication(t *testing.T) {
	w := get(newEngine(nil), "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWeatherStatsRequiresIdentity(t *testing.T) {
	w := get(newEngine(nil), "/weatherStats", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWeatherStatsFlow(t *testing.T) {
	engine := newEngine(nil)
	cool := model.Credential{Type: coolCert, Issuer: certifier, SerialNumber: "s1", Fields: map[string]string{"cool": "true"}}

	// identity known, no certificate yet
	w := get(engine, "/weatherStats", token(t, "abc"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","description":"You are not cool enough!"}`, w.Body.String())

	// presenting the certificate unlocks the very next request
	w = get(engine, "/weatherStats", token(t, "abc", cool))
	require.Equal(t, http.StatusOK, w.Code)
	var first model.WeatherStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	// the credential stays recorded without being presented again
	w = get(engine, "/weatherStats", token(t, "abc"))
	require.Equal(t, http.StatusOK, w.Code)
	var second model.WeatherStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first, second)

	// another identity is not unlocked by abc's certificate
	w = get(engine, "/weatherStats", token(t, "def"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUntrustedCertificateIsIgnored(t *testing.T) {
	engine := newEngine(nil)
	forged := model.Credential{Type: coolCert, Issuer: "someone", Fields: map[string]string{"cool": "true"}}

	w := get(engine, "/weatherStats", token(t, "abc", forged))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimitAfterAuthentication(t *testing.T) {
	engine := newEngine(middleware.NewMemoryLimiter(1, time.Hour))

	assert.Equal(t, http.StatusBadRequest, get(engine, "/weatherStats", token(t, "abc")).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(engine, "/weatherStats", token(t, "abc")).Code)
	assert.Equal(t, http.StatusBadRequest, get(engine, "/weatherStats", token(t, "def")).Code)
	assert.Equal(t, http.StatusOK, get(engine, "/health", "").Code)
}

func TestRepeatedTokenRecordsCertificatesOnce(t *testing.T) {
	unpaid := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "X-PAYMENT header is required"})
	}
	engine, ledger := newEngineWithLedger(nil, unpaid)
	cool := model.Credential{Type: coolCert, Issuer: certifier, SerialNumber: "s1", Fields: map[string]string{"cool": "true"}}
	tok := token(t, "abc", cool)

	var last *httptest.ResponseRecorder
	for i := 0; i < 100; i++ {
		last = get(engine, "/weatherStats", tok)
	}

	assert.Equal(t, http.StatusPaymentRequired, last.Code)
	assert.Len(t, ledger.Lookup("abc"), 1)
}
