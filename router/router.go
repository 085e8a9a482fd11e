// api/router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/weathergate/api/auth"
	"github.com/dev-mohitbeniwal/weathergate/api/controller"
	"github.com/dev-mohitbeniwal/weathergate/api/middleware"
	"github.com/dev-mohitbeniwal/weathergate/api/service"
)

// Options selects the collaborators placed in front of the weather route.
// A nil Limiter or Payment leaves that stage out of the chain.
type Options struct {
	Verifier             auth.Verifier
	Listener             service.CredentialListener
	AllowUnauthenticated bool

	Limiter           middleware.Limiter
	RateLimitRequests int
	RateLimitDuration time.Duration

	Payment gin.HandlerFunc
}

func SetupRouter(controllers *controller.Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	controllers.Health.RegisterRoutes(router)

	chain := []gin.HandlerFunc{
		middleware.Authenticate(opts.Verifier, opts.Listener, opts.AllowUnauthenticated),
	}
	if opts.Limiter != nil {
		chain = append(chain, middleware.RateLimiter(opts.Limiter, opts.RateLimitRequests, opts.RateLimitDuration))
	}
	if opts.Payment != nil {
		chain = append(chain, opts.Payment)
	}

	gated := router.Group("/", chain...)
	controllers.Weather.RegisterRoutes(gated)

	return router
}
