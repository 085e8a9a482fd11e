// api/controller/weather_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	pdp_model "github.com/dev-mohitbeniwal/weathergate/api/pdp/model"
	"github.com/dev-mohitbeniwal/weathergate/api/service"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

const (
	MsgIneligible    = "You are not cool enough!"
	MsgUpstreamError = "Error fetching weather data"
)

type WeatherController struct {
	gateKeeper service.IGateKeeperService
}

func NewWeatherController(gateKeeper service.IGateKeeperService) *WeatherController {
	return &WeatherController{
		gateKeeper: gateKeeper,
	}
}

// RegisterRoutes registers the API routes
func (wc *WeatherController) RegisterRoutes(r gin.IRoutes) {
	r.GET("/weatherStats", wc.GetWeatherStats)
}

// GetWeatherStats endpoint
func (wc *WeatherController) GetWeatherStats(c *gin.Context) {
	identity := util.GetIdentityFromContext(c)
	outcome := wc.gateKeeper.Evaluate(c.Request.Context(), identity)
	render(c, outcome)
}

// render writes exactly one response for outcome.
func render(c *gin.Context, outcome pdp_model.Outcome) {
	switch outcome.Kind {
	case pdp_model.OutcomeServed:
		c.JSON(http.StatusOK, outcome.Payload)
	case pdp_model.OutcomeDenied:
		util.RespondWithError(c, http.StatusBadRequest, MsgIneligible, echo_errors.ErrIneligible)
	case pdp_model.OutcomeFailed:
		util.RespondWithError(c, http.StatusInternalServerError, MsgUpstreamError, outcome.Err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, "Internal server error", echo_errors.ErrInternalServer)
	}
}
