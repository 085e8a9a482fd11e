// api/controller/controllers.go
package controller

import "github.com/dev-mohitbeniwal/weathergate/api/service"

type Controllers struct {
	Weather *WeatherController
	Health  *HealthController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Weather: NewWeatherController(services.GateKeeper),
		Health:  NewHealthController(),
	}
}
