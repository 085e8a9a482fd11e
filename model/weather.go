// api/model/weather.go
package model

import "time"

// SensorReading summarises one sensor over a sol
type SensorReading struct {
	Average float64 `json:"av"`
	Min     float64 `json:"mn"`
	Max     float64 `json:"mx"`
	Samples int     `json:"ct"`
}

// WeatherStats is the payload served by GET /weatherStats
type WeatherStats struct {
	Sol           string        `json:"sol"`
	Season        string        `json:"season,omitempty"`
	FirstUTC      time.Time     `json:"firstUTC"`
	LastUTC       time.Time     `json:"lastUTC"`
	Temperature   SensorReading `json:"temperature"`
	Pressure      SensorReading `json:"pressure"`
	WindSpeed     SensorReading `json:"windSpeed"`
	WindDirection string        `json:"windDirection,omitempty"`
	Source        string        `json:"source"`
	GeneratedAt   time.Time     `json:"generatedAt"`
}
