// api/pdp/model/cache.go
package model

import (
	"time"

	"github.com/dev-mohitbeniwal/weathergate/api/model"
)

// CachedPayload is the single slot held by the result cache
type CachedPayload struct {
	Value       *model.WeatherStats
	GeneratedAt time.Time
}

// FreshAt reports whether the payload is younger than window at now.
func (p *CachedPayload) FreshAt(now time.Time, window time.Duration) bool {
	if p == nil || p.Value == nil {
		return false
	}
	return now.Sub(p.GeneratedAt) < window
}
