// api/provider/synthetic.go

package provider

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/dev-mohitbeniwal/weathergate/api/model"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

// A Martian solar day.
const solDuration = 88775244 * time.Millisecond

// InSight touched down on sol 0 at this instant.
var landing = time.Date(2018, time.November, 26, 19, 52, 59, 0, time.UTC)

// SyntheticProvider generates plausible InSight-style readings without any I/O
type SyntheticProvider struct {
	clock util.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSyntheticProvider(clock util.Clock, seed int64) *SyntheticProvider {
	if clock == nil {
		clock = util.SystemClock()
	}
	return &SyntheticProvider{
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (p *SyntheticProvider) Fetch(ctx context.Context) (*model.WeatherStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := p.clock.Now().UTC()
	sol := int64(now.Sub(landing) / solDuration)
	solStart := landing.Add(time.Duration(sol) * solDuration)

	p.mu.Lock()
	defer p.mu.Unlock()

	return &model.WeatherStats{
		Sol:           strconv.FormatInt(sol, 10),
		Season:        season(sol),
		FirstUTC:      solStart,
		LastUTC:       solStart.Add(solDuration - time.Second),
		Temperature:   p.reading(-62, 30),
		Pressure:      p.reading(720, 25),
		WindSpeed:     p.reading(5, 4),
		WindDirection: compassPoints[p.rng.Intn(len(compassPoints))],
		Source:        ModeSynthetic,
		GeneratedAt:   now,
	}, nil
}

var compassPoints = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

// reading draws an average around centre and a spread either side of it.
func (p *SyntheticProvider) reading(centre, spread float64) model.SensorReading {
	avg := centre + (p.rng.Float64()*2-1)*spread/3
	lo := avg - p.rng.Float64()*spread
	hi := avg + p.rng.Float64()*spread
	return model.SensorReading{
		Average: round3(avg),
		Min:     round3(lo),
		Max:     round3(hi),
		Samples: 100000 + p.rng.Intn(250000),
	}
}

// Mars has a 668 sol year; seasons are approximated as equal quarters.
func season(sol int64) string {
	switch (sol % 668) / 167 {
	case 0:
		return "winter"
	case 1:
		return "spring"
	case 2:
		return "summer"
	default:
		return "fall"
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
