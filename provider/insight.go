// api/provider/insight.go

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
)

const (
	maxRetries = 3
	baseDelay  = 500 * time.Millisecond
	maxDelay   = 4 * time.Second
)

// HTTPError captures unexpected upstream status codes
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

func (e *HTTPError) retryable() bool {
	switch e.StatusCode {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// InsightProvider reads the NASA InSight Mars weather feed
type InsightProvider struct {
	url    string
	client *http.Client
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewInsightProvider(url string, client *http.Client) *InsightProvider {
	return &InsightProvider{
		url:    url,
		client: client,
		sleep:  sleepCtx,
	}
}

type insightSensor struct {
	Av float64 `json:"av"`
	Mn float64 `json:"mn"`
	Mx float64 `json:"mx"`
	Ct int     `json:"ct"`
}

type insightSol struct {
	AT       *insightSensor `json:"AT"`
	PRE      *insightSensor `json:"PRE"`
	HWS      *insightSensor `json:"HWS"`
	Season   string         `json:"Season"`
	FirstUTC time.Time      `json:"First_UTC"`
	LastUTC  time.Time      `json:"Last_UTC"`
	WD       struct {
		MostCommon *struct {
			CompassPoint string `json:"compass_point"`
		} `json:"most_common"`
	} `json:"WD"`
}

// Fetch downloads the feed, retrying transient upstream failures, and maps
// the most recent sol.
func (p *InsightProvider) Fetch(ctx context.Context) (*model.WeatherStats, error) {
	var body []byte
	var err error
	delay := baseDelay

	for attempt := 0; attempt < maxRetries; attempt++ {
		body, err = p.get(ctx)
		if err == nil {
			break
		}
		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || !httpErr.retryable() || attempt == maxRetries-1 {
			break
		}

		jitter := time.Duration(rand.Int63n(int64(delay)))
		logger.Warn("Retrying weather upstream",
			zap.Int("attempt", attempt+1),
			zap.Int("status", httpErr.StatusCode),
			zap.Duration("delay", delay+jitter))
		if sleepErr := p.sleep(ctx, delay+jitter); sleepErr != nil {
			err = sleepErr
			break
		}
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", echo_errors.ErrUpstreamData, err)
	}

	return parseInsight(body)
}

func (p *InsightProvider) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather data: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read weather data: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func parseInsight(body []byte) (*model.WeatherStats, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", echo_errors.ErrUpstreamData, err)
	}

	var solKeys []string
	if keys, ok := raw["sol_keys"]; ok {
		if err := json.Unmarshal(keys, &solKeys); err != nil {
			return nil, fmt.Errorf("%w: sol_keys: %w", echo_errors.ErrUnexpectedShape, err)
		}
	}
	if len(solKeys) == 0 {
		return nil, fmt.Errorf("%w: %w: no sols reported", echo_errors.ErrUpstreamData, echo_errors.ErrUnexpectedShape)
	}

	latest := solKeys[len(solKeys)-1]
	solRaw, ok := raw[latest]
	if !ok {
		return nil, fmt.Errorf("%w: %w: sol %s missing", echo_errors.ErrUpstreamData, echo_errors.ErrUnexpectedShape, latest)
	}

	var sol insightSol
	if err := json.Unmarshal(solRaw, &sol); err != nil {
		return nil, fmt.Errorf("%w: %w", echo_errors.ErrUpstreamData, err)
	}

	stats := &model.WeatherStats{
		Sol:         latest,
		Season:      sol.Season,
		FirstUTC:    sol.FirstUTC,
		LastUTC:     sol.LastUTC,
		Temperature: toReading(sol.AT),
		Pressure:    toReading(sol.PRE),
		WindSpeed:   toReading(sol.HWS),
		Source:      ModeNASA,
		GeneratedAt: time.Now().UTC(),
	}
	if sol.WD.MostCommon != nil {
		stats.WindDirection = sol.WD.MostCommon.CompassPoint
	}
	return stats, nil
}

func toReading(s *insightSensor) model.SensorReading {
	if s == nil {
		return model.SensorReading{}
	}
	return model.SensorReading{Average: s.Av, Min: s.Mn, Max: s.Mx, Samples: s.Ct}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
