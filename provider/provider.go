// api/provider/provider.go

// Package provider holds the upstream weather sources served by the gate.
package provider

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

const (
	ModeNASA      = "nasa"
	ModeSynthetic = "synthetic"
)

// Options configures New
type Options struct {
	Mode      string
	URL       string
	Timeout   time.Duration
	UserAgent string
	Clock     util.Clock
}

// New builds the provider selected by opts.Mode
func New(opts Options) (util.DataProvider, error) {
	switch opts.Mode {
	case ModeNASA:
		return NewInsightProvider(opts.URL, NewHTTPClient(opts.UserAgent, opts.Timeout)), nil
	case ModeSynthetic, "":
		return NewSyntheticProvider(opts.Clock, time.Now().UnixNano()), nil
	default:
		return nil, fmt.Errorf("unknown provider mode: %q", opts.Mode)
	}
}

// userAgentRoundTripper adds a User-Agent header to every request
type userAgentRoundTripper struct {
	wrapped   http.RoundTripper
	userAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.userAgent)
	return rt.wrapped.RoundTrip(clone)
}

// NewHTTPClient returns a client with a bounded timeout whose transport honours
// upstream cache headers.
func NewHTTPClient(userAgent string, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = &userAgentRoundTripper{
		wrapped:   http.DefaultTransport,
		userAgent: userAgent,
	}
	return &http.Client{
		Transport: cacheTransport,
		Timeout:   timeout,
	}
}
