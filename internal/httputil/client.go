// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client used for provider requests.
package httputil

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// NewClient returns a client with cfg.Timeout that sets cfg.UserAgent on every
// request and, when cfg.RequestsPerSecond is positive, paces requests with a
// token bucket (burst 1). Requests are never retried.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: NewTransport(http.DefaultTransport, cfg),
	}
}

// NewTransport wraps base with the User-Agent and pacing behaviour of NewClient.
func NewTransport(base http.RoundTripper, cfg types.HTTPConfig) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &transport{base: base, userAgent: cfg.UserAgent}
	if cfg.RequestsPerSecond > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return t
}

type transport struct {
	base      http.RoundTripper
	userAgent string
	limiter   *rate.Limiter
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		// Wait honours the request context, so a cancelled or timed-out
		// query stops waiting for its token.
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	if t.userAgent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}
