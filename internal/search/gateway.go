// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search provider with phrases extracted from a
// submission and turns the first hit of each query into a candidate source.
package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// DefaultTimeout bounds a single provider query.
const DefaultTimeout = 10 * time.Second

// untitled replaces a missing result title.
const untitled = "Untitled"

// Provider searches a single web search API. Each provider (Google Custom
// Search, YAML fixtures) implements this interface.
type Provider interface {
	Name() string
	Search(ctx context.Context, phrase string) ([]types.CandidateSource, error)
}

// Outcome is the result of one gateway query: either a candidate (Found) or
// no candidate, with Err recording why the provider could not answer.
type Outcome struct {
	Candidate types.CandidateSource
	Found     bool
	Err       error
}

// Gateway issues exactly one provider query per phrase and never propagates
// provider failures.
type Gateway struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGateway wraps provider. A non-positive timeout uses DefaultTimeout; a nil
// logger discards output.
func NewGateway(provider Provider, timeout time.Duration, logger *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{provider: provider, timeout: timeout, logger: logger}
}

// QueryOnce sends phrase to the provider and keeps only the first item. Any
// transport, HTTP or parse failure is logged and reported as no candidate.
// An empty phrase is answered with no candidate without contacting the provider.
func (g *Gateway) QueryOnce(ctx context.Context, phrase string) Outcome {
	if strings.TrimSpace(phrase) == "" {
		g.logger.Debug("skipping empty search phrase")
		return Outcome{}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	items, err := g.provider.Search(ctx, phrase)
	if err != nil {
		g.logger.Warn("search provider query failed",
			zap.String("provider", g.provider.Name()),
			zap.String("phrase", phrase),
			zap.Error(err),
		)
		return Outcome{Err: err}
	}
	if len(items) == 0 {
		g.logger.Debug("search provider returned no items",
			zap.String("provider", g.provider.Name()),
			zap.String("phrase", phrase),
		)
		return Outcome{}
	}

	c := items[0]
	if c.Title == "" {
		c.Title = untitled
	}
	return Outcome{Candidate: c, Found: true}
}

// NewProvider builds the provider selected by cfg.Provider. client is used for
// HTTP-based providers.
func NewProvider(ctx context.Context, cfg types.SearchConfig, client *http.Client) (Provider, error) {
	switch cfg.Provider {
	case types.ProviderGoogle, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("google provider requires search.api_key (or .secrets/google-api-key)")
		}
		if cfg.EngineID == "" {
			return nil, fmt.Errorf("google provider requires search.engine_id (or .secrets/google-cse-id)")
		}
		return NewGoogleProvider(ctx, cfg.APIKey, cfg.EngineID, cfg.Endpoint, client)
	case types.ProviderFixture:
		if cfg.FixtureFile == "" {
			return nil, fmt.Errorf("fixture provider requires search.fixture_file")
		}
		return LoadFixtureProvider(cfg.FixtureFile)
	default:
		return nil, fmt.Errorf("unsupported search provider %q: use google or fixture", cfg.Provider)
	}
}
