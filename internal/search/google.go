// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// GoogleProvider queries the Google Custom Search JSON API (cse.list).
type GoogleProvider struct {
	svc      *customsearch.Service
	apiKey   string
	engineID string
}

// NewGoogleProvider creates a Custom Search client over client. The API key is
// sent per call because an explicit HTTP client bypasses the library's own
// credential handling. An empty endpoint uses the public API.
func NewGoogleProvider(ctx context.Context, apiKey, engineID, endpoint string, client *http.Client) (*GoogleProvider, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if endpoint != "" {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating custom search service: %w", err)
	}
	return &GoogleProvider{svc: svc, apiKey: apiKey, engineID: engineID}, nil
}

// Name returns the provider identifier.
func (p *GoogleProvider) Name() string { return "google" }

// Search requests the top result for phrase.
func (p *GoogleProvider) Search(ctx context.Context, phrase string) ([]types.CandidateSource, error) {
	res, err := p.svc.Cse.List().
		Cx(p.engineID).
		Q(phrase).
		Num(1).
		Context(ctx).
		Do(googleapi.QueryParameter("key", p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("custom search request: %w", err)
	}

	items := make([]types.CandidateSource, 0, len(res.Items))
	for _, item := range res.Items {
		if item == nil {
			continue
		}
		items = append(items, types.CandidateSource{
			SourceURL: item.Link,
			Title:     item.Title,
			Snippet:   item.Snippet,
		})
	}
	return items, nil
}
