// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// FixtureFile is the on-disk form of canned provider answers. It lets the
// pipeline run offline: demos, reproducible reports, and end-to-end tests.
//
//	rules:
//	  - match: "quick brown fox"
//	    items:
//	      - link: https://example.com/fox
//	        title: Foxes
//	        snippet: The quick brown fox jumps over the lazy dog.
//	  - fail: "timeout"          # match omitted: answers every other phrase
type FixtureFile struct {
	Rules []FixtureRule `yaml:"rules"`
}

// FixtureRule answers phrases containing Match (case-insensitive). An empty
// Match answers every phrase. A non-empty Fail makes the rule return an error.
type FixtureRule struct {
	Match string                  `yaml:"match,omitempty"`
	Items []types.CandidateSource `yaml:"items,omitempty"`
	Fail  string                  `yaml:"fail,omitempty"`
}

// FixtureProvider answers queries from a FixtureFile.
type FixtureProvider struct {
	rules []FixtureRule
}

// NewFixtureProvider returns a provider over rules, evaluated in order.
func NewFixtureProvider(rules []FixtureRule) *FixtureProvider {
	return &FixtureProvider{rules: rules}
}

// LoadFixtureProvider reads a FixtureFile from path.
func LoadFixtureProvider(path string) (*FixtureProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	var ff FixtureFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parsing fixture file %s: %w", path, err)
	}
	return NewFixtureProvider(ff.Rules), nil
}

// Name returns the provider identifier.
func (p *FixtureProvider) Name() string { return "fixture" }

// Search returns the items of the first rule matching phrase.
func (p *FixtureProvider) Search(ctx context.Context, phrase string) ([]types.CandidateSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lower := strings.ToLower(phrase)
	for _, r := range p.rules {
		if r.Match != "" && !strings.Contains(lower, strings.ToLower(r.Match)) {
			continue
		}
		if r.Fail != "" {
			return nil, fmt.Errorf("fixture failure: %s", r.Fail)
		}
		return r.Items, nil
	}
	return nil, nil
}
