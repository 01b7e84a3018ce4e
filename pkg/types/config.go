package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound provider requests.
type HTTPConfig struct {
	// Timeout bounds each provider request (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "plagiarism-detector/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RequestsPerSecond paces outbound requests. Zero disables pacing.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// SearchProvider identifies the web search backend.
type SearchProvider string

const (
	ProviderGoogle  SearchProvider = "google"
	ProviderFixture SearchProvider = "fixture"
)

// SearchConfig holds settings for the search gateway.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the backend: google or fixture.
	Provider SearchProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Endpoint overrides the provider base URL. Empty uses the provider default.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// APIKey authenticates against the provider. Never compiled in; supplied
	// through config, environment or the secrets directory.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// EngineID is the programmable search engine identifier (Google "cx").
	EngineID string `json:"engine_id,omitempty" yaml:"engine_id,omitempty" mapstructure:"engine_id"`

	// FixtureFile is the YAML file answering queries for the fixture provider.
	FixtureFile string `json:"fixture_file,omitempty" yaml:"fixture_file,omitempty" mapstructure:"fixture_file"`
}

// HistoryConfig holds settings for the optional analysis history store.
type HistoryConfig struct {
	// Enabled turns on persistence of each analysis.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding history.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Verbose bool          `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}
