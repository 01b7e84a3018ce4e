// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the plagiarism-detector CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/plagiarism-detector/internal/analysis"
	"github.com/pdiddy/plagiarism-detector/internal/history"
	"github.com/pdiddy/plagiarism-detector/internal/httputil"
	"github.com/pdiddy/plagiarism-detector/internal/logging"
	"github.com/pdiddy/plagiarism-detector/internal/search"
	"github.com/pdiddy/plagiarism-detector/internal/secrets"
	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from the secrets directory at startup.
	loadedSecrets map[string]string

	logger = zap.NewNop()
)

// rootCmd is the base command for the plagiarism-detector CLI.
var rootCmd = &cobra.Command{
	Use:   "plagiarism-detector",
	Short: "Check text for web plagiarism and machine-generated prose",
	Long: `plagiarism-detector extracts a few search phrases from a text, looks them up
with a web search provider, scores the returned snippets against the text, and
estimates how likely the text is to be machine-generated.

Use analyze for one-off checks, serve to expose the same pipeline over HTTP, and
history to review analyses saved with --save or history.enabled.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(viper.GetBool("verbose"), os.Stderr)

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./plagiarism-detector.yaml or ~/.config/plagiarism-detector/plagiarism-detector.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory holding google-api-key and google-cse-id files")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))

	setDefaults()
}

// setDefaults registers every config key so environment variables are seen by
// viper.Unmarshal.
func setDefaults() {
	viper.SetDefault("search.provider", string(types.ProviderGoogle))
	viper.SetDefault("search.endpoint", "")
	viper.SetDefault("search.api_key", "")
	viper.SetDefault("search.engine_id", "")
	viper.SetDefault("search.fixture_file", "")
	viper.SetDefault("search.timeout", search.DefaultTimeout)
	viper.SetDefault("search.user_agent", "plagiarism-detector/"+version)
	viper.SetDefault("search.requests_per_second", 0)
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.dir", history.DefaultDir)
	viper.SetDefault("server.addr", ":8080")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("plagiarism-detector")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "plagiarism-detector"))
		}
	}

	viper.SetEnvPrefix("PLAGIARISM_DETECTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes viper settings and fills missing credentials from the
// secrets directory.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Search.APIKey = secrets.Fallback(loadedSecrets, secrets.GoogleAPIKey, cfg.Search.APIKey)
	cfg.Search.EngineID = secrets.Fallback(loadedSecrets, secrets.GoogleCSEID, cfg.Search.EngineID)
	return cfg, nil
}

// newAnalyzer wires the HTTP client, provider, gateway and detector for cfg.
func newAnalyzer(ctx context.Context, cfg types.SearchConfig) (*analysis.Analyzer, error) {
	client := httputil.NewClient(cfg.HTTPConfig)
	provider, err := search.NewProvider(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	logger.Debug("search provider ready", zap.String("provider", provider.Name()))

	gw := search.NewGateway(provider, cfg.Timeout, logger)
	return analysis.NewAnalyzer(gw, nil, logger), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
