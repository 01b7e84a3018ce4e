// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/plagiarism-detector/internal/history"
	"github.com/pdiddy/plagiarism-detector/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis pipeline over HTTP",
	Long: `Serve exposes POST /api/analyze and, when history.enabled is set, the
history endpoints (/api/history, /api/history/:id, /api/history/:id/sources,
/api/statistics). The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default server.addr, :8080)")
	serveCmd.Flags().Bool("history", false, "enable history persistence and endpoints")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("history.enabled", serveCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newAnalyzer(ctx, cfg.Search)
	if err != nil {
		return err
	}

	if !viper.GetBool("verbose") {
		gin.SetMode(gin.ReleaseMode)
	}

	var router *gin.Engine
	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		router = server.NewRouter(a, store, logger)
	} else {
		router = server.NewRouter(a, nil, logger)
	}

	return server.Run(ctx, cfg.Server.Addr, router, logger)
}
