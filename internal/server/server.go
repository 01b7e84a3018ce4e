// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the analysis pipeline and the history store over a
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// ShutdownTimeout bounds how long in-flight requests may run after a stop signal.
const ShutdownTimeout = 10 * time.Second

// Analyzer runs one analysis. *analysis.Analyzer implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) types.AnalysisResult
}

// HistoryStore is the subset of *history.Store served by the API.
type HistoryStore interface {
	Save(ctx context.Context, text string, result types.AnalysisResult, elapsed time.Duration) (string, error)
	Recent(ctx context.Context, limit int) ([]types.HistoryRecord, error)
	Get(ctx context.Context, id string) (types.HistoryRecord, error)
	Sources(ctx context.Context, id string) ([]types.HistorySource, error)
	Statistics(ctx context.Context) (types.Statistics, error)
}

// NewRouter builds the gin engine with recovery, request logging, CORS and
// the /api routes. store may be nil when history is disabled.
func NewRouter(a Analyzer, store HistoryStore, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(Logger(logger))
	router.Use(cors.Default())

	NewHandler(a, store, logger).RegisterRoutes(router.Group("/api"))
	return router
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully within ShutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
