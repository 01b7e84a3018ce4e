// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/plagiarism-detector/internal/history"
	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// Handler serves the analysis and history endpoints.
type Handler struct {
	analyzer Analyzer
	store    HistoryStore
	logger   *zap.Logger
}

// NewHandler returns a Handler. A nil store disables the history endpoints.
func NewHandler(a Analyzer, store HistoryStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{analyzer: a, store: store, logger: logger}
}

// RegisterRoutes mounts the endpoints on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)

	hg := rg.Group("", h.requireHistory)
	hg.GET("/history", h.listHistory)
	hg.GET("/history/:id", h.getHistory)
	hg.GET("/history/:id/sources", h.historySources)
	hg.GET("/statistics", h.statistics)
}

func (h *Handler) requireHistory(c *gin.Context) {
	if h.store == nil {
		notFound(c, "history is disabled")
		return
	}
	c.Next()
}

func (h *Handler) analyze(c *gin.Context) {
	var req types.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	result := h.analyzer.Analyze(c.Request.Context(), req)
	elapsed := time.Since(start)

	if h.store != nil {
		id, err := h.store.Save(c.Request.Context(), req.Text, result, elapsed)
		if err != nil {
			h.logger.Warn("saving analysis failed", zap.Error(err))
		} else {
			h.logger.Debug("analysis saved", zap.String("id", id))
		}
	}
	ok(c, result)
}

func (h *Handler) listHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	recs, err := h.store.Recent(c.Request.Context(), limit)
	if err != nil {
		internalError(c, err)
		return
	}
	ok(c, recs)
}

func (h *Handler) getHistory(c *gin.Context) {
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, history.ErrNotFound) {
		notFound(c, err.Error())
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	ok(c, rec)
}

func (h *Handler) historySources(c *gin.Context) {
	sources, err := h.store.Sources(c.Request.Context(), c.Param("id"))
	if errors.Is(err, history.ErrNotFound) {
		notFound(c, err.Error())
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	ok(c, sources)
}

func (h *Handler) statistics(c *gin.Context) {
	st, err := h.store.Statistics(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	ok(c, st)
}
