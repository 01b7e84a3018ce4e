// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/plagiarism-detector/internal/history"
	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAnalyzer returns result and records the last request.
type stubAnalyzer struct {
	result types.AnalysisResult
	last   types.AnalysisRequest
}

func (s *stubAnalyzer) Analyze(_ context.Context, req types.AnalysisRequest) types.AnalysisResult {
	s.last = req
	return s.result
}

func sampleResult() types.AnalysisResult {
	return types.AnalysisResult{
		SimilarityScore: 0.8,
		MatchedSources: []types.ScoredMatch{{
			SourceURL:            "https://example.com/a",
			Title:                "A",
			SimilarityPercentage: 80,
			MatchedText:          "snippet",
		}},
		AIConfidence: 0.3,
	}
}

func testStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.NewStore(types.HistoryConfig{Enabled: true, Dir: filepath.Join(t.TempDir(), "h")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	a := &stubAnalyzer{result: sampleResult()}
	store := testStore(t)
	router := NewRouter(a, store, nil)

	w := do(t, router, http.MethodPost, "/api/analyze", []byte(`{"text":"some text","checkParaphrasing":true}`))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "some text", a.last.Text)
	assert.True(t, a.last.IncludeParaphrase)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0.8, got["similarityScore"])
	assert.Contains(t, got, "error")
	assert.Len(t, got["matchedSources"], 1)

	recent, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "some text", recent[0].Text)
}

func TestAnalyzeEndpointBadBody(t *testing.T) {
	router := NewRouter(&stubAnalyzer{}, nil, nil)

	w := do(t, router, http.MethodPost, "/api/analyze", []byte(`{"text":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestAnalyzeEndpointWithoutHistory(t *testing.T) {
	router := NewRouter(&stubAnalyzer{result: sampleResult()}, nil, nil)

	w := do(t, router, http.MethodPost, "/api/analyze", []byte(`{"text":"x"}`))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistoryDisabled(t *testing.T) {
	router := NewRouter(&stubAnalyzer{}, nil, nil)

	for _, path := range []string{"/api/history", "/api/history/abc", "/api/history/abc/sources", "/api/statistics"} {
		w := do(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "history is disabled", path)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	id, err := store.Save(ctx, "first text", sampleResult(), 5*time.Millisecond)
	require.NoError(t, err)
	_, err = store.Save(ctx, "second text", types.AnalysisResult{MatchedSources: []types.ScoredMatch{}}, 0)
	require.NoError(t, err)

	router := NewRouter(&stubAnalyzer{}, store, nil)

	t.Run("list", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/history?limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []types.HistoryRecord `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data, 1)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/history?limit=-3", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/history/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var rec types.HistoryRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
		assert.Equal(t, "first text", rec.Text)
		assert.Len(t, rec.Sources, 1)
	})

	t.Run("get missing", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/history/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("sources", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/history/"+id+"/sources", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []types.HistorySource `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "example.com", body.Data[0].Domain)
	})

	t.Run("sources missing", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/history/missing/sources", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("statistics", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/api/statistics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var st types.Statistics
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
		assert.Equal(t, 2, st.TotalAnalyses)
		assert.Equal(t, 1, st.HighSimilarityAnalyses)
		assert.Equal(t, 100.0, st.SuccessRate)
	})
}

// failingStore fails every call.
type failingStore struct{}

var errStore = errors.New("disk full")

func (failingStore) Save(context.Context, string, types.AnalysisResult, time.Duration) (string, error) {
	return "", errStore
}
func (failingStore) Recent(context.Context, int) ([]types.HistoryRecord, error) { return nil, errStore }
func (failingStore) Get(context.Context, string) (types.HistoryRecord, error) {
	return types.HistoryRecord{}, errStore
}
func (failingStore) Sources(context.Context, string) ([]types.HistorySource, error) {
	return nil, errStore
}
func (failingStore) Statistics(context.Context) (types.Statistics, error) {
	return types.Statistics{}, errStore
}

func TestStoreFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	router := NewRouter(&stubAnalyzer{result: sampleResult()}, failingStore{}, zap.New(core))

	w := do(t, router, http.MethodPost, "/api/analyze", []byte(`{"text":"x"}`))
	assert.Equal(t, http.StatusOK, w.Code, "a failed save does not fail the analysis")
	assert.Equal(t, 1, logs.FilterMessage("saving analysis failed").Len())

	for _, path := range []string{"/api/history", "/api/history/x", "/api/history/x/sources", "/api/statistics"} {
		w := do(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), "disk full", path)
	}
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := NewRouter(&stubAnalyzer{}, nil, zap.New(core))

	do(t, router, http.MethodGet, "/api/statistics", nil)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/statistics", fields["path"])
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(&stubAnalyzer{}, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", NewRouter(&stubAnalyzer{}, nil, nil), zap.NewNop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunListenError(t *testing.T) {
	err := Run(context.Background(), "256.0.0.1:bad", http.NotFoundHandler(), zap.NewNop())
	assert.Error(t, err)
}
