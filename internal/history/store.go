// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists analysis results in SQLite so past submissions,
// their matched sources and aggregate statistics can be reviewed later.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

const (
	// DefaultDir holds history.db when no directory is configured.
	DefaultDir = ".plagiarism-detector"

	// HighSimilarityThreshold is the similarity score above which an analysis
	// counts as high similarity in Statistics.
	HighSimilarityThreshold = 0.5

	dbFile        = "history.db"
	unknownDomain = "unknown"
	recentWindow  = 7 * 24 * time.Hour
	topDomains    = 5

	// timeLayout is fixed-width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000Z"
)

// ErrNotFound is returned when an analysis ID does not exist.
var ErrNotFound = errors.New("analysis not found")

// Store manages the history SQLite database.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			text_length INTEGER NOT NULL,
			similarity_score REAL NOT NULL,
			ai_detected INTEGER NOT NULL,
			ai_confidence REAL NOT NULL,
			sources_found INTEGER NOT NULL,
			processing_ms INTEGER NOT NULL,
			status TEXT NOT NULL,
			error_message TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sources (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			title TEXT,
			similarity_percentage REAL NOT NULL,
			matched_text TEXT,
			domain TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sources_analysis_id ON sources(analysis_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sources_url ON sources(url)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save records one analysis with its matched sources and returns the new ID.
// A result carrying an error is stored with status failed.
func (s *Store) Save(ctx context.Context, text string, result types.AnalysisResult, elapsed time.Duration) (string, error) {
	id := uuid.NewString()

	status := types.StatusCompleted
	var errMsg sql.NullString
	if result.Failed() {
		status = types.StatusFailed
		errMsg = sql.NullString{String: *result.Error, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analyses (id, text, text_length, similarity_score, ai_detected, ai_confidence,
			sources_found, processing_ms, status, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, text, len([]rune(text)), result.SimilarityScore, result.AIDetected, result.AIConfidence,
		len(result.MatchedSources), elapsed.Milliseconds(), string(status), errMsg,
		s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("inserting analysis: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sources (analysis_id, url, title, similarity_percentage, matched_text, domain)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range result.MatchedSources {
		if _, err := stmt.ExecContext(ctx,
			id, m.SourceURL, m.Title, m.SimilarityPercentage, m.MatchedText, domainOf(m.SourceURL),
		); err != nil {
			return "", fmt.Errorf("inserting source %s: %w", m.SourceURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing analysis: %w", err)
	}
	return id, nil
}

const selectAnalyses = `SELECT id, text, text_length, similarity_score, ai_detected, ai_confidence,
	sources_found, processing_ms, status, error_message, created_at FROM analyses`

// Recent returns up to limit analyses, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.HistoryRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryAnalyses(ctx, selectAnalyses+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// Get returns the analysis with id and its sources.
func (s *Store) Get(ctx context.Context, id string) (types.HistoryRecord, error) {
	recs, err := s.queryAnalyses(ctx, selectAnalyses+` WHERE id = ?`, id)
	if err != nil {
		return types.HistoryRecord{}, err
	}
	if len(recs) == 0 {
		return types.HistoryRecord{}, ErrNotFound
	}
	rec := recs[0]
	rec.Sources, err = s.loadSources(ctx, id)
	if err != nil {
		return types.HistoryRecord{}, err
	}
	return rec, nil
}

// Sources returns the matched sources stored for analysis id, highest
// similarity first.
func (s *Store) Sources(ctx context.Context, id string) ([]types.HistorySource, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM analyses WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up analysis: %w", err)
	}
	return s.loadSources(ctx, id)
}

// HighSimilarity returns analyses scoring above threshold, highest first.
func (s *Store) HighSimilarity(ctx context.Context, threshold float64) ([]types.HistoryRecord, error) {
	return s.queryAnalyses(ctx,
		selectAnalyses+` WHERE similarity_score > ? ORDER BY similarity_score DESC, created_at DESC`, threshold)
}

// Failed returns analyses that ended with an error, newest first.
func (s *Store) Failed(ctx context.Context) ([]types.HistoryRecord, error) {
	return s.queryAnalyses(ctx,
		selectAnalyses+` WHERE status = ? ORDER BY created_at DESC, rowid DESC`, string(types.StatusFailed))
}

// Statistics summarizes all stored analyses.
func (s *Store) Statistics(ctx context.Context) (types.Statistics, error) {
	var st types.Statistics
	var completed int
	err := s.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(AVG(CASE WHEN status = ? THEN similarity_score END), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN similarity_score > ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		 FROM analyses`,
		string(types.StatusCompleted),
		s.now().Add(-recentWindow).UTC().Format(timeLayout),
		HighSimilarityThreshold,
		string(types.StatusFailed),
		string(types.StatusCompleted),
	).Scan(&st.TotalAnalyses, &st.AverageSimilarity, &st.RecentAnalyses,
		&st.HighSimilarityAnalyses, &st.FailedAnalyses, &completed)
	if err != nil {
		return types.Statistics{}, fmt.Errorf("querying statistics: %w", err)
	}

	st.AverageSimilarity = roundTo(st.AverageSimilarity, 4)
	if st.TotalAnalyses > 0 {
		st.SuccessRate = roundTo(float64(completed)/float64(st.TotalAnalyses)*100, 2)
	}

	if st.CommonDomains, err = s.commonDomains(ctx); err != nil {
		return types.Statistics{}, err
	}
	if st.DuplicateSources, err = s.duplicateSources(ctx); err != nil {
		return types.Statistics{}, err
	}
	return st, nil
}

// Cleanup deletes analyses older than olderThan along with their sources and
// returns the number of analyses removed.
func (s *Store) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan).UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old analyses: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) commonDomains(ctx context.Context) ([]types.DomainCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT domain, COUNT(*) AS n FROM sources
		 GROUP BY domain ORDER BY n DESC, domain ASC LIMIT ?`, topDomains)
	if err != nil {
		return nil, fmt.Errorf("querying domains: %w", err)
	}
	defer rows.Close()

	domains := []types.DomainCount{}
	for rows.Next() {
		var d types.DomainCount
		if err := rows.Scan(&d.Domain, &d.Count); err != nil {
			return nil, fmt.Errorf("scanning domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

// duplicateSources lists source URLs matched by more than one analysis.
func (s *Store) duplicateSources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT url FROM sources GROUP BY url
		 HAVING COUNT(DISTINCT analysis_id) > 1 ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("querying duplicate sources: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scanning url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func (s *Store) queryAnalyses(ctx context.Context, query string, args ...any) ([]types.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	recs := []types.HistoryRecord{}
	for rows.Next() {
		var (
			r         types.HistoryRecord
			status    string
			errMsg    sql.NullString
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Text, &r.TextLength, &r.SimilarityScore, &r.AIDetected,
			&r.AIConfidence, &r.SourcesFound, &r.ProcessingMs, &status, &errMsg, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		r.Status = types.AnalysisStatus(status)
		r.ErrorMessage = errMsg.String
		r.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func (s *Store) loadSources(ctx context.Context, id string) ([]types.HistorySource, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT url, title, similarity_percentage, matched_text, domain FROM sources
		 WHERE analysis_id = ? ORDER BY similarity_percentage DESC, id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	sources := []types.HistorySource{}
	for rows.Next() {
		var (
			src          types.HistorySource
			title, match sql.NullString
		)
		if err := rows.Scan(&src.URL, &title, &src.SimilarityPercentage, &match, &src.Domain); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		src.Title = title.String
		src.MatchedText = match.String
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

// domainOf returns the lowercased host of rawURL, or "unknown" when it has none.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return unknownDomain
	}
	return strings.ToLower(u.Hostname())
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
