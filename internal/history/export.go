// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/plagiarism-detector/pkg/types"
)

// ExportYAML writes every stored analysis, with its sources, to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	recs, err := s.exportRecords(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every stored analysis, with its sources, to path.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	recs, err := s.exportRecords(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRecords(ctx context.Context) ([]types.HistoryRecord, error) {
	recs, err := s.queryAnalyses(ctx, selectAnalyses+` ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	for i := range recs {
		if recs[i].Sources, err = s.loadSources(ctx, recs[i].ID); err != nil {
			return nil, err
		}
	}
	return recs, nil
}
