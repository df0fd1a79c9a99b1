package ingest

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/exam-ingest/constants"
)

// FileResult is the per-file outcome of a directory import.
type FileResult struct {
	Path      string
	BatchID   string
	Questions int
	Err       string
}

// DirStats aggregates a directory import.
type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// ImportDirectory walks root and imports every matching document in
// path order, strictly one at a time. A failed file is recorded and
// skipped; it never aborts the rest of the batch.
func (s *Service) ImportDirectory(ctx context.Context, root string, mode constants.ImportMode, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // keep walking
		}
		if skipHidden && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			return nil
		}
		stats.Matched++

		res, err := s.ImportFile(ctx, path, mode)
		if err != nil {
			s.logger.Warn("ingest.dir.file_failed", "path", path, "error", err)
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		results = append(results, FileResult{
			Path:      path,
			BatchID:   res.Batch.ID.String(),
			Questions: len(res.Questions),
		})
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return results, stats, err
	}

	s.logger.Info("ingest.dir.done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != string(filepath.Separator)
}
