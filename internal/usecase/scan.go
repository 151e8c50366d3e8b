package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"circuitdoc/internal/adapter/cache"
	"circuitdoc/internal/domain"
	"circuitdoc/internal/port"
)

// ProgressFunc is called after each file is handled. It may be called from
// several goroutines at once.
type ProgressFunc func(processed, total int, currentFile string)

// ScanUseCase explains every matching source file under a directory.
type ScanUseCase struct {
	walker    port.FileWalker
	reader    port.FileReader
	explainer port.Explainer
	history   port.HistoryStore
	jobs      int
}

// NewScanUseCase creates a new scan use case.
func NewScanUseCase(
	walker port.FileWalker,
	reader port.FileReader,
	explainer port.Explainer,
	history port.HistoryStore,
	jobs int,
) *ScanUseCase {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &ScanUseCase{
		walker:    walker,
		reader:    reader,
		explainer: explainer,
		history:   history,
		jobs:      jobs,
	}
}

// ScannedFile is the outcome for one source file.
type ScannedFile struct {
	File    port.FileInfo
	Record  domain.Record
	Skipped bool
	Err     error
}

// ScanResult contains the results of a scan.
type ScanResult struct {
	Files          []ScannedFile
	FilesExplained int
	FilesSkipped   int
	FilesDeleted   int
	GatesFound     int
	Errors         []string
}

// Scan walks root and explains each file. Files whose content hash matches
// their stored record are skipped unless force is set. Records of files that
// no longer exist under root are deleted.
func (u *ScanUseCase) Scan(ctx context.Context, root string, force bool, progress ProgressFunc) (*ScanResult, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root: %w", err)
	}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	recs, err := u.history.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	existing := make(map[string]domain.Record, len(recs))
	for _, rec := range recs {
		existing[rec.Path] = rec
	}

	scanned := make([]ScannedFile, len(files))
	var processed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(u.jobs, len(files))))

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			prev, hasPrev := existing[file.Path]
			scanned[i] = u.scanFile(file, prev, hasPrev && !force)

			if progress != nil {
				progress(int(processed.Add(1)), len(files), file.RelPath)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &ScanResult{Files: scanned}
	var fresh []domain.Record
	seen := make(map[string]bool, len(files))

	for _, sf := range scanned {
		seen[sf.File.Path] = true
		switch {
		case sf.Err != nil:
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", sf.File.RelPath, sf.Err))
		case sf.Skipped:
			result.FilesSkipped++
			result.GatesFound += len(sf.Record.Result.Gates)
		default:
			result.FilesExplained++
			result.GatesFound += len(sf.Record.Result.Gates)
			fresh = append(fresh, sf.Record)
		}
	}

	if len(fresh) > 0 {
		if err := u.history.PutRecords(fresh); err != nil {
			return nil, fmt.Errorf("failed to store history: %w", err)
		}
	}

	prefix := root + string(filepath.Separator)
	for path := range existing {
		if seen[path] || !strings.HasPrefix(path, prefix) {
			continue
		}
		if err := u.history.DeleteRecord(path); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", path, err))
			continue
		}
		result.FilesDeleted++
	}

	return result, nil
}

func (u *ScanUseCase) scanFile(file port.FileInfo, prev domain.Record, reuse bool) ScannedFile {
	sf := ScannedFile{File: file}

	source, err := u.reader.ReadFile(file.Path)
	if err != nil {
		sf.Err = fmt.Errorf("failed to read file: %w", err)
		return sf
	}

	hash := cache.ContentHash(source)
	if reuse && prev.Hash == hash {
		sf.Record = prev
		sf.Skipped = true
		return sf
	}

	exp := u.explainer.Explain(source)
	sf.Record = domain.Record{
		Path:        file.Path,
		Hash:        hash,
		ModTime:     file.ModTime,
		Result:      exp.Result,
		Document:    exp.Document,
		ExplainedAt: time.Now().UTC(),
	}
	return sf
}
