package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
	"github.com/custodia-labs/docverify/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService submits files that appear in a directory.
type WatchService struct {
	watcher driven.FileWatcher
	docs    driving.DocumentService
}

// NewWatchService creates a new watch service.
func NewWatchService(watcher driven.FileWatcher, docs driving.DocumentService) *WatchService {
	return &WatchService{watcher: watcher, docs: docs}
}

// Run processes files one at a time until ctx is cancelled.
// An unauthenticated failure stops the loop, since every later file would
// fail the same way.
func (s *WatchService) Run(ctx context.Context, root string, report func(driving.WatchResult)) error {
	files, errs, err := s.watcher.Watch(ctx, root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	logger.Info("watching %s", root)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watcher: %v", err)
		case path, ok := <-files:
			if !ok {
				return nil
			}
			result := s.process(ctx, path)
			if report != nil {
				report(result)
			}
			if errors.Is(result.Err, domain.ErrUnauthenticated) {
				return result.Err
			}
		}
	}
}

func (s *WatchService) process(ctx context.Context, path string) driving.WatchResult {
	result := driving.WatchResult{Path: path}

	submitted, err := s.docs.UploadFile(ctx, path)
	if err != nil {
		result.Err = err
		return result
	}
	result.DocumentID = submitted.DocumentID

	job, err := s.docs.Await(ctx, submitted.DocumentID)
	if err != nil {
		result.Err = err
		return result
	}
	result.Job = job
	return result
}
