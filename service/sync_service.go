package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"commission-catalog/repository"
	"commission-catalog/utils"
)

// ErrImportUnavailable is returned when no Drive folder source is configured
var ErrImportUnavailable = errors.New("gallery import is not configured")

// SyncService imports images from a Google Drive folder into the gallery
// Implements SyncServiceInterface
type SyncService struct {
	drive         DriveLister
	store         repository.RecordStore
	content       repository.ContentRepositoryInterface
	defaultFolder string
	log           *zap.SugaredLogger
}

// NewSyncService creates a new SyncService. drive may be nil when imports
// are disabled.
func NewSyncService(drive DriveLister, store repository.RecordStore, content repository.ContentRepositoryInterface, defaultFolder string, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		drive:         drive,
		store:         store,
		content:       content,
		defaultFolder: defaultFolder,
		log:           logger.Sugar(),
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncGallery inserts a hidden gallery row for every image in folderID that
// has not been imported yet. The Drive file id is the row's image key, so
// files stay in Drive and are served from there.
func (s *SyncService) SyncGallery(ctx context.Context, folderID string) (SyncStats, error) {
	var stats SyncStats
	if s.drive == nil {
		return stats, ErrImportUnavailable
	}
	if folderID == "" {
		folderID = s.defaultFolder
	}
	if folderID == "" {
		return stats, fmt.Errorf("%w: no folder id", ErrImportUnavailable)
	}

	s.log.Infof("🔄 Starting gallery import for folder: %s", folderID)

	images, err := s.drive.ListFolderImages(ctx, folderID)
	if err != nil {
		return stats, fmt.Errorf("failed to list images from Drive: %w", err)
	}
	stats.Total = len(images)

	existing, err := s.content.ListGallery(ctx, false)
	if err != nil {
		return stats, fmt.Errorf("failed to load gallery: %w", err)
	}
	imported := make(map[string]bool, len(existing))
	for _, item := range existing {
		if item.ImageKey != "" {
			imported[item.ImageKey] = true
		}
	}

	for _, img := range images {
		if imported[img.ID] {
			s.log.Debugf("⏭️  Skipping drive file %s (already imported)", img.ID)
			stats.Skipped++
			continue
		}

		_, err := s.store.Insert(ctx, repository.TableGalleryItems, repository.Row{
			"title":      utils.TitleFromFilename(img.Name),
			"image_url":  fmt.Sprintf(driveImageURLFormat, img.ID),
			"image_key":  img.ID,
			"is_visible": false,
		})
		if err != nil {
			s.log.Errorf("❌ Error importing drive file %s: %v", img.ID, err)
			stats.Failed++
			continue
		}
		imported[img.ID] = true
		stats.Inserted++
	}

	s.log.Infof("🎉 Gallery import completed: %d inserted, %d skipped, %d failed, %d total", stats.Inserted, stats.Skipped, stats.Failed, stats.Total)
	return stats, nil
}
