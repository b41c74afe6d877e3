package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/repository"
)

// UploadService runs the admin image flow: optimise, store the blob, then
// persist its public URL on the owning row
type UploadService struct {
	store    repository.RecordStore
	content  repository.ContentRepositoryInterface
	blobs    BlobStore
	maxBytes int64
	logger   *zap.Logger
	log      *zap.SugaredLogger
}

// NewUploadService creates a new UploadService. maxBytes <= 0 disables the
// size limit.
func NewUploadService(store repository.RecordStore, content repository.ContentRepositoryInterface, blobs BlobStore, maxBytes int64, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{
		store:    store,
		content:  content,
		blobs:    blobs,
		maxBytes: maxBytes,
		logger:   logger,
		log:      logger.Sugar(),
	}
}

func (s *UploadService) prepare(data []byte, size ImageSize) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidUpload)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file is %d bytes, limit is %d", ErrInvalidUpload, len(data), s.maxBytes)
	}
	return OptimizeImage(data, size, s.logger)
}

// UploadGalleryImage stores a new portfolio image and creates its gallery row.
// The blob is removed again if the row cannot be created.
func (s *UploadService) UploadGalleryImage(ctx context.Context, data []byte, title, description string) (*models.GalleryItem, error) {
	optimized, err := s.prepare(data, SizeGallery)
	if err != nil {
		return nil, err
	}

	key, err := s.blobs.Upload(ctx, optimized)
	if err != nil {
		s.log.Errorf("❌ Error uploading gallery image: %v", err)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	row, err := s.store.Insert(ctx, repository.TableGalleryItems, repository.Row{
		"title":       strings.TrimSpace(title),
		"description": strings.TrimSpace(description),
		"image_url":   s.blobs.PublicURL(key),
		"image_key":   key,
	})
	if err != nil {
		s.log.Errorf("❌ Error saving gallery item, removing blob %s: %v", key, err)
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.Warnf("⚠️  Could not remove orphan blob %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to save gallery item: %w", err)
	}

	s.log.Infof("✓ Gallery image uploaded: %s", row.ID())
	return s.content.GetGalleryItem(ctx, row.ID())
}

// SetServiceImage replaces the cover image of a service and returns its new
// URL. The previous blob is deleted once the row points at the new one.
func (s *UploadService) SetServiceImage(ctx context.Context, serviceID string, data []byte) (string, error) {
	rows, err := s.store.Query(ctx, repository.TableServices, []repository.Filter{repository.Eq("id", serviceID)}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to load service %s: %w", serviceID, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("service %s: %w", serviceID, repository.ErrNotFound)
	}
	previousKey := rows[0].String("image_key")

	optimized, err := s.prepare(data, SizeMedium)
	if err != nil {
		return "", err
	}
	key, err := s.blobs.Upload(ctx, optimized)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	imageURL := s.blobs.PublicURL(key)
	if err := s.store.Update(ctx, repository.TableServices, serviceID, repository.Row{
		"image_url": imageURL,
		"image_key": key,
	}); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.Warnf("⚠️  Could not remove orphan blob %s: %v", key, delErr)
		}
		return "", fmt.Errorf("failed to save service image: %w", err)
	}

	if previousKey != "" {
		s.deleteBlob(ctx, previousKey)
	}
	s.log.Infof("✓ Service image updated: %s", serviceID)
	return imageURL, nil
}

// DeleteGalleryItem removes a gallery row and its blob
func (s *UploadService) DeleteGalleryItem(ctx context.Context, id string) error {
	item, err := s.content.GetGalleryItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, repository.TableGalleryItems, id); err != nil {
		return fmt.Errorf("failed to delete gallery item %s: %w", id, err)
	}
	if item.ImageKey != "" {
		s.deleteBlob(ctx, item.ImageKey)
	}
	s.log.Infof("🗑️  Gallery item deleted: %s", id)
	return nil
}

func (s *UploadService) deleteBlob(ctx context.Context, key string) {
	err := s.blobs.Delete(ctx, key)
	switch {
	case errors.Is(err, ErrBlobNotFound):
		s.log.Debugf("Blob %s already gone", key)
	case err != nil:
		s.log.Warnf("⚠️  Could not delete blob %s: %v", key, err)
	}
}
