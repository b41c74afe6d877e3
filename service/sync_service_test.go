package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/repository"
)

type fakeDrive struct {
	images []DriveImage
	err    error
}

func (f fakeDrive) ListFolderImages(ctx context.Context, folderID string) ([]DriveImage, error) {
	return f.images, f.err
}

func (f fakeDrive) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	return nil, errors.New("not used")
}

func TestSyncGalleryImportsOnce(t *testing.T) {
	store := repository.NewMemoryStore()
	content := repository.NewContentRepository(store, nil)
	drive := fakeDrive{images: []DriveImage{
		{ID: "file-1", Name: "fox.png", MimeType: "image/png"},
		{ID: "file-2", Name: "cat.final.jpg", MimeType: "image/jpeg"},
	}}
	svc := NewSyncService(drive, store, content, "folder", nil)
	ctx := context.Background()

	stats, err := svc.SyncGallery(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, SyncStats{Total: 2, Inserted: 2}, stats)

	items, err := content.ListGallery(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	titles := []string{items[0].Title, items[1].Title}
	assert.ElementsMatch(t, []string{"Fox", "Cat Final"}, titles)
	for _, item := range items {
		assert.False(t, item.IsVisible)
		assert.Equal(t, "https://drive.google.com/uc?id="+item.ImageKey, item.ImageURL)
	}

	stats, err = svc.SyncGallery(ctx, "folder")
	require.NoError(t, err)
	assert.Equal(t, SyncStats{Total: 2, Skipped: 2}, stats)
}

func TestSyncGalleryRequiresDrive(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewSyncService(nil, store, repository.NewContentRepository(store, nil), "folder", nil)

	_, err := svc.SyncGallery(context.Background(), "")
	assert.True(t, errors.Is(err, ErrImportUnavailable))

	svc = NewSyncService(fakeDrive{}, store, repository.NewContentRepository(store, nil), "", nil)
	_, err = svc.SyncGallery(context.Background(), "")
	assert.True(t, errors.Is(err, ErrImportUnavailable))
}

func TestSyncGalleryListFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewSyncService(fakeDrive{err: errors.New("quota")}, store, repository.NewContentRepository(store, nil), "folder", nil)

	_, err := svc.SyncGallery(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}
