package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/repository"
)

func newUploadFixture(t *testing.T, maxBytes int64) (*UploadService, *repository.MemoryStore, *MemoryBlobStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	seedCatalog(t, store)
	blobs := NewMemoryBlobStore("http://localhost:8080")
	content := repository.NewContentRepository(store, nil)
	return NewUploadService(store, content, blobs, maxBytes, nil), store, blobs
}

func TestUploadGalleryImage(t *testing.T) {
	svc, _, blobs := newUploadFixture(t, 0)
	ctx := context.Background()

	item, err := svc.UploadGalleryImage(ctx, testPNG(t, 2400, 1200), "  Fox OC ", "")
	require.NoError(t, err)

	assert.Equal(t, "Fox OC", item.Title)
	assert.True(t, item.IsVisible)
	assert.True(t, strings.HasPrefix(item.ImageURL, "http://localhost:8080/blobs/"))
	assert.True(t, strings.HasSuffix(item.ImageKey, ".jpg"))
	assert.Equal(t, 1, blobs.Len())

	data, contentType, err := blobs.Read(ctx, item.ImageKey)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestUploadRejectsInvalidFiles(t *testing.T) {
	svc, _, blobs := newUploadFixture(t, 1024)
	ctx := context.Background()

	_, err := svc.UploadGalleryImage(ctx, nil, "", "")
	assert.True(t, errors.Is(err, ErrInvalidUpload))

	_, err = svc.UploadGalleryImage(ctx, bytes.Repeat([]byte("x"), 2048), "", "")
	assert.True(t, errors.Is(err, ErrInvalidUpload))

	_, err = svc.UploadGalleryImage(ctx, []byte("not an image"), "", "")
	assert.True(t, errors.Is(err, ErrInvalidUpload))

	assert.Zero(t, blobs.Len())
}

func TestUploadGalleryImageRemovesBlobWhenRowFails(t *testing.T) {
	store := repository.NewMemoryStore()
	blobs := NewMemoryBlobStore("")
	broken := failingStore{RecordStore: store, table: repository.TableGalleryItems}
	svc := NewUploadService(broken, repository.NewContentRepository(store, nil), blobs, 0, nil)

	_, err := svc.UploadGalleryImage(context.Background(), testPNG(t, 10, 10), "", "")
	require.Error(t, err)
	assert.Zero(t, blobs.Len())
}

func TestSetServiceImageReplacesPreviousBlob(t *testing.T) {
	svc, store, blobs := newUploadFixture(t, 0)
	ctx := context.Background()

	firstURL, err := svc.SetServiceImage(ctx, "chibi", testPNG(t, 100, 100))
	require.NoError(t, err)
	assert.Equal(t, 1, blobs.Len())

	secondURL, err := svc.SetServiceImage(ctx, "chibi", testPNG(t, 50, 50))
	require.NoError(t, err)
	assert.NotEqual(t, firstURL, secondURL)
	assert.Equal(t, 1, blobs.Len())

	rows, err := store.Query(ctx, repository.TableServices, []repository.Filter{repository.Eq("id", "chibi")}, nil)
	require.NoError(t, err)
	assert.Equal(t, secondURL, rows[0].String("image_url"))

	_, err = svc.SetServiceImage(ctx, "missing", testPNG(t, 10, 10))
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestDeleteGalleryItem(t *testing.T) {
	svc, _, blobs := newUploadFixture(t, 0)
	ctx := context.Background()

	item, err := svc.UploadGalleryImage(ctx, testPNG(t, 10, 10), "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGalleryItem(ctx, item.ID))
	assert.Zero(t, blobs.Len())

	err = svc.DeleteGalleryItem(ctx, item.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
