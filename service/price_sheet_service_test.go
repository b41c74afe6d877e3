package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/repository"
)

func TestRenderPriceSheet(t *testing.T) {
	store := repository.NewMemoryStore()
	seedCatalog(t, store)
	svc := NewPriceSheetService(newReader(store), "http://localhost:8080/", "", nil)

	html, err := svc.RenderHTML(context.Background())
	require.NoError(t, err)

	assert.Contains(t, html, "Chibi")
	assert.Contains(t, html, "desde $10.000 CLP / $12.00 USD")
	assert.Contains(t, html, "premium")
	assert.Contains(t, html, "$30.000 CLP / $35.00 USD")
	assert.Contains(t, html, "+$5.000 CLP / +$5.00 USD")
	assert.Contains(t, html, "Pack de 5 emotes")
	assert.NotContains(t, html, "Retired")
	assert.NotContains(t, html, "hidden")
}

func TestMemoryBlobStore(t *testing.T) {
	blobs := NewMemoryBlobStore("http://localhost:8080/")
	ctx := context.Background()

	key, err := blobs.Upload(ctx, testPNG(t, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/blobs/"+key, blobs.PublicURL(key))

	_, contentType, err := blobs.Read(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, blobs.Delete(ctx, key))
	assert.ErrorIs(t, blobs.Delete(ctx, key), ErrBlobNotFound)
}
