package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"commission-catalog/repository"
)

// seedCatalog fills store with a regular service, a tiered service and a
// five-unit emote pack.
func seedCatalog(t *testing.T, store repository.RecordStore) {
	t.Helper()
	ctx := context.Background()
	insert := func(table string, row repository.Row) {
		_, err := store.Insert(ctx, table, row)
		require.NoError(t, err)
	}

	insert(repository.TableServices, repository.Row{"id": "chibi", "name": "Chibi", "price_min_clp": 10000, "price_min_usd": 12.0, "display_order": 1})
	insert(repository.TableServices, repository.Row{"id": "icon", "name": "Icon", "price_min_clp": 15000, "price_min_usd": 18.0, "display_order": 2})
	insert(repository.TableServices, repository.Row{"id": "emotes", "name": "Emotes", "price_min_clp": 20000, "price_min_usd": 25.0, "is_multi_unit_pack": true, "unit_count": 5, "display_order": 3})
	insert(repository.TableServices, repository.Row{"id": "retired", "name": "Retired", "is_available": false, "display_order": 4})

	insert(repository.TableDetailLevels, repository.Row{"id": "dl-premium", "service_id": "icon", "name": "premium", "price_clp": 30000, "price_usd": 35.0})
	insert(repository.TableDetailLevels, repository.Row{"id": "dl-hidden", "service_id": "icon", "name": "hidden", "price_clp": 1, "price_usd": 1.0, "is_available": false})
	insert(repository.TableVariants, repository.Row{"id": "profile-frame", "service_id": "icon", "name": "Profile frame", "price_clp": 5000, "price_usd": 5.0})

	insert(repository.TableExtras, repository.Row{"id": "background", "name": "Background", "price_clp": 2000, "price_usd": 3.0, "display_order": 1})
	insert(repository.TableExtras, repository.Row{"id": "sparkle", "name": "Sparkle", "price_clp": 1000, "price_usd": 1.5, "only_for": []string{"emotes"}, "display_order": 2})
	insert(repository.TableThemes, repository.Row{"id": "halloween", "name": "Halloween"})

	insert(repository.TableEmoteConfig, repository.Row{"service_id": "emotes", "emote_number": 2, "label": "Sleepy", "description": "Yawning"})
	insert(repository.TableEmoteExtraAvailability, repository.Row{"service_id": "emotes", "extra_id": "sparkle", "emote_number": 3, "is_available": false})
}

// failingStore wraps a RecordStore and fails every call touching one table.
type failingStore struct {
	repository.RecordStore
	table string
}

var errStoreDown = errors.New("store unreachable")

func (f failingStore) Query(ctx context.Context, table string, filters []repository.Filter, sort []repository.Sort) ([]repository.Row, error) {
	if table == f.table {
		return nil, errStoreDown
	}
	return f.RecordStore.Query(ctx, table, filters, sort)
}

func (f failingStore) Insert(ctx context.Context, table string, row repository.Row) (repository.Row, error) {
	if table == f.table {
		return nil, errStoreDown
	}
	return f.RecordStore.Insert(ctx, table, row)
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
