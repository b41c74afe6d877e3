package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/repository"
)

func TestSetAvailabilityUpsertsWithoutDeleting(t *testing.T) {
	store := repository.NewMemoryStore()
	seedCatalog(t, store)
	repo := repository.NewCatalogRepository(store, nil)
	svc := NewAvailabilityService(store, repo, nil)
	ctx := context.Background()

	created, err := svc.SetAvailability(ctx, "emotes", "background", 4, false)
	require.NoError(t, err)
	assert.False(t, created.IsAvailable)

	back, err := svc.SetAvailability(ctx, "emotes", "background", 4, true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, back.ID)

	rows, err := store.Query(ctx, repository.TableEmoteExtraAvailability, []repository.Filter{
		repository.Eq("extra_id", "background"),
	}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Bool("is_available"))

	resolver, err := NewCatalogReader(repo, nil).GetEmoteConfig(ctx, "emotes")
	require.NoError(t, err)
	assert.True(t, resolver.IsAvailable("background", 4))
}

func TestSetAvailabilityUpdatesExistingOverride(t *testing.T) {
	store := repository.NewMemoryStore()
	seedCatalog(t, store)
	repo := repository.NewCatalogRepository(store, nil)
	svc := NewAvailabilityService(store, repo, nil)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, "emotes", "sparkle", 3, true)
	require.NoError(t, err)

	overrides, err := repo.ListAvailabilityOverrides(ctx, "emotes")
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.True(t, overrides[0].IsAvailable)
}

func TestSetAvailabilityValidation(t *testing.T) {
	store := repository.NewMemoryStore()
	seedCatalog(t, store)
	svc := NewAvailabilityService(store, repository.NewCatalogRepository(store, nil), nil)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, "chibi", "background", 1, false)
	assert.True(t, errors.Is(err, ErrNotPackService))

	_, err = svc.SetAvailability(ctx, "emotes", "background", 0, false)
	assert.True(t, errors.Is(err, ErrInvalidUnit))

	_, err = svc.SetAvailability(ctx, "emotes", "background", 6, false)
	assert.True(t, errors.Is(err, ErrInvalidUnit))

	_, err = svc.SetAvailability(ctx, "missing", "background", 1, false)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

// patchRecorder keeps the patches passed to Update
type patchRecorder struct {
	repository.RecordStore
	patches []repository.Row
}

func (p *patchRecorder) Update(ctx context.Context, table, id string, patch repository.Row) error {
	p.patches = append(p.patches, patch.Clone())
	return p.RecordStore.Update(ctx, table, id, patch)
}

func TestSetAvailabilityStampsUpdatedAt(t *testing.T) {
	store := repository.NewMemoryStore()
	seedCatalog(t, store)
	recorder := &patchRecorder{RecordStore: store}
	repo := repository.NewCatalogRepository(store, nil)
	svc := NewAvailabilityService(recorder, repo, nil)
	ctx := context.Background()

	_, err := svc.SetAvailability(ctx, "emotes", "background", 2, false)
	require.NoError(t, err)
	assert.Empty(t, recorder.patches)

	before := time.Now()
	_, err = svc.SetAvailability(ctx, "emotes", "background", 2, true)
	require.NoError(t, err)

	require.Len(t, recorder.patches, 1)
	stamped, ok := recorder.patches[0]["updated_at"].(time.Time)
	require.True(t, ok, "updated_at missing from patch")
	assert.False(t, stamped.Before(before))
	assert.Equal(t, true, recorder.patches[0]["is_available"])
}
