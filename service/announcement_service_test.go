package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-catalog/repository"
)

func TestCurrentAnnouncement(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	clock := base.Add(-72 * time.Hour)
	store.SetClock(func() time.Time { return clock })
	insert := func(row repository.Row) {
		t.Helper()
		_, err := store.Insert(ctx, repository.TableAnnouncements, row)
		require.NoError(t, err)
		clock = clock.Add(time.Hour)
	}

	insert(repository.Row{"message": "old but open"})
	insert(repository.Row{"message": "expired", "ends_at": base.Add(-time.Minute)})
	insert(repository.Row{"message": "future", "starts_at": base.Add(time.Hour)})
	insert(repository.Row{"message": "disabled", "is_active": false})

	svc := NewAnnouncementService(repository.NewContentRepository(store, nil))
	svc.SetClock(func() time.Time { return base })

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "old but open", current.Message)

	insert(repository.Row{"message": "sale", "starts_at": base.Add(-time.Hour), "ends_at": base.Add(time.Hour)})
	current, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "sale", current.Message)
}

func TestCurrentAnnouncementNone(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAnnouncementService(repository.NewContentRepository(store, nil))

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}
