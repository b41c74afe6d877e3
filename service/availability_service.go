package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/repository"
)

var (
	// ErrNotPackService is returned when per-unit availability is set on a regular service.
	ErrNotPackService = errors.New("service is not a multi-unit pack")
	// ErrInvalidUnit is returned for unit numbers outside 1..unit_count.
	ErrInvalidUnit = errors.New("invalid unit number")
)

// AvailabilityService records per-unit availability overrides
type AvailabilityService struct {
	store   repository.RecordStore
	catalog repository.CatalogRepositoryInterface
	log     *zap.SugaredLogger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(store repository.RecordStore, catalog repository.CatalogRepositoryInterface, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{store: store, catalog: catalog, log: logger.Sugar()}
}

// SetAvailability stores an explicit override for extraID on unit of a pack
// service. The first toggle creates the row; later toggles update it, even
// when setting it back to available. Rows are never deleted here.
func (s *AvailabilityService) SetAvailability(ctx context.Context, serviceID, extraID string, unit int, available bool) (*models.EmoteExtraAvailability, error) {
	svc, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsMultiUnitPack {
		return nil, fmt.Errorf("%w: %s", ErrNotPackService, serviceID)
	}
	if unit < 1 || (svc.UnitCount > 0 && unit > svc.UnitCount) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUnit, unit)
	}

	existing, err := s.catalog.FindAvailabilityOverride(ctx, serviceID, extraID, unit)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.store.Update(ctx, repository.TableEmoteExtraAvailability, existing.ID, repository.Row{
			"is_available": available,
			"updated_at":   time.Now(),
		}); err != nil {
			s.log.Errorf("❌ Error updating override %s: %v", existing.ID, err)
			return nil, fmt.Errorf("failed to update availability override: %w", err)
		}
		existing.IsAvailable = available
		s.log.Infof("✓ Override updated: service=%s extra=%s unit=%d available=%t", serviceID, extraID, unit, available)
		return existing, nil
	}

	row, err := s.store.Insert(ctx, repository.TableEmoteExtraAvailability, repository.Row{
		"service_id":   serviceID,
		"extra_id":     extraID,
		"emote_number": unit,
		"is_available": available,
	})
	if err != nil {
		s.log.Errorf("❌ Error inserting override: %v", err)
		return nil, fmt.Errorf("failed to insert availability override: %w", err)
	}
	s.log.Infof("✓ Override created: service=%s extra=%s unit=%d available=%t", serviceID, extraID, unit, available)
	return &models.EmoteExtraAvailability{
		ID:          row.ID(),
		ServiceID:   serviceID,
		ExtraID:     extraID,
		EmoteNumber: unit,
		IsAvailable: available,
	}, nil
}
