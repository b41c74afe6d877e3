package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"commission-catalog/models"
)

// CatalogRepository reads catalog tables through a RecordStore and maps rows
// to models. Storefront reads only ever see available rows.
type CatalogRepository struct {
	store RecordStore
	log   *zap.SugaredLogger
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(store RecordStore, logger *zap.Logger) *CatalogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogRepository{store: store, log: logger.Sugar()}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

var byDisplayOrder = []Sort{Asc("display_order")}

func availableFor(serviceID string) []Filter {
	filters := []Filter{Eq("is_available", true)}
	if serviceID != "" {
		filters = append(filters, Eq("service_id", serviceID))
	}
	return filters
}

// ListServices retrieves services ordered by display order
func (r *CatalogRepository) ListServices(ctx context.Context, onlyAvailable bool) ([]models.Service, error) {
	var filters []Filter
	if onlyAvailable {
		filters = append(filters, Eq("is_available", true))
	}
	rows, err := r.store.Query(ctx, TableServices, filters, byDisplayOrder)
	if err != nil {
		r.log.Errorf("❌ Error querying services: %v", err)
		return nil, fmt.Errorf("failed to query services: %w", err)
	}

	services := make([]models.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, ServiceFromRow(row))
	}
	return services, nil
}

// GetService retrieves one service by id, available or not
func (r *CatalogRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	rows, err := r.store.Query(ctx, TableServices, []Filter{Eq("id", id)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query service %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	svc := ServiceFromRow(rows[0])
	return &svc, nil
}

// ListDetailLevels retrieves the available detail levels, optionally for one service
func (r *CatalogRepository) ListDetailLevels(ctx context.Context, serviceID string) ([]models.DetailLevel, error) {
	rows, err := r.store.Query(ctx, TableDetailLevels, availableFor(serviceID), byDisplayOrder)
	if err != nil {
		r.log.Errorf("❌ Error querying detail levels: %v", err)
		return nil, fmt.Errorf("failed to query detail levels: %w", err)
	}

	levels := make([]models.DetailLevel, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, models.DetailLevel{
			ID:           row.ID(),
			ServiceID:    row.String("service_id"),
			Name:         row.String("name"),
			Description:  row.String("description"),
			PriceCLP:     row.Int64("price_clp"),
			PriceUSD:     row.Float64("price_usd"),
			IsAvailable:  row.Bool("is_available"),
			DisplayOrder: row.Int("display_order"),
		})
	}
	return levels, nil
}

// ListVariants retrieves the available variants, optionally for one service
func (r *CatalogRepository) ListVariants(ctx context.Context, serviceID string) ([]models.ServiceVariant, error) {
	rows, err := r.store.Query(ctx, TableVariants, availableFor(serviceID), byDisplayOrder)
	if err != nil {
		r.log.Errorf("❌ Error querying variants: %v", err)
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}

	variants := make([]models.ServiceVariant, 0, len(rows))
	for _, row := range rows {
		variants = append(variants, models.ServiceVariant{
			ID:           row.ID(),
			ServiceID:    row.String("service_id"),
			Name:         row.String("name"),
			Description:  row.String("description"),
			PriceCLP:     row.Int64("price_clp"),
			PriceUSD:     row.Float64("price_usd"),
			IsAvailable:  row.Bool("is_available"),
			DisplayOrder: row.Int("display_order"),
		})
	}
	return variants, nil
}

// ListExtras retrieves the available extras
func (r *CatalogRepository) ListExtras(ctx context.Context) ([]models.Extra, error) {
	rows, err := r.store.Query(ctx, TableExtras, availableFor(""), byDisplayOrder)
	if err != nil {
		r.log.Errorf("❌ Error querying extras: %v", err)
		return nil, fmt.Errorf("failed to query extras: %w", err)
	}

	extras := make([]models.Extra, 0, len(rows))
	for _, row := range rows {
		onlyFor := row.Strings("only_for")
		if onlyFor == nil {
			onlyFor = []string{}
		}
		extras = append(extras, models.Extra{
			ID:           row.ID(),
			Name:         row.String("name"),
			Description:  row.String("description"),
			PriceCLP:     row.Int64("price_clp"),
			PriceUSD:     row.Float64("price_usd"),
			OnlyFor:      onlyFor,
			IsAvailable:  row.Bool("is_available"),
			DisplayOrder: row.Int("display_order"),
		})
	}
	return extras, nil
}

// ListThemes retrieves the available commission themes
func (r *CatalogRepository) ListThemes(ctx context.Context) ([]models.CommissionTheme, error) {
	rows, err := r.store.Query(ctx, TableThemes, availableFor(""), byDisplayOrder)
	if err != nil {
		r.log.Errorf("❌ Error querying themes: %v", err)
		return nil, fmt.Errorf("failed to query themes: %w", err)
	}

	themes := make([]models.CommissionTheme, 0, len(rows))
	for _, row := range rows {
		themes = append(themes, models.CommissionTheme{
			ID:           row.ID(),
			Name:         row.String("name"),
			IsAvailable:  row.Bool("is_available"),
			DisplayOrder: row.Int("display_order"),
		})
	}
	return themes, nil
}

// ListEmoteConfigs retrieves unit labels, optionally for one service
func (r *CatalogRepository) ListEmoteConfigs(ctx context.Context, serviceID string) ([]models.EmoteConfig, error) {
	var filters []Filter
	if serviceID != "" {
		filters = append(filters, Eq("service_id", serviceID))
	}
	rows, err := r.store.Query(ctx, TableEmoteConfig, filters, []Sort{Asc("emote_number")})
	if err != nil {
		r.log.Errorf("❌ Error querying emote config: %v", err)
		return nil, fmt.Errorf("failed to query emote config: %w", err)
	}

	configs := make([]models.EmoteConfig, 0, len(rows))
	for _, row := range rows {
		configs = append(configs, models.EmoteConfig{
			ID:          row.ID(),
			ServiceID:   row.String("service_id"),
			EmoteNumber: row.Int("emote_number"),
			Label:       row.String("label"),
			Description: row.String("description"),
		})
	}
	return configs, nil
}

// ListAvailabilityOverrides retrieves per-unit extra overrides, optionally for one service
func (r *CatalogRepository) ListAvailabilityOverrides(ctx context.Context, serviceID string) ([]models.EmoteExtraAvailability, error) {
	var filters []Filter
	if serviceID != "" {
		filters = append(filters, Eq("service_id", serviceID))
	}
	rows, err := r.store.Query(ctx, TableEmoteExtraAvailability, filters, []Sort{Asc("emote_number")})
	if err != nil {
		r.log.Errorf("❌ Error querying availability overrides: %v", err)
		return nil, fmt.Errorf("failed to query availability overrides: %w", err)
	}

	overrides := make([]models.EmoteExtraAvailability, 0, len(rows))
	for _, row := range rows {
		overrides = append(overrides, availabilityFromRow(row))
	}
	return overrides, nil
}

// FindAvailabilityOverride returns the override for (extraID, unit) of
// serviceID, or nil when none has been recorded.
func (r *CatalogRepository) FindAvailabilityOverride(ctx context.Context, serviceID, extraID string, unit int) (*models.EmoteExtraAvailability, error) {
	rows, err := r.store.Query(ctx, TableEmoteExtraAvailability, []Filter{
		Eq("service_id", serviceID),
		Eq("extra_id", extraID),
		Eq("emote_number", unit),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability override: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	o := availabilityFromRow(rows[0])
	return &o, nil
}

// ServiceFromRow maps a services row to a Service
func ServiceFromRow(row Row) models.Service {
	return models.Service{
		ID:              row.ID(),
		Name:            row.String("name"),
		Description:     row.String("description"),
		PriceMinCLP:     row.Int64("price_min_clp"),
		PriceMaxCLP:     row.Int64("price_max_clp"),
		PriceMinUSD:     row.Float64("price_min_usd"),
		PriceMaxUSD:     row.Float64("price_max_usd"),
		ImageURL:        row.String("image_url"),
		IsAvailable:     row.Bool("is_available"),
		IsMultiUnitPack: row.Bool("is_multi_unit_pack"),
		UnitCount:       row.Int("unit_count"),
		DisplayOrder:    row.Int("display_order"),
	}
}

func availabilityFromRow(row Row) models.EmoteExtraAvailability {
	return models.EmoteExtraAvailability{
		ID:          row.ID(),
		ServiceID:   row.String("service_id"),
		ExtraID:     row.String("extra_id"),
		EmoteNumber: row.Int("emote_number"),
		IsAvailable: row.Bool("is_available"),
	}
}
