package service

import (
	"context"

	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/pricing"
	"commission-catalog/repository"
)

// FetchError records a catalog entity type that could not be loaded. The
// matching list is empty rather than missing.
type FetchError struct {
	Entity  string `json:"entity"`
	Message string `json:"message"`
}

// CatalogView is the storefront's catalog payload
type CatalogView struct {
	Services     []models.Service         `json:"services"`
	DetailLevels []models.DetailLevel     `json:"detailLevels"`
	Variants     []models.ServiceVariant  `json:"variants"`
	Extras       []models.Extra           `json:"extras"`
	Themes       []models.CommissionTheme `json:"themes"`
	Errors       []FetchError             `json:"errors,omitempty"`
}

// CatalogReader loads the available catalog. Every list method returns a
// non-nil slice; on a store failure the slice is empty and the error is
// returned alongside it for reporting.
type CatalogReader struct {
	repo repository.CatalogRepositoryInterface
	log  *zap.SugaredLogger
}

// NewCatalogReader creates a new CatalogReader
func NewCatalogReader(repo repository.CatalogRepositoryInterface, logger *zap.Logger) *CatalogReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogReader{repo: repo, log: logger.Sugar()}
}

// ListServices returns available services ordered by display order
func (r *CatalogReader) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := r.repo.ListServices(ctx, true)
	if err != nil {
		r.log.Warnf("⚠️  Catalog: services unavailable: %v", err)
		return []models.Service{}, err
	}
	return services, nil
}

// ListDetailLevels returns available detail levels; serviceID may be empty
func (r *CatalogReader) ListDetailLevels(ctx context.Context, serviceID string) ([]models.DetailLevel, error) {
	levels, err := r.repo.ListDetailLevels(ctx, serviceID)
	if err != nil {
		r.log.Warnf("⚠️  Catalog: detail levels unavailable: %v", err)
		return []models.DetailLevel{}, err
	}
	return levels, nil
}

// ListVariants returns available variants; serviceID may be empty
func (r *CatalogReader) ListVariants(ctx context.Context, serviceID string) ([]models.ServiceVariant, error) {
	variants, err := r.repo.ListVariants(ctx, serviceID)
	if err != nil {
		r.log.Warnf("⚠️  Catalog: variants unavailable: %v", err)
		return []models.ServiceVariant{}, err
	}
	return variants, nil
}

// ListExtras returns available extras. Callers filter by service with
// ExtrasForService or Extra.OfferedTo.
func (r *CatalogReader) ListExtras(ctx context.Context) ([]models.Extra, error) {
	extras, err := r.repo.ListExtras(ctx)
	if err != nil {
		r.log.Warnf("⚠️  Catalog: extras unavailable: %v", err)
		return []models.Extra{}, err
	}
	return extras, nil
}

// ExtrasForService returns the available extras offered to serviceID
func (r *CatalogReader) ExtrasForService(ctx context.Context, serviceID string) ([]models.Extra, error) {
	extras, err := r.ListExtras(ctx)
	offered := make([]models.Extra, 0, len(extras))
	for _, e := range extras {
		if e.OfferedTo(serviceID) {
			offered = append(offered, e)
		}
	}
	return offered, err
}

// ListThemes returns available themes
func (r *CatalogReader) ListThemes(ctx context.Context) ([]models.CommissionTheme, error) {
	themes, err := r.repo.ListThemes(ctx)
	if err != nil {
		r.log.Warnf("⚠️  Catalog: themes unavailable: %v", err)
		return []models.CommissionTheme{}, err
	}
	return themes, nil
}

// GetEmoteConfig returns the unit labels and availability overrides of a
// pack service as a resolver. On failure the resolver has no opinions, so
// every extra is allowed and every unit gets its default label.
func (r *CatalogReader) GetEmoteConfig(ctx context.Context, serviceID string) (*pricing.Resolver, error) {
	configs, err := r.repo.ListEmoteConfigs(ctx, serviceID)
	if err != nil {
		r.log.Warnf("⚠️  Catalog: emote config for %s unavailable: %v", serviceID, err)
		return pricing.NewResolver(nil, nil), err
	}
	overrides, err := r.repo.ListAvailabilityOverrides(ctx, serviceID)
	if err != nil {
		r.log.Warnf("⚠️  Catalog: availability overrides for %s unavailable: %v", serviceID, err)
		return pricing.NewResolver(configs, nil), err
	}
	return pricing.NewResolver(configs, overrides), nil
}

// EmoteUnits returns the per-unit storefront view of a pack service. A
// regular service has no units.
func (r *CatalogReader) EmoteUnits(ctx context.Context, serviceID string) ([]models.EmoteUnitView, error) {
	svc, err := r.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsMultiUnitPack {
		return []models.EmoteUnitView{}, nil
	}

	extras, extrasErr := r.ExtrasForService(ctx, serviceID)
	resolver, cfgErr := r.GetEmoteConfig(ctx, serviceID)
	if extrasErr != nil {
		return resolver.Units(svc.UnitCount, extras), extrasErr
	}
	return resolver.Units(svc.UnitCount, extras), cfgErr
}

// View loads the catalog payload for the storefront.
func (r *CatalogReader) View(ctx context.Context) CatalogView {
	var view CatalogView
	var errs []FetchError
	record := func(entity string, err error) {
		if err != nil {
			errs = append(errs, FetchError{Entity: entity, Message: err.Error()})
		}
	}

	var err error
	view.Services, err = r.ListServices(ctx)
	record(repository.TableServices, err)
	view.DetailLevels, err = r.ListDetailLevels(ctx, "")
	record(repository.TableDetailLevels, err)
	view.Variants, err = r.ListVariants(ctx, "")
	record(repository.TableVariants, err)
	view.Extras, err = r.ListExtras(ctx)
	record(repository.TableExtras, err)
	view.Themes, err = r.ListThemes(ctx)
	record(repository.TableThemes, err)

	view.Errors = errs
	return view
}

// Snapshot loads everything composition needs into a pricing catalog. It
// always returns a usable catalog; failed entity types are reported in the
// second return value.
func (r *CatalogReader) Snapshot(ctx context.Context) (*pricing.Catalog, []FetchError) {
	view := r.View(ctx)
	errs := view.Errors

	configs, err := r.repo.ListEmoteConfigs(ctx, "")
	if err != nil {
		r.log.Warnf("⚠️  Catalog: emote config unavailable: %v", err)
		errs = append(errs, FetchError{Entity: repository.TableEmoteConfig, Message: err.Error()})
	}
	overrides, err := r.repo.ListAvailabilityOverrides(ctx, "")
	if err != nil {
		r.log.Warnf("⚠️  Catalog: availability overrides unavailable: %v", err)
		errs = append(errs, FetchError{Entity: repository.TableEmoteExtraAvailability, Message: err.Error()})
	}

	catalog := pricing.NewCatalog(pricing.CatalogData{
		Services:     view.Services,
		DetailLevels: view.DetailLevels,
		Variants:     view.Variants,
		Extras:       view.Extras,
		Themes:       view.Themes,
		EmoteConfigs: configs,
		Overrides:    overrides,
	})
	return catalog, errs
}
