package repository

import (
	"context"

	"commission-catalog/models"
)

// CatalogRepositoryInterface defines the typed reads the storefront needs
// from the catalog tables. An empty serviceID means "all services".
type CatalogRepositoryInterface interface {
	ListServices(ctx context.Context, onlyAvailable bool) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListDetailLevels(ctx context.Context, serviceID string) ([]models.DetailLevel, error)
	ListVariants(ctx context.Context, serviceID string) ([]models.ServiceVariant, error)
	ListExtras(ctx context.Context) ([]models.Extra, error)
	ListThemes(ctx context.Context) ([]models.CommissionTheme, error)
	ListEmoteConfigs(ctx context.Context, serviceID string) ([]models.EmoteConfig, error)
	ListAvailabilityOverrides(ctx context.Context, serviceID string) ([]models.EmoteExtraAvailability, error)
	FindAvailabilityOverride(ctx context.Context, serviceID, extraID string, unit int) (*models.EmoteExtraAvailability, error)
}

// ContentRepositoryInterface defines the typed reads for gallery,
// testimonials and announcements
type ContentRepositoryInterface interface {
	ListGallery(ctx context.Context, onlyVisible bool) ([]models.GalleryItem, error)
	GetGalleryItem(ctx context.Context, id string) (*models.GalleryItem, error)
	ListTestimonials(ctx context.Context, approved bool) ([]models.Testimonial, error)
	GetTestimonial(ctx context.Context, id string) (*models.Testimonial, error)
	ListActiveAnnouncements(ctx context.Context) ([]models.Announcement, error)
}
