package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"commission-catalog/models"
)

// ContentRepository reads gallery, testimonial and announcement rows
type ContentRepository struct {
	store RecordStore
	log   *zap.SugaredLogger
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(store RecordStore, logger *zap.Logger) *ContentRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentRepository{store: store, log: logger.Sugar()}
}

// Ensure ContentRepository implements ContentRepositoryInterface
var _ ContentRepositoryInterface = (*ContentRepository)(nil)

// ListGallery retrieves gallery items by display order, newest first within a position
func (r *ContentRepository) ListGallery(ctx context.Context, onlyVisible bool) ([]models.GalleryItem, error) {
	var filters []Filter
	if onlyVisible {
		filters = append(filters, Eq("is_visible", true))
	}
	rows, err := r.store.Query(ctx, TableGalleryItems, filters, []Sort{Asc("display_order"), Desc("created_at")})
	if err != nil {
		r.log.Errorf("❌ Error querying gallery: %v", err)
		return nil, fmt.Errorf("failed to query gallery: %w", err)
	}

	items := make([]models.GalleryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, galleryItemFromRow(row))
	}
	return items, nil
}

// GetGalleryItem retrieves one gallery item by id
func (r *ContentRepository) GetGalleryItem(ctx context.Context, id string) (*models.GalleryItem, error) {
	rows, err := r.store.Query(ctx, TableGalleryItems, []Filter{Eq("id", id)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query gallery item %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("gallery item %s: %w", id, ErrNotFound)
	}
	item := galleryItemFromRow(rows[0])
	return &item, nil
}

// ListTestimonials retrieves approved or pending testimonials, newest first
func (r *ContentRepository) ListTestimonials(ctx context.Context, approved bool) ([]models.Testimonial, error) {
	rows, err := r.store.Query(ctx, TableTestimonials, []Filter{Eq("approved", approved)}, []Sort{Desc("created_at")})
	if err != nil {
		r.log.Errorf("❌ Error querying testimonials: %v", err)
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}

	out := make([]models.Testimonial, 0, len(rows))
	for _, row := range rows {
		out = append(out, testimonialFromRow(row))
	}
	return out, nil
}

// GetTestimonial retrieves one testimonial by id
func (r *ContentRepository) GetTestimonial(ctx context.Context, id string) (*models.Testimonial, error) {
	rows, err := r.store.Query(ctx, TableTestimonials, []Filter{Eq("id", id)}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query testimonial %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("testimonial %s: %w", id, ErrNotFound)
	}
	t := testimonialFromRow(rows[0])
	return &t, nil
}

// ListActiveAnnouncements retrieves announcements flagged active, newest
// first. The time window is checked by the caller.
func (r *ContentRepository) ListActiveAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	rows, err := r.store.Query(ctx, TableAnnouncements, []Filter{Eq("is_active", true)}, []Sort{Desc("created_at")})
	if err != nil {
		r.log.Errorf("❌ Error querying announcements: %v", err)
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}

	out := make([]models.Announcement, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Announcement{
			ID:        row.ID(),
			Message:   row.String("message"),
			LinkURL:   row.String("link_url"),
			IsActive:  row.Bool("is_active"),
			StartsAt:  row.TimePtr("starts_at"),
			EndsAt:    row.TimePtr("ends_at"),
			CreatedAt: row.Time("created_at"),
		})
	}
	return out, nil
}

func galleryItemFromRow(row Row) models.GalleryItem {
	return models.GalleryItem{
		ID:           row.ID(),
		Title:        row.String("title"),
		Description:  row.String("description"),
		ImageURL:     row.String("image_url"),
		ImageKey:     row.String("image_key"),
		IsVisible:    row.Bool("is_visible"),
		DisplayOrder: row.Int("display_order"),
		CreatedAt:    row.Time("created_at"),
	}
}

func testimonialFromRow(row Row) models.Testimonial {
	return models.Testimonial{
		ID:        row.ID(),
		Author:    row.String("author"),
		Content:   row.String("content"),
		Rating:    row.Int("rating"),
		Approved:  row.Bool("approved"),
		CreatedAt: row.Time("created_at"),
	}
}
