package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/repository"
	"commission-catalog/service"
)

// ContentController handles the announcement, testimonial and gallery endpoints
type ContentController struct {
	content       repository.ContentRepositoryInterface
	announcements *service.AnnouncementService
	testimonials  *service.TestimonialService
	log           *zap.SugaredLogger
}

// NewContentController creates a new ContentController
func NewContentController(content repository.ContentRepositoryInterface, announcements *service.AnnouncementService, testimonials *service.TestimonialService, logger *zap.Logger) *ContentController {
	return &ContentController{content: content, announcements: announcements, testimonials: testimonials, log: orNop(logger)}
}

// GetAnnouncement handles GET /api/announcement
// Responds 204 when nothing is running.
func (c *ContentController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	current, err := c.announcements.Current(r.Context())
	if err != nil {
		writeError(w, c.log, "GetAnnouncement", err)
		return
	}
	if current == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

// GetGallery handles GET /api/gallery
func (c *ContentController) GetGallery(w http.ResponseWriter, r *http.Request) {
	items, err := c.content.ListGallery(r.Context(), true)
	if err != nil {
		writeError(w, c.log, "GetGallery", err)
		return
	}
	if items == nil {
		items = []models.GalleryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetTestimonials handles GET /api/testimonials
func (c *ContentController) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := c.testimonials.Approved(r.Context())
	if err != nil {
		writeError(w, c.log, "GetTestimonials", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

// SubmitTestimonial handles POST /api/testimonials
// Submissions are stored unapproved.
func (c *ContentController) SubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitTestimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, c.log, "SubmitTestimonial", "invalid JSON body")
		return
	}

	created, err := c.testimonials.Submit(r.Context(), req)
	if err != nil {
		writeError(w, c.log, "SubmitTestimonial", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetPendingTestimonials handles GET /admin/testimonials/pending
func (c *ContentController) GetPendingTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := c.testimonials.Pending(r.Context())
	if err != nil {
		writeError(w, c.log, "GetPendingTestimonials", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

// ApproveTestimonial handles POST /admin/testimonials/{id}/approve
func (c *ContentController) ApproveTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := c.testimonials.Approve(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, c.log, "ApproveTestimonial", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTestimonial handles DELETE /admin/testimonials/{id}
func (c *ContentController) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := c.testimonials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, c.log, "DeleteTestimonial", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func nonNil(list []models.Testimonial) []models.Testimonial {
	if list == nil {
		return []models.Testimonial{}
	}
	return list
}
