package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/repository"
)

const (
	maxAuthorLength  = 80
	maxContentLength = 2000
)

// ErrInvalidTestimonial is returned for submissions that fail validation
var ErrInvalidTestimonial = errors.New("invalid testimonial")

// TestimonialService handles visitor submissions and the moderation queue
type TestimonialService struct {
	store   repository.RecordStore
	content repository.ContentRepositoryInterface
	policy  *bluemonday.Policy
	log     *zap.SugaredLogger
}

// NewTestimonialService creates a new TestimonialService
func NewTestimonialService(store repository.RecordStore, content repository.ContentRepositoryInterface, logger *zap.Logger) *TestimonialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialService{
		store:   store,
		content: content,
		policy:  bluemonday.StrictPolicy(),
		log:     logger.Sugar(),
	}
}

// Submit stores a new testimonial awaiting approval. Markup is stripped from
// author and content.
func (s *TestimonialService) Submit(ctx context.Context, req models.SubmitTestimonialRequest) (*models.Testimonial, error) {
	author := s.plainText(req.Author)
	content := s.plainText(req.Content)

	switch {
	case author == "":
		return nil, fmt.Errorf("%w: author is required", ErrInvalidTestimonial)
	case content == "":
		return nil, fmt.Errorf("%w: content is required", ErrInvalidTestimonial)
	case utf8.RuneCountInString(author) > maxAuthorLength:
		return nil, fmt.Errorf("%w: author is longer than %d characters", ErrInvalidTestimonial, maxAuthorLength)
	case utf8.RuneCountInString(content) > maxContentLength:
		return nil, fmt.Errorf("%w: content is longer than %d characters", ErrInvalidTestimonial, maxContentLength)
	case req.Rating != 0 && (req.Rating < 1 || req.Rating > 5):
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidTestimonial)
	}

	row := repository.Row{
		"author":   author,
		"content":  content,
		"approved": false,
	}
	if req.Rating != 0 {
		row["rating"] = req.Rating
	}

	created, err := s.store.Insert(ctx, repository.TableTestimonials, row)
	if err != nil {
		s.log.Errorf("❌ Error saving testimonial: %v", err)
		return nil, fmt.Errorf("failed to save testimonial: %w", err)
	}
	s.log.Infof("📝 Testimonial submitted: %s", created.ID())
	return s.content.GetTestimonial(ctx, created.ID())
}

// Approved returns the published testimonials, newest first
func (s *TestimonialService) Approved(ctx context.Context) ([]models.Testimonial, error) {
	return s.content.ListTestimonials(ctx, true)
}

// Pending returns the moderation queue, newest first
func (s *TestimonialService) Pending(ctx context.Context) ([]models.Testimonial, error) {
	return s.content.ListTestimonials(ctx, false)
}

// Approve publishes a testimonial
func (s *TestimonialService) Approve(ctx context.Context, id string) error {
	if err := s.store.Update(ctx, repository.TableTestimonials, id, repository.Row{"approved": true}); err != nil {
		return fmt.Errorf("failed to approve testimonial %s: %w", id, err)
	}
	s.log.Infof("✓ Testimonial approved: %s", id)
	return nil
}

// Delete removes a testimonial, approved or not
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, repository.TableTestimonials, id); err != nil {
		return fmt.Errorf("failed to delete testimonial %s: %w", id, err)
	}
	return nil
}

// plainText strips markup and collapses whitespace. bluemonday escapes the
// text it keeps, so entities are decoded again for storage.
func (s *TestimonialService) plainText(in string) string {
	stripped := html.UnescapeString(s.policy.Sanitize(in))
	return strings.Join(strings.Fields(stripped), " ")
}
