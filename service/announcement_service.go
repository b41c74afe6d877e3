package service

import (
	"context"
	"time"

	"commission-catalog/models"
	"commission-catalog/repository"
)

// AnnouncementService picks the site-wide banner
type AnnouncementService struct {
	content repository.ContentRepositoryInterface
	now     func() time.Time
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(content repository.ContentRepositoryInterface) *AnnouncementService {
	return &AnnouncementService{content: content, now: time.Now}
}

// SetClock replaces the service's time source
func (s *AnnouncementService) SetClock(now func() time.Time) {
	s.now = now
}

// Current returns the newest announcement active right now, or nil.
func (s *AnnouncementService) Current(ctx context.Context) (*models.Announcement, error) {
	announcements, err := s.content.ListActiveAnnouncements(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, a := range announcements {
		if a.ActiveAt(now) {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}
