package service

import "context"

// SyncStats summarises a gallery import.
// Inserted = new gallery rows, Skipped = already imported (by image key),
// Total = images seen in the folder.
type SyncStats struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// SyncServiceInterface defines the contract for gallery imports
type SyncServiceInterface interface {
	SyncGallery(ctx context.Context, folderID string) (SyncStats, error)
}
