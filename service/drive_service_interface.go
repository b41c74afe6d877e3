package service

import "context"

// DriveLister defines the Drive operations used by gallery imports
type DriveLister interface {
	ListFolderImages(ctx context.Context, folderID string) ([]DriveImage, error)
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
