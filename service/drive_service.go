package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const driveImageURLFormat = "https://drive.google.com/uc?id=%s"

// DriveImage is an image file found in a Drive folder
type DriveImage struct {
	ID       string
	Name     string
	MimeType string
}

// DriveService stores blobs as publicly readable files in a Google Drive
// folder and lists folders for gallery imports
type DriveService struct {
	client   *drive.Service
	folderID string
	log      *zap.SugaredLogger
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath, folderID string, logger *zap.Logger) (*DriveService, error) {
	return NewDriveServiceWithOptions(ctx, folderID, logger, option.WithCredentialsFile(credentialsPath))
}

// NewDriveServiceWithOptions creates a DriveService with explicit client options
func NewDriveServiceWithOptions(ctx context.Context, folderID string, logger *zap.Logger, opts ...option.ClientOption) (*DriveService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveService{client: client, folderID: folderID, log: logger.Sugar()}, nil
}

// Ensure DriveService implements BlobStore and DriveLister
var (
	_ BlobStore   = (*DriveService)(nil)
	_ DriveLister = (*DriveService)(nil)
)

// Upload creates a file in the upload folder and shares it publicly. The
// key is the Drive file id.
func (ds *DriveService) Upload(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty blob", ErrInvalidUpload)
	}
	name, contentType := newBlobKey("", data)

	file := &drive.File{Name: name, MimeType: contentType}
	if ds.folderID != "" {
		file.Parents = []string{ds.folderID}
	}
	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	perm := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := ds.client.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		ds.log.Warnf("⚠️  Uploaded %s but could not share it: %v", created.Id, err)
		return "", fmt.Errorf("failed to share file %s: %w", created.Id, err)
	}

	ds.log.Infof("✓ Uploaded to Drive: %s (%d bytes)", created.Id, len(data))
	return created.Id, nil
}

// PublicURL returns the direct-view URL of a Drive file
func (ds *DriveService) PublicURL(key string) string {
	return fmt.Sprintf(driveImageURLFormat, key)
}

// Delete removes a Drive file
func (ds *DriveService) Delete(ctx context.Context, key string) error {
	err := ds.client.Files.Delete(key).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}
	return nil
}

// ListFolderImages lists all image files in a Google Drive folder
func (ds *DriveService) ListFolderImages(ctx context.Context, folderID string) ([]DriveImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	imageMimeTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
		"image/webp": true,
	}

	images := make([]DriveImage, 0, len(allFiles))
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		images = append(images, DriveImage{ID: file.Id, Name: file.Name, MimeType: file.MimeType})
	}

	ds.log.Infof("📦 Found %d images in folder %s (%d files)", len(images), folderID, len(allFiles))
	return images, nil
}

// DownloadImage downloads the content of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
