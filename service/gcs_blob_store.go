package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSBlobStore stores blobs as objects in a Cloud Storage bucket. The bucket
// is expected to allow public reads.
type GCSBlobStore struct {
	client *storage.Client
	bucket string
	prefix string
	log    *zap.SugaredLogger
}

// NewGCSBlobStore creates a GCSBlobStore. credentialsPath may be empty to use
// application default credentials.
func NewGCSBlobStore(ctx context.Context, bucket, credentialsPath string, logger *zap.Logger) (*GCSBlobStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return NewGCSBlobStoreWithClient(client, bucket, logger), nil
}

// NewGCSBlobStoreWithClient wraps an existing storage client
func NewGCSBlobStoreWithClient(client *storage.Client, bucket string, logger *zap.Logger) *GCSBlobStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GCSBlobStore{client: client, bucket: bucket, prefix: "uploads", log: logger.Sugar()}
}

// Ensure GCSBlobStore implements BlobStore
var _ BlobStore = (*GCSBlobStore)(nil)

// Upload writes data to a new object and returns its name
func (g *GCSBlobStore) Upload(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty blob", ErrInvalidUpload)
	}
	key, contentType := newBlobKey(g.prefix, data)

	w := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	g.log.Infof("✓ Uploaded gs://%s/%s (%d bytes)", g.bucket, key, len(data))
	return key, nil
}

// PublicURL returns the public object URL
func (g *GCSBlobStore) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", gcsPublicHost, g.bucket, strings.Join(segments, "/"))
}

// Delete removes the object
func (g *GCSBlobStore) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	g.log.Infof("🗑️  Deleted gs://%s/%s", g.bucket, key)
	return nil
}

// Close releases the storage client
func (g *GCSBlobStore) Close() error {
	return g.client.Close()
}
