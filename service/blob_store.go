package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ErrBlobNotFound is returned when a blob key does not exist
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore stores opaque image blobs and hands out public URLs for them
type BlobStore interface {
	// Upload stores data and returns an opaque key for it.
	Upload(ctx context.Context, data []byte) (string, error)
	// PublicURL returns the URL the storefront can load key from.
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}

// BlobReader is implemented by blob stores that can serve their own content.
type BlobReader interface {
	Read(ctx context.Context, key string) ([]byte, string, error)
}

// newBlobKey returns a sortable, unique object key with an extension matching
// the content type of data.
func newBlobKey(prefix string, data []byte) (string, string) {
	contentType := http.DetectContentType(data)
	ext := ".bin"
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	}
	key := strings.ToLower(ulid.Make().String()) + ext
	if prefix != "" {
		key = strings.TrimSuffix(prefix, "/") + "/" + key
	}
	return key, contentType
}

type memoryBlob struct {
	data        []byte
	contentType string
}

// MemoryBlobStore keeps blobs in process. URLs point back at this service's
// /blobs/ route.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	blobs   map[string]memoryBlob
	baseURL string
}

// NewMemoryBlobStore creates an empty MemoryBlobStore
func NewMemoryBlobStore(baseURL string) *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs:   make(map[string]memoryBlob),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Ensure MemoryBlobStore implements BlobStore and BlobReader
var (
	_ BlobStore  = (*MemoryBlobStore)(nil)
	_ BlobReader = (*MemoryBlobStore)(nil)
)

func (m *MemoryBlobStore) Upload(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty blob", ErrInvalidUpload)
	}
	key, contentType := newBlobKey("", data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = memoryBlob{data: append([]byte(nil), data...), contentType: contentType}
	return key, nil
}

func (m *MemoryBlobStore) PublicURL(key string) string {
	return m.baseURL + "/blobs/" + key
}

func (m *MemoryBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	delete(m.blobs, key)
	return nil
}

func (m *MemoryBlobStore) Read(ctx context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	return append([]byte(nil), b.data...), b.contentType, nil
}

// Len returns the number of stored blobs.
func (m *MemoryBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
