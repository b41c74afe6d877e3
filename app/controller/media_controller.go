package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"commission-catalog/service"
	"commission-catalog/utils"
)

// multipartOverhead is allowed on top of the image size limit for the other
// form fields
const multipartOverhead = 64 << 10

// MediaController handles image uploads, gallery imports and blob serving
type MediaController struct {
	uploads  *service.UploadService
	sync     service.SyncServiceInterface
	blobs    service.BlobReader
	maxBytes int64
	log      *zap.SugaredLogger
}

// NewMediaController creates a new MediaController. blobs may be nil when
// the blob store serves its own public URLs.
func NewMediaController(uploads *service.UploadService, sync service.SyncServiceInterface, blobs service.BlobReader, maxBytes int64, logger *zap.Logger) *MediaController {
	return &MediaController{uploads: uploads, sync: sync, blobs: blobs, maxBytes: maxBytes, log: orNop(logger)}
}

// readImage reads the "image" form file and returns it with its file name
func (c *MediaController) readImage(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(c.maxBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", errors.Join(service.ErrInvalidUpload, errors.New("file too large"))
		}
		return nil, "", errors.Join(service.ErrInvalidUpload, err)
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, "", errors.Join(service.ErrInvalidUpload, errors.New("image form file is required"))
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	return data, header.Filename, err
}

// UploadGalleryImage handles POST /admin/gallery/upload
// Multipart form: image (file), title, description. The title defaults to
// one derived from the file name.
func (c *MediaController) UploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	data, filename, err := c.readImage(w, r)
	if err != nil {
		writeError(w, c.log, "UploadGalleryImage", err)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = utils.TitleFromFilename(filename)
	}
	item, err := c.uploads.UploadGalleryImage(r.Context(), data, title, r.FormValue("description"))
	if err != nil {
		writeError(w, c.log, "UploadGalleryImage", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ImportGallery handles POST /admin/gallery/import
// Body (optional): {"folderId": "..."}; the configured folder is used when empty
func (c *MediaController) ImportGallery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FolderID string `json:"folderId"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(w, c.log, "ImportGallery", "invalid JSON body")
			return
		}
	}

	c.log.Infof("🔄 ImportGallery: starting import from folder %q", req.FolderID)
	stats, err := c.sync.SyncGallery(r.Context(), req.FolderID)
	if err != nil {
		writeError(w, c.log, "ImportGallery", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// DeleteGalleryItem handles DELETE /admin/gallery/{id}
func (c *MediaController) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := c.uploads.DeleteGalleryItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, c.log, "DeleteGalleryItem", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetServiceImage handles POST /admin/services/{id}/image
func (c *MediaController) SetServiceImage(w http.ResponseWriter, r *http.Request) {
	data, _, err := c.readImage(w, r)
	if err != nil {
		writeError(w, c.log, "SetServiceImage", err)
		return
	}

	url, err := c.uploads.SetServiceImage(r.Context(), chi.URLParam(r, "id"), data)
	if err != nil {
		writeError(w, c.log, "SetServiceImage", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}

// ServeBlob handles GET /blobs/{key} for blob stores without public hosting
func (c *MediaController) ServeBlob(w http.ResponseWriter, r *http.Request) {
	if c.blobs == nil {
		http.NotFound(w, r)
		return
	}
	data, contentType, err := c.blobs.Read(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, c.log, "ServeBlob", err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
