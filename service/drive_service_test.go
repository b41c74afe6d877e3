package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestDriveListFolderImagesPaginates(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/files"), r.URL.Path)
		queries = append(queries, r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"nextPageToken": "page-2",
				"files": []map[string]string{
					{"id": "a", "name": "fox.png", "mimeType": "image/png"},
					{"id": "notes", "name": "notes.txt", "mimeType": "text/plain"},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]string{
				{"id": "b", "name": "cat.JPG", "mimeType": "IMAGE/JPEG"},
			},
		})
	}))
	defer srv.Close()

	ds, err := NewDriveServiceWithOptions(context.Background(), "uploads", nil,
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)

	images, err := ds.ListFolderImages(context.Background(), "folder-1")
	require.NoError(t, err)

	assert.Equal(t, []DriveImage{
		{ID: "a", Name: "fox.png", MimeType: "image/png"},
		{ID: "b", Name: "cat.JPG", MimeType: "IMAGE/JPEG"},
	}, images)
	require.Len(t, queries, 2)
	assert.Equal(t, "'folder-1' in parents and trashed=false", queries[0])
}

func TestDrivePublicURL(t *testing.T) {
	ds := &DriveService{}
	assert.Equal(t, "https://drive.google.com/uc?id=abc", ds.PublicURL("abc"))
}
