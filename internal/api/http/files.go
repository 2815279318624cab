package http

import (
	"io"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Santhosh-Billionaire/quizplatform/internal/storage"
)

// MountFiles serves stored book files when the filesystem blob driver is
// active. GET /api/files/* returns the blob at whatever follows /files/.
func MountFiles(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w nethttp.ResponseWriter, req *nethttp.Request) {
		key := strings.TrimPrefix(chi.URLParam(req, "*"), "/")
		rc, err := bs.Get(req.Context(), key)
		if err != nil {
			nethttp.Error(w, "not found", nethttp.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}
