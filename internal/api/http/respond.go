package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/Santhosh-Billionaire/quizplatform/internal/apierr"
	"github.com/Santhosh-Billionaire/quizplatform/internal/logger"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w nethttp.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to the wire shape
// {"error": ..., "code": ...}. Unclassified errors become 500s with a
// generic message so internals never leak to clients.
func writeError(w nethttp.ResponseWriter, log *logger.Logger, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		if ae.Status >= 500 {
			log.Error("request failed", "code", ae.Code, "error", ae.Err)
		}
		writeJSON(w, ae.Status, map[string]string{
			"error": ae.Err.Error(),
			"code":  ae.Code,
		})
		return
	}
	log.Error("request failed", "error", err)
	writeJSON(w, nethttp.StatusInternalServerError, map[string]string{
		"error": "internal server error",
		"code":  "INTERNAL_ERROR",
	})
}
