// internal/api/respond.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "medassist-workers/internal/common/errors"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error code onto an HTTP status.
func statusFor(code apperrors.ErrorCode) int {
	switch {
	case code == apperrors.ErrCodeInputEmpty, code == apperrors.ErrCodeValidation, code == apperrors.ErrCodeParse:
		return http.StatusBadRequest
	case code == apperrors.ErrCodePrescriptionRequired:
		return http.StatusForbidden
	case strings.HasSuffix(string(code), "_NOT_FOUND"):
		return http.StatusNotFound
	case apperrors.IsRetryableErrorCode(code):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := apperrors.Normalize(err)
	status := statusFor(stdErr.Code)
	if status >= 500 {
		h.logger.Error("request error", map[string]interface{}{
			"path":      r.URL.Path,
			"errorCode": stdErr.Code,
			"error":     stdErr.Error(),
		})
	}
	writeJSON(w, status, stdErr)
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewInputEmptyError("body")
		}
		return apperrors.NewParseError(err)
	}
	return nil
}
