package server

import (
	"encoding/json"
	"errors"
	"net/http"

	lerrors "github.com/matzehuels/topolayout/pkg/errors"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

// respondError maps a coded error to its HTTP status.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := lerrors.GetCode(err)
	if code == "" {
		code = lerrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    string(code),
		Message: lerrors.UserMessage(err),
	})
}

func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	switch {
	case lerrors.Is(err, lerrors.ErrCodeCancelled):
		return http.StatusConflict
	case lerrors.Is(err, lerrors.ErrCodeUnknownStrategy):
		return http.StatusNotFound
	case lerrors.Is(err, lerrors.ErrCodeInvalidInput),
		lerrors.Is(err, lerrors.ErrCodeInvalidFormat),
		lerrors.Is(err, lerrors.ErrCodeInvalidConfig),
		lerrors.Is(err, lerrors.ErrCodeInvalidName),
		lerrors.Is(err, lerrors.ErrCodeUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body. Malformed bodies are INVALID_FORMAT errors.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return lerrors.Wrap(lerrors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}
