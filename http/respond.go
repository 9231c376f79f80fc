package http

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/rs/zerolog"

	"loan-eligibility/domain"
)

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 response.
func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error().Err(err).Msg("Error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn().Err(err).Msg("Error writing response")
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	if domain.IsClientError(err) {
		writeJSON(w, logger, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	logger.Error().Err(err).Msg("Request failed")
	writeJSON(w, logger, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// requireJSON rejects POST bodies that are not declared as JSON.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

const maxBodyBytes = 1 << 20
