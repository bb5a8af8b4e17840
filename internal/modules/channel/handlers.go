package channel

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles channel stats HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new channel handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "channel").Logger(),
	}
}

// HandleStats returns the channel stats. Never fails; missing documents
// fall back to defaults.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(h.service.Stats()); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
