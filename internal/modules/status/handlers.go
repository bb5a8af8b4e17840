package status

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles status HTTP requests
type Handler struct {
	service *Service
	log     zerolog.Logger
}

// NewHandler creates a new status handler
func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "status").Logger(),
	}
}

// HandleStatus returns the merged status snapshot
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(h.service.Snapshot()); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
