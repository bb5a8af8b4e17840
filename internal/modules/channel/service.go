package channel

import (
	"github.com/rs/zerolog"

	"github.com/dylbow/clawdgod/internal/storage"
)

// statsDocument is the locally cached channel-stats file, refreshed by an
// external process. Not a live network call in the current design.
const statsDocument = "youtube-data.json"

// Stats holds the channel counters the dashboard renders
type Stats struct {
	Subscribers int     `json:"subscribers"`
	Views       int     `json:"views"`
	Videos      int     `json:"videos"`
	WatchHours  float64 `json:"watchHours"`
}

// defaultStats is what the UI gets when the document is absent, so a panel
// always has something to render.
func defaultStats() Stats {
	return Stats{
		Subscribers: 54,
		Views:       4900,
		Videos:      10,
		WatchHours:  39.9,
	}
}

// Service reads channel stats from the data directory
type Service struct {
	docs *storage.Documents
	log  zerolog.Logger
}

// NewService creates a new channel service
func NewService(docs *storage.Documents, log zerolog.Logger) *Service {
	return &Service{
		docs: docs,
		log:  log.With().Str("service", "channel").Logger(),
	}
}

// Stats returns the persisted channel stats, or the documented defaults
// when the document is missing or unreadable.
func (s *Service) Stats() Stats {
	var stats Stats
	if err := s.docs.Load(statsDocument, &stats); err != nil {
		s.log.Debug().Err(err).Msg("Channel stats document unavailable, using defaults")
		return defaultStats()
	}
	return stats
}
