package status

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/dylbow/clawdgod/internal/storage"
)

// overrideDocument is an optional file the trading bot drops next to the
// other data files; its fields shadow the defaults below.
const overrideDocument = "bot-status.json"

// Service reports process status merged with the bot's override document
type Service struct {
	docs       *storage.Documents
	instanceID string
	startedAt  time.Time
	log        zerolog.Logger
}

// NewService creates a new status service with a fresh per-boot instance id
func NewService(docs *storage.Documents, log zerolog.Logger) *Service {
	return &Service{
		docs:       docs,
		instanceID: uuid.NewString(),
		startedAt:  time.Now(),
		log:        log.With().Str("service", "status").Logger(),
	}
}

// Snapshot returns the status document: defaults merged with whatever the
// override file provides. Never fails; a missing override is expected.
func (s *Service) Snapshot() map[string]any {
	snapshot := map[string]any{
		"uptime":       s.uptime().Seconds(),
		"trades_today": 0,
		"scanner":      "active",
		"log":          []any{},
		"instance_id":  s.instanceID,
	}

	override, err := s.docs.LoadMap(overrideDocument)
	if err != nil {
		s.log.Debug().Err(err).Msg("No status override document")
		return snapshot
	}

	for key, value := range override {
		snapshot[key] = value
	}
	return snapshot
}

// uptime asks the OS for the process start time, falling back to the
// service's own construction time when that fails.
func (s *Service) uptime() time.Duration {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if createMillis, err := proc.CreateTime(); err == nil {
			return time.Since(time.UnixMilli(createMillis))
		}
	}
	return time.Since(s.startedAt)
}
