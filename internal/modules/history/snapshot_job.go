package history

import (
	"github.com/rs/zerolog"

	"github.com/dylbow/clawdgod/internal/modules/portfolio"
)

// SummarySource provides the live portfolio summary. The portfolio service
// implements it.
type SummarySource interface {
	Summary() (*portfolio.Summary, error)
}

// SnapshotJob periodically records the portfolio totals. Implements
// scheduler.Job.
type SnapshotJob struct {
	source SummarySource
	repo   *Repository
	log    zerolog.Logger
}

// NewSnapshotJob creates a new snapshot job
func NewSnapshotJob(source SummarySource, repo *Repository, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		source: source,
		repo:   repo,
		log:    log.With().Str("job", "snapshot").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "portfolio_snapshot"
}

// Run fetches the summary through the shared cache and persists one
// snapshot. An upstream failure skips the tick; the next tick retries.
func (j *SnapshotJob) Run() error {
	summary, err := j.source.Summary()
	if err != nil {
		return err
	}

	return j.repo.Save(summary.Balance, summary.PortfolioValue, summary.TotalValue)
}
