package history

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dylbow/clawdgod/internal/database"
)

// Snapshot is one recorded point of the portfolio's value over time
type Snapshot struct {
	ID             int64   `json:"id"`
	Balance        float64 `json:"balance"`
	PortfolioValue float64 `json:"portfolio_value"`
	TotalValue     float64 `json:"total_value"`
	RecordedAt     string  `json:"recorded_at"` // RFC 3339
}

// Repository persists portfolio snapshots to sqlite
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a new history repository
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "history").Logger(),
	}
}

// EnsureSchema creates the snapshots table if it does not exist
func (r *Repository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			balance REAL NOT NULL,
			portfolio_value REAL NOT NULL,
			total_value REAL NOT NULL,
			recorded_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}

	_, err = r.db.Exec(`CREATE INDEX IF NOT EXISTS idx_snapshots_recorded_at ON portfolio_snapshots(recorded_at)`)
	if err != nil {
		return fmt.Errorf("failed to create snapshots index: %w", err)
	}

	return nil
}

// Save records a snapshot at the current time
func (r *Repository) Save(balance, portfolioValue, totalValue float64) error {
	_, err := r.db.Exec(
		`INSERT INTO portfolio_snapshots (balance, portfolio_value, total_value, recorded_at) VALUES (?, ?, ?, ?)`,
		balance, portfolioValue, totalValue, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Recent returns snapshots from the last N days, oldest first
func (r *Repository) Recent(days int) ([]Snapshot, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	rows, err := r.db.Query(
		`SELECT id, balance, portfolio_value, total_value, recorded_at
		 FROM portfolio_snapshots
		 WHERE recorded_at >= ?
		 ORDER BY recorded_at ASC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Balance, &s.PortfolioValue, &s.TotalValue, &s.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
