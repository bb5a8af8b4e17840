package history

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylbow/clawdgod/internal/database"
	"github.com/dylbow/clawdgod/internal/modules/portfolio"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db, zerolog.Nop())
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func TestRepository_SaveAndRecent(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Save(5.00, 6.50, 11.50))
	require.NoError(t, repo.Save(5.00, 7.00, 12.00))

	snapshots, err := repo.Recent(1)
	require.NoError(t, err)

	require.Len(t, snapshots, 2)
	assert.InDelta(t, 11.50, snapshots[0].TotalValue, 1e-9)
	assert.InDelta(t, 12.00, snapshots[1].TotalValue, 1e-9)
	assert.NotEmpty(t, snapshots[0].RecordedAt)
	assert.LessOrEqual(t, snapshots[0].RecordedAt, snapshots[1].RecordedAt)
}

func TestRepository_RecentEmptyTable(t *testing.T) {
	repo := setupTestRepo(t)

	snapshots, err := repo.Recent(7)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestRepository_EnsureSchemaIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	assert.NoError(t, repo.EnsureSchema())
}

type stubSummarySource struct {
	summary *portfolio.Summary
	err     error
}

func (s *stubSummarySource) Summary() (*portfolio.Summary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func TestSnapshotJob_RecordsSummaryTotals(t *testing.T) {
	repo := setupTestRepo(t)
	job := NewSnapshotJob(&stubSummarySource{
		summary: &portfolio.Summary{Balance: 5.00, PortfolioValue: 6.50, TotalValue: 11.50},
	}, repo, zerolog.Nop())

	assert.Equal(t, "portfolio_snapshot", job.Name())
	require.NoError(t, job.Run())

	snapshots, err := repo.Recent(1)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.InDelta(t, 6.50, snapshots[0].PortfolioValue, 1e-9)
}

func TestSnapshotJob_UpstreamFailureSkipsTheTick(t *testing.T) {
	repo := setupTestRepo(t)
	job := NewSnapshotJob(&stubSummarySource{err: fmt.Errorf("signing failed")}, repo, zerolog.Nop())

	assert.Error(t, job.Run())

	snapshots, err := repo.Recent(1)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
