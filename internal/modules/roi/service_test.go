package roi

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylbow/clawdgod/internal/storage"
)

type stubBalance struct {
	cash decimal.Decimal
	err  error
}

func (s *stubBalance) CashBalance() (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.cash, nil
}

var (
	testNow    = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	launchDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
)

func writeLedger(t *testing.T, dir, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roi-data.json"), []byte(contents), 0644))
}

func newTestService(dir string, balance BalanceSource) *Service {
	return NewService(storage.New(dir), balance, launchDate, func() time.Time { return testNow }, zerolog.Nop())
}

func TestSummary_HardwarePlusAccruedSubscription(t *testing.T) {
	dir := t.TempDir()
	// Subscription started 2 months (60 days) before testNow.
	writeLedger(t, dir, `{
		"costs": {
			"hardware": [{"amount": 100, "date": "2026-02-01"}],
			"subscriptions": [{"amount": 10, "date": "2026-01-31", "recurring": "monthly"}]
		},
		"revenue": {}
	}`)

	summary, err := newTestService(dir, &stubBalance{cash: decimal.Zero}).Summary()
	require.NoError(t, err)

	assert.InDelta(t, 120.0, summary.TotalCosts, 1e-9) // 100 + 10*ceil(2)
	assert.InDelta(t, 100.0, summary.CostBreakdown["Hardware"], 1e-9)
	assert.InDelta(t, 20.0, summary.CostBreakdown["Subscriptions"], 1e-9)
}

func TestSummary_SubscriptionDatedTodayChargesOneMonth(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir, `{
		"costs": {
			"subscriptions": [{"amount": 25, "date": "2026-04-01", "recurring": "monthly"}]
		}
	}`)

	summary, err := newTestService(dir, &stubBalance{cash: decimal.Zero}).Summary()
	require.NoError(t, err)

	assert.InDelta(t, 25.0, summary.TotalCosts, 1e-9, "a sub-one-month elapsed period rounds up to one month")
}

func TestSummary_PartialMonthRoundsUp(t *testing.T) {
	dir := t.TempDir()
	// 35 days elapsed: 1.1667 months, charged as 2.
	writeLedger(t, dir, `{
		"costs": {
			"subscriptions": [{"amount": 10, "date": "2026-02-25", "recurring": "monthly"}]
		}
	}`)

	summary, err := newTestService(dir, &stubBalance{cash: decimal.Zero}).Summary()
	require.NoError(t, err)

	assert.InDelta(t, 20.0, summary.TotalCosts, 1e-9)
}

func TestSummary_NonMonthlySubscriptionEntriesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir, `{
		"costs": {
			"subscriptions": [{"amount": 99, "date": "2026-02-01", "recurring": "yearly"}]
		}
	}`)

	summary, err := newTestService(dir, &stubBalance{cash: decimal.Zero}).Summary()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, summary.TotalCosts, 1e-9)
}

func TestSummary_RevenueIncludesLiveBalance(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir, `{
		"costs": {"api_credits": [{"amount": 50, "date": "2026-02-10"}]},
		"revenue": {
			"youtube": [{"amount": 12.50, "date": "2026-03-01"}],
			"consulting": [{"amount": 200, "date": "2026-03-15"}]
		}
	}`)

	summary, err := newTestService(dir, &stubBalance{cash: decimal.RequireFromString("5.25")}).Summary()
	require.NoError(t, err)

	assert.InDelta(t, 217.75, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 50.0, summary.CostBreakdown["API & Trading"], 1e-9)
}

func TestSummary_LiveBalanceFailureDegradesToLedgerRevenue(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir, `{
		"revenue": {"youtube": [{"amount": 40, "date": "2026-03-01"}]}
	}`)

	summary, err := newTestService(dir, &stubBalance{err: fmt.Errorf("signing failed")}).Summary()
	require.NoError(t, err, "a failing live call must not fail the ROI computation")
	assert.InDelta(t, 40.0, summary.TotalRevenue, 1e-9)
}

func TestSummary_MissingLedgerYieldsZeroTotals(t *testing.T) {
	summary, err := newTestService(t.TempDir(), &stubBalance{cash: decimal.Zero}).Summary()
	require.NoError(t, err)

	assert.Zero(t, summary.TotalCosts)
	assert.Zero(t, summary.TotalRevenue)
	assert.Empty(t, summary.CostBreakdown)
}

func TestSummary_MonthsActiveFlooredAtOne(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(storage.New(dir), &stubBalance{cash: decimal.Zero}, testNow, func() time.Time { return testNow }, zerolog.Nop())

	summary, err := svc.Summary()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, summary.MonthsActive, 1e-9)

	// 59 days after launch: just under two 30-day months.
	later := NewService(storage.New(dir), &stubBalance{cash: decimal.Zero}, launchDate, func() time.Time { return testNow }, zerolog.Nop())
	summary, err = later.Summary()
	require.NoError(t, err)
	assert.InDelta(t, 59.0/30.0, summary.MonthsActive, 1e-9)
}

func TestBreakeven_ClampedToUnitInterval(t *testing.T) {
	tests := []struct {
		name     string
		revenue  string
		costs    string
		expected float64
	}{
		{"zero costs defined as zero", "100", "0", 0},
		{"partial progress", "30", "120", 0.25},
		{"revenue above costs clamps to one", "500", "120", 1},
		{"zero revenue", "0", "120", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := breakeven(decimal.RequireFromString(tt.revenue), decimal.RequireFromString(tt.costs))
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}
