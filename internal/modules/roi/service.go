package roi

import (
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dylbow/clawdgod/internal/storage"
)

const ledgerDocument = "roi-data.json"

// A "month" for accrual purposes is a flat 30 days.
const month = 30 * 24 * time.Hour

var one = decimal.NewFromInt(1)

// BalanceSource provides the live cash balance folded into revenue as an
// unrealized-revenue proxy. The portfolio service implements it.
type BalanceSource interface {
	CashBalance() (decimal.Decimal, error)
}

// Service folds the persisted ledger and the live balance into ROI figures
type Service struct {
	docs       *storage.Documents
	balance    BalanceSource
	launchDate time.Time
	now        func() time.Time
	log        zerolog.Logger
}

// NewService creates a new ROI service. launchDate anchors the
// months-active figure. A nil clock defaults to time.Now.
func NewService(docs *storage.Documents, balance BalanceSource, launchDate time.Time, now func() time.Time, log zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		docs:       docs,
		balance:    balance,
		launchDate: launchDate,
		now:        now,
		log:        log.With().Str("service", "roi").Logger(),
	}
}

// Summary computes total costs, total revenue, the per-category cost
// breakdown and the clamped breakeven fraction. A missing ledger document
// means zero totals, and a failing live balance call degrades revenue to
// ledger entries alone; neither fails the computation.
func (s *Service) Summary() (*Summary, error) {
	var ledger Ledger
	if err := s.docs.Load(ledgerDocument, &ledger); err != nil {
		s.log.Debug().Err(err).Msg("ROI ledger unavailable, computing from empty ledger")
	}

	now := s.now()

	totalCosts := decimal.Zero
	breakdown := map[string]decimal.Decimal{}

	// One-time hardware costs.
	for _, item := range ledger.Costs.Hardware {
		totalCosts = totalCosts.Add(item.Amount)
		breakdown[categoryHardware] = breakdown[categoryHardware].Add(item.Amount)
	}

	// Monthly subscriptions accrue at least one month once started, and a
	// partial month rounds up to a full month charged.
	for _, item := range ledger.Costs.Subscriptions {
		if item.Recurring != "monthly" {
			continue
		}
		accrued := item.Amount.Mul(decimal.NewFromInt(s.monthsPaid(item.Date, now)))
		totalCosts = totalCosts.Add(accrued)
		breakdown[categorySubscriptions] = breakdown[categorySubscriptions].Add(accrued)
	}

	// One-time API credit purchases.
	for _, item := range ledger.Costs.APICredits {
		totalCosts = totalCosts.Add(item.Amount)
		breakdown[categoryAPITrading] = breakdown[categoryAPITrading].Add(item.Amount)
	}

	totalRevenue := decimal.Zero
	for _, entries := range ledger.Revenue {
		for _, item := range entries {
			totalRevenue = totalRevenue.Add(item.Amount)
		}
	}

	// Live cash balance counts as unrealized revenue; the deposits behind
	// it are already on the cost side.
	if cash, err := s.balance.CashBalance(); err != nil {
		s.log.Warn().Err(err).Msg("Live balance unavailable, revenue from ledger only")
	} else {
		totalRevenue = totalRevenue.Add(cash)
	}

	costBreakdown := make(map[string]float64, len(breakdown))
	for category, amount := range breakdown {
		costBreakdown[category] = amount.InexactFloat64()
	}

	return &Summary{
		TotalCosts:    totalCosts.InexactFloat64(),
		TotalRevenue:  totalRevenue.InexactFloat64(),
		CostBreakdown: costBreakdown,
		MonthsActive:  s.monthsActive(now),
		Breakeven:     breakeven(totalRevenue, totalCosts),
	}, nil
}

// monthsPaid is ceil(max(1, months elapsed since the item's date)). An item
// dated today or in the future still charges its first month; an
// unparseable date does the same.
func (s *Service) monthsPaid(date string, now time.Time) int64 {
	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		s.log.Warn().Str("date", date).Msg("Unparseable subscription date, charging one month")
		return 1
	}

	elapsed := float64(now.Sub(start)) / float64(month)
	return int64(math.Ceil(math.Max(1, elapsed)))
}

// monthsActive is the fractional number of 30-day months since launch,
// floored at one.
func (s *Service) monthsActive(now time.Time) float64 {
	return math.Max(1, float64(now.Sub(s.launchDate))/float64(month))
}

// breakeven is revenue/costs clamped to [0, 1]; zero costs define it as 0.
// A progress ratio toward profitability, not a profit ratio.
func breakeven(revenue, costs decimal.Decimal) float64 {
	if !costs.IsPositive() {
		return 0
	}
	fraction := revenue.Div(costs)
	if fraction.GreaterThan(one) {
		return 1
	}
	return fraction.InexactFloat64()
}
