package roi

import "github.com/shopspring/decimal"

// Ledger is the persisted cost/revenue document. The schema is owned by
// whatever writes the file; this process only folds it into totals.
type Ledger struct {
	Costs struct {
		Hardware      []Entry `json:"hardware"`
		Subscriptions []Entry `json:"subscriptions"`
		APICredits    []Entry `json:"api_credits"`
	} `json:"costs"`
	Revenue map[string][]Entry `json:"revenue"`
}

// Entry is one ledger line. Recurring is "monthly" for subscription items
// and empty for one-time amounts.
type Entry struct {
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Recurring string          `json:"recurring,omitempty"`
}

// Breakdown category labels.
const (
	categoryHardware      = "Hardware"
	categorySubscriptions = "Subscriptions"
	categoryAPITrading    = "API & Trading"
)

// Summary is the computed ROI view
type Summary struct {
	TotalCosts    float64            `json:"totalCosts"`
	TotalRevenue  float64            `json:"totalRevenue"`
	CostBreakdown map[string]float64 `json:"costBreakdown"`
	MonthsActive  float64            `json:"monthsActive"`
	Breakeven     float64            `json:"breakeven"`
}
