package portfolio

// Position is one open position enriched with its market snapshot. YesPrice
// is nil when the per-ticker lookup failed or the venue reported no price;
// the UI renders those fields as unknown rather than dropping the row.
type Position struct {
	Ticker      string `json:"ticker"`
	Position    int64  `json:"position"`
	Exposure    string `json:"exposure"`
	RealizedPnL string `json:"realized_pnl"`
	YesPrice    *int64 `json:"yes_price"` // cents
	Result      string `json:"result"`    // "yes", "no", or "" while open
	Subtitle    string `json:"subtitle"`
}

// Summary is the aggregated portfolio view. Dollar figures are computed
// with decimal arithmetic and rendered as JSON numbers.
type Summary struct {
	Balance        float64    `json:"balance"`
	PortfolioValue float64    `json:"portfolio_value"`
	TotalValue     float64    `json:"total_value"`
	TotalDeposited float64    `json:"total_deposited"`
	TotalPnL       float64    `json:"total_pnl"`
	Positions      []Position `json:"positions"`
}
