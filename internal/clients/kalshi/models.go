package kalshi

// Balance is the account cash balance, in cents.
type Balance struct {
	Balance int64 `json:"balance"`
}

// MarketPosition is one open position as the API reports it. The dollar
// fields arrive as formatted strings and are passed through untouched.
type MarketPosition struct {
	Ticker                string `json:"ticker"`
	Position              int64  `json:"position"`
	MarketExposureDollars string `json:"market_exposure_dollars"`
	RealizedPnLDollars    string `json:"realized_pnl_dollars"`
}

type positionsResponse struct {
	MarketPositions []MarketPosition `json:"market_positions"`
}

// Market is the per-ticker market snapshot. Prices are in cents; a zero or
// absent price means the venue reported none.
type Market struct {
	YesAsk    int64  `json:"yes_ask"`
	LastPrice int64  `json:"last_price"`
	Result    string `json:"result"`
	Subtitle  string `json:"subtitle"`
	Title     string `json:"title"`
}

type marketResponse struct {
	Market Market `json:"market"`
}
