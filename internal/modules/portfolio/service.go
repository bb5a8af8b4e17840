package portfolio

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dylbow/clawdgod/internal/cache"
	"github.com/dylbow/clawdgod/internal/clients/kalshi"
)

// Cache TTLs per key class. Balance and positions share a class; market
// snapshots are refreshed less often.
const (
	balanceTTL   = 30 * time.Second
	positionsTTL = 30 * time.Second
	marketTTL    = 60 * time.Second
)

const (
	balanceKey   = "kalshi-balance"
	positionsKey = "kalshi-positions"
	marketKey    = "market-"
)

var cents = decimal.NewFromInt(100)

// MarketAPI is the slice of the Kalshi client the service needs. Tests
// substitute a stub returning canned payloads.
type MarketAPI interface {
	GetBalance() (*kalshi.Balance, error)
	GetPositions() ([]kalshi.MarketPosition, error)
	GetMarket(ticker string) (*kalshi.Market, error)
}

// Service aggregates balance, positions and per-ticker market data into the
// dashboard's portfolio summary.
type Service struct {
	api            MarketAPI
	cache          *cache.Cache
	totalDeposited decimal.Decimal
	log            zerolog.Logger
}

// NewService creates a new portfolio service. totalDeposited is the
// externally tracked deposit total in dollars.
func NewService(api MarketAPI, c *cache.Cache, totalDeposited decimal.Decimal, log zerolog.Logger) *Service {
	return &Service{
		api:            api,
		cache:          c,
		totalDeposited: totalDeposited,
		log:            log.With().Str("service", "portfolio").Logger(),
	}
}

// Summary fetches balance and positions through the cache, enriches each
// position with its market snapshot, and computes the derived totals. A
// failure of either top-level call propagates; partial zeros are never
// reported.
func (s *Service) Summary() (*Summary, error) {
	balance, err := cache.GetOrCompute(s.cache, balanceKey, balanceTTL, s.api.GetBalance)
	if err != nil {
		return nil, err
	}

	positions, err := cache.GetOrCompute(s.cache, positionsKey, positionsTTL, s.api.GetPositions)
	if err != nil {
		return nil, err
	}

	enriched := s.enrich(positions)

	cashBalance := decimal.NewFromInt(balance.Balance).Div(cents)

	// Sum position * yes_price in cents, unknown prices count as zero.
	valueCents := decimal.Zero
	for _, p := range enriched {
		if p.YesPrice == nil {
			continue
		}
		valueCents = valueCents.Add(decimal.NewFromInt(p.Position).Mul(decimal.NewFromInt(*p.YesPrice)))
	}
	portfolioValue := valueCents.Div(cents)

	totalValue := cashBalance.Add(portfolioValue)
	totalPnL := totalValue.Sub(s.totalDeposited)

	return &Summary{
		Balance:        cashBalance.InexactFloat64(),
		PortfolioValue: portfolioValue.InexactFloat64(),
		TotalValue:     totalValue.InexactFloat64(),
		TotalDeposited: s.totalDeposited.InexactFloat64(),
		TotalPnL:       totalPnL.InexactFloat64(),
		Positions:      enriched,
	}, nil
}

// CashBalance returns the live cash balance in dollars, through the same
// cache key the summary uses. The ROI aggregator treats it as an
// unrealized-revenue proxy.
func (s *Service) CashBalance() (decimal.Decimal, error) {
	balance, err := cache.GetOrCompute(s.cache, balanceKey, balanceTTL, s.api.GetBalance)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(balance.Balance).Div(cents), nil
}

// enrich attaches the cached market snapshot to each position, in the input
// order. One failed lookup degrades that position's market fields and
// leaves the rest of the batch alone.
func (s *Service) enrich(positions []kalshi.MarketPosition) []Position {
	result := make([]Position, 0, len(positions))
	for _, p := range positions {
		ticker := p.Ticker
		enriched := Position{
			Ticker:      ticker,
			Position:    p.Position,
			Exposure:    p.MarketExposureDollars,
			RealizedPnL: p.RealizedPnLDollars,
			Subtitle:    ticker,
		}

		market, err := cache.GetOrCompute(s.cache, marketKey+ticker, marketTTL, func() (*kalshi.Market, error) {
			return s.api.GetMarket(ticker)
		})
		if err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker).Msg("Market lookup failed, keeping position without prices")
			result = append(result, enriched)
			continue
		}

		if price := yesPrice(market); price != 0 {
			enriched.YesPrice = &price
		}
		enriched.Result = market.Result
		enriched.Subtitle = subtitle(market, ticker)
		result = append(result, enriched)
	}
	return result
}

// yesPrice prefers the current ask, falling back to the last trade.
func yesPrice(m *kalshi.Market) int64 {
	if m.YesAsk != 0 {
		return m.YesAsk
	}
	return m.LastPrice
}

func subtitle(m *kalshi.Market, ticker string) string {
	if m.Subtitle != "" {
		return m.Subtitle
	}
	if m.Title != "" {
		return m.Title
	}
	return ticker
}
