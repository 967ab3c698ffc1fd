package tradingprovider

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"github.com/shopspring/decimal"
)

// SimulatedExchange serves market data from a real feed and fills market orders
// locally at the latest price, moving in-memory balances.
type SimulatedExchange struct {
	feed     MarketDataFeed
	balances map[string]decimal.Decimal
	// assets maps a symbol to its base and quote asset, e.g. BTCEUR -> BTC, EUR.
	assets  map[string][2]string
	orderID int64
	now     func() time.Time
	mu      sync.Mutex
}

var _ Exchange = (*SimulatedExchange)(nil)

// NewSimulatedExchange creates a simulated exchange with the given starting balances.
func NewSimulatedExchange(feed MarketDataFeed, initialBalance map[string]float64) *SimulatedExchange {
	balances := make(map[string]decimal.Decimal, len(initialBalance))
	for asset, amount := range initialBalance {
		balances[strings.ToUpper(asset)] = decimal.NewFromFloat(amount)
	}

	return &SimulatedExchange{
		feed:     feed,
		balances: balances,
		assets:   make(map[string][2]string),
		orderID:  0,
		now:      time.Now,
		mu:       sync.Mutex{},
	}
}

// RegisterSymbol declares the base and quote assets of symbol so orders can move balances.
func (s *SimulatedExchange) RegisterSymbol(symbol, baseAsset, quoteAsset string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets[symbol] = [2]string{strings.ToUpper(baseAsset), strings.ToUpper(quoteAsset)}
}

// Ping always succeeds; the exchange lives in memory.
func (s *SimulatedExchange) Ping(_ context.Context) error {
	return nil
}

// GetCandles delegates to the underlying feed.
func (s *SimulatedExchange) GetCandles(ctx context.Context, symbol string, interval string, limit int) ([]types.Candle, error) {
	return s.feed.GetCandles(ctx, symbol, interval, limit)
}

// LatestPrice delegates to the underlying feed.
func (s *SimulatedExchange) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	return s.feed.LatestPrice(ctx, symbol)
}

// MarketBuy fills the buy at the latest feed price if the quote balance covers it.
func (s *SimulatedExchange) MarketBuy(ctx context.Context, symbol string, quantity float64) (types.Fill, error) {
	return s.fill(ctx, symbol, types.PurchaseTypeBuy, quantity)
}

// MarketSell fills the sell at the latest feed price if the base balance covers it.
func (s *SimulatedExchange) MarketSell(ctx context.Context, symbol string, quantity float64) (types.Fill, error) {
	return s.fill(ctx, symbol, types.PurchaseTypeSell, quantity)
}

func (s *SimulatedExchange) fill(ctx context.Context, symbol string, side types.PurchaseType, quantity float64) (types.Fill, error) {
	order := types.MarketOrder{
		Symbol:        symbol,
		Side:          side,
		Quantity:      quantity,
		ClientOrderID: uuid.New().String(),
	}
	if err := order.Validate(); err != nil {
		return types.Fill{}, err
	}

	price, err := s.feed.LatestPrice(ctx, symbol)
	if err != nil {
		return types.Fill{}, errors.Wrap(errors.ErrCodeOrderFailed, "failed to price simulated order", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pair, ok := s.assets[symbol]
	if !ok {
		return types.Fill{}, errors.Newf(errors.ErrCodeOrderFailed, "symbol %s is not registered with the simulated exchange", symbol)
	}

	base, quote := pair[0], pair[1]
	qty := decimal.NewFromFloat(quantity)
	cost := qty.Mul(decimal.NewFromFloat(price))

	switch side {
	case types.PurchaseTypeBuy:
		if s.balances[quote].LessThan(cost) {
			return types.Fill{}, errors.Newf(errors.ErrCodeOrderFailed,
				"insufficient %s balance: need %s, have %s", quote, cost.String(), s.balances[quote].String())
		}

		s.balances[quote] = s.balances[quote].Sub(cost)
		s.balances[base] = s.balances[base].Add(qty)
	case types.PurchaseTypeSell:
		if s.balances[base].LessThan(qty) {
			return types.Fill{}, errors.Newf(errors.ErrCodeOrderFailed,
				"insufficient %s balance: need %s, have %s", base, qty.String(), s.balances[base].String())
		}

		s.balances[base] = s.balances[base].Sub(qty)
		s.balances[quote] = s.balances[quote].Add(cost)
	}

	s.orderID++

	return types.Fill{
		OrderID:       "sim-" + strconv.FormatInt(s.orderID, 10),
		ClientOrderID: order.ClientOrderID,
		Symbol:        symbol,
		Side:          side,
		Price:         price,
		Quantity:      quantity,
		Commission:    0,
		FilledAt:      s.now(),
	}, nil
}

// GetFreeBalance returns the in-memory balance of asset.
func (s *SimulatedExchange) GetFreeBalance(_ context.Context, asset string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balances[strings.ToUpper(asset)].InexactFloat64(), nil
}
