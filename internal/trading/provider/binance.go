package tradingprovider

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/google/uuid"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// BinanceDecimalPrecision is a default decimal precision used as a fallback.
	// 8 decimals allows for satoshi-level precision (0.00000001 BTC) for BTC-like assets.
	BinanceDecimalPrecision = 8
)

// Binance API error codes that mean the credentials will never work.
var binanceAuthErrorCodes = map[int64]struct{}{
	-1022: {}, // signature for this request is not valid
	-2014: {}, // API-key format invalid
	-2015: {}, // invalid API-key, IP, or permissions for action
}

// BinanceProvider implements Exchange using the Binance spot API.
// It is stateless - all data is fetched directly from the Binance API.
type BinanceProvider struct {
	client           BinanceClient
	decimalPrecision int
	now              func() time.Time
}

var _ Exchange = (*BinanceProvider)(nil)

// NewBinanceProvider creates a new Binance provider.
// If useTestnet is true, connects to Binance Testnet (https://testnet.binance.vision/).
func NewBinanceProvider(config BinanceProviderConfig, useTestnet bool) (*BinanceProvider, error) {
	if useTestnet {
		binance.UseTestnet = true
	}

	client := binance.NewClient(config.ApiKey, config.SecretKey)

	return &BinanceProvider{
		client:           &realBinanceClient{client: client},
		decimalPrecision: BinanceDecimalPrecision,
		now:              time.Now,
	}, nil
}

// newBinanceProviderWithClient creates a new Binance provider with a custom client.
// This is used for testing with mock clients.
func newBinanceProviderWithClient(client BinanceClient) *BinanceProvider {
	return &BinanceProvider{
		client:           client,
		decimalPrecision: BinanceDecimalPrecision,
		now:              time.Now,
	}
}

// Ping synchronizes the server time offset and reads the account, which fails
// fast on unreachable endpoints and rejected credentials.
func (b *BinanceProvider) Ping(ctx context.Context) error {
	if _, err := b.client.NewSetServerTimeService().Do(ctx); err != nil {
		return classifyBinanceError(errors.ErrCodeConnectivityFailed, "failed to synchronize server time with Binance", err)
	}

	if _, err := b.client.NewGetAccountService().Do(ctx); err != nil {
		return classifyBinanceError(errors.ErrCodeConnectivityFailed, "failed to read Binance account", err)
	}

	return nil
}

// GetCandles fetches the latest klines for symbol, oldest first.
func (b *BinanceProvider) GetCandles(ctx context.Context, symbol string, interval string, limit int) ([]types.Candle, error) {
	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, classifyBinanceError(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from Binance", err)
	}

	candles := make([]types.Candle, 0, len(klines))

	for _, k := range klines {
		candle, err := klineToCandle(k)
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	return candles, nil
}

func klineToCandle(k *binance.Kline) (types.Candle, error) {
	values := make([]float64, 5)

	for i, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Candle{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid kline value %q", raw)
		}

		values[i] = v
	}

	return types.Candle{
		Time:   time.UnixMilli(k.OpenTime), // Using OpenTime as the timestamp for the bar
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}

// LatestPrice returns the latest ticker price for symbol.
func (b *BinanceProvider) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, classifyBinanceError(errors.ErrCodeMarketDataFetchFailed, "failed to fetch ticker price from Binance", err)
	}

	for _, p := range prices {
		if p.Symbol != symbol {
			continue
		}

		price, err := strconv.ParseFloat(p.Price, 64)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid ticker price %q", p.Price)
		}

		return price, nil
	}

	return 0, errors.Newf(errors.ErrCodeMarketDataEmpty, "no ticker price returned for %s", symbol)
}

// MarketBuy places a market buy order and waits for the FULL response.
func (b *BinanceProvider) MarketBuy(ctx context.Context, symbol string, quantity float64) (types.Fill, error) {
	return b.placeMarketOrder(ctx, symbol, types.PurchaseTypeBuy, quantity)
}

// MarketSell places a market sell order and waits for the FULL response.
func (b *BinanceProvider) MarketSell(ctx context.Context, symbol string, quantity float64) (types.Fill, error) {
	return b.placeMarketOrder(ctx, symbol, types.PurchaseTypeSell, quantity)
}

func (b *BinanceProvider) placeMarketOrder(ctx context.Context, symbol string, side types.PurchaseType, quantity float64) (types.Fill, error) {
	order := types.MarketOrder{
		Symbol:        symbol,
		Side:          side,
		Quantity:      quantity,
		ClientOrderID: uuid.New().String(),
	}
	if err := order.Validate(); err != nil {
		return types.Fill{}, err
	}

	var binanceSide binance.SideType

	switch side {
	case types.PurchaseTypeBuy:
		binanceSide = binance.SideTypeBuy
	case types.PurchaseTypeSell:
		binanceSide = binance.SideTypeSell
	default:
		return types.Fill{}, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported order side: %s", side)
	}

	roundedQuantity := roundToDecimalPrecision(quantity, b.decimalPrecision)
	if roundedQuantity <= 0 {
		return types.Fill{}, errors.Newf(errors.ErrCodeInvalidParameter,
			"order quantity %.8f is too small after rounding to %d decimal places",
			quantity, b.decimalPrecision)
	}

	resp, err := b.client.NewCreateOrderService().
		Symbol(symbol).
		Side(binanceSide).
		Type(binance.OrderTypeMarket).
		Quantity(strconv.FormatFloat(roundedQuantity, 'f', b.decimalPrecision, 64)).
		NewClientOrderID(order.ClientOrderID).
		NewOrderRespType(binance.NewOrderRespTypeFULL).
		Do(ctx)
	if err != nil {
		return types.Fill{}, classifyBinanceError(errors.ErrCodeOrderFailed, "failed to place order on Binance", err)
	}

	return b.fillFromResponse(resp, side)
}

func (b *BinanceProvider) fillFromResponse(resp *binance.CreateOrderResponse, side types.PurchaseType) (types.Fill, error) {
	if resp == nil {
		return types.Fill{}, errors.New(errors.ErrCodeOrderFailed, "empty order response from Binance")
	}

	if resp.Status != binance.OrderStatusTypeFilled {
		return types.Fill{}, errors.Newf(errors.ErrCodeOrderFailed, "order %d not filled: status %s", resp.OrderID, resp.Status)
	}

	executedQty, _ := strconv.ParseFloat(resp.ExecutedQuantity, 64)
	quoteQty, _ := strconv.ParseFloat(resp.CummulativeQuoteQuantity, 64)

	commission := 0.0

	// weighted average over the partial fills when the summary fields are missing
	if executedQty <= 0 || quoteQty <= 0 {
		executedQty, quoteQty = 0, 0

		for _, f := range resp.Fills {
			price, _ := strconv.ParseFloat(f.Price, 64)
			qty, _ := strconv.ParseFloat(f.Quantity, 64)
			executedQty += qty
			quoteQty += price * qty
		}
	}

	for _, f := range resp.Fills {
		c, _ := strconv.ParseFloat(f.Commission, 64)
		commission += c
	}

	if executedQty <= 0 {
		return types.Fill{}, errors.Newf(errors.ErrCodeOrderFailed, "order %d reported no executed quantity", resp.OrderID)
	}

	filledAt := b.now()
	if resp.TransactTime > 0 {
		filledAt = time.UnixMilli(resp.TransactTime)
	}

	return types.Fill{
		OrderID:       strconv.FormatInt(resp.OrderID, 10),
		ClientOrderID: resp.ClientOrderID,
		Symbol:        resp.Symbol,
		Side:          side,
		Price:         quoteQty / executedQty,
		Quantity:      executedQty,
		Commission:    commission,
		FilledAt:      filledAt,
	}, nil
}

// GetFreeBalance returns the free balance of asset, zero when the asset is not held.
func (b *BinanceProvider) GetFreeBalance(ctx context.Context, asset string) (float64, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return 0, classifyBinanceError(errors.ErrCodeBalanceQueryFailed, "failed to get account info from Binance", err)
	}

	for _, balance := range account.Balances {
		if balance.Asset != asset {
			continue
		}

		free, err := strconv.ParseFloat(balance.Free, 64)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeBalanceQueryFailed, err, "invalid free balance %q for %s", balance.Free, asset)
		}

		return free, nil
	}

	return 0, nil
}

// classifyBinanceError wraps err with code, upgrading rejected credentials to an
// authentication failure so the control loop stops instead of retrying.
func classifyBinanceError(code errors.ErrorCode, message string, err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		if _, ok := binanceAuthErrorCodes[apiErr.Code]; ok {
			return errors.Wrap(errors.ErrCodeAuthenticationFailed, message, err)
		}
	}

	return errors.Wrap(code, message, err)
}

// roundToDecimalPrecision rounds the quantity down to the specified decimal precision.
func roundToDecimalPrecision(quantity float64, decimalPrecision int) float64 {
	return decimal.NewFromFloat(quantity).RoundDown(int32(decimalPrecision)).InexactFloat64()
}
