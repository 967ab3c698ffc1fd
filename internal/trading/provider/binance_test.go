package tradingprovider

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// Mock implementations for testing

// mockBinanceClient implements BinanceClient interface for testing
type mockBinanceClient struct {
	createOrderService   *mockCreateOrderService
	getAccountService    *mockGetAccountService
	klinesService        *mockKlinesService
	listPricesService    *mockListPricesService
	setServerTimeService *mockSetServerTimeService
}

func newMockBinanceClient() *mockBinanceClient {
	return &mockBinanceClient{
		createOrderService:   &mockCreateOrderService{},
		getAccountService:    &mockGetAccountService{},
		klinesService:        &mockKlinesService{},
		listPricesService:    &mockListPricesService{},
		setServerTimeService: &mockSetServerTimeService{},
	}
}

func (m *mockBinanceClient) NewCreateOrderService() CreateOrderService {
	return m.createOrderService
}

func (m *mockBinanceClient) NewGetAccountService() GetAccountService {
	return m.getAccountService
}

func (m *mockBinanceClient) NewKlinesService() KlinesService {
	return m.klinesService
}

func (m *mockBinanceClient) NewListPricesService() ListPricesService {
	return m.listPricesService
}

func (m *mockBinanceClient) NewSetServerTimeService() SetServerTimeService {
	return m.setServerTimeService
}

// mockCreateOrderService implements CreateOrderService
type mockCreateOrderService struct {
	response      *binance.CreateOrderResponse
	err           error
	called        bool
	symbol        string
	side          binance.SideType
	orderTyp      binance.OrderType
	quantity      string
	clientOrderID string
	respType      binance.NewOrderRespType
}

func (m *mockCreateOrderService) Symbol(symbol string) CreateOrderService {
	m.symbol = symbol
	return m
}

func (m *mockCreateOrderService) Side(side binance.SideType) CreateOrderService {
	m.side = side
	return m
}

func (m *mockCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	m.orderTyp = orderType
	return m
}

func (m *mockCreateOrderService) Quantity(quantity string) CreateOrderService {
	m.quantity = quantity
	return m
}

func (m *mockCreateOrderService) NewClientOrderID(newClientOrderID string) CreateOrderService {
	m.clientOrderID = newClientOrderID
	return m
}

func (m *mockCreateOrderService) NewOrderRespType(newOrderRespType binance.NewOrderRespType) CreateOrderService {
	m.respType = newOrderRespType
	return m
}

func (m *mockCreateOrderService) Do(_ context.Context) (*binance.CreateOrderResponse, error) {
	m.called = true
	return m.response, m.err
}

// mockGetAccountService implements GetAccountService
type mockGetAccountService struct {
	account *binance.Account
	err     error
}

func (m *mockGetAccountService) Do(_ context.Context) (*binance.Account, error) {
	return m.account, m.err
}

// mockKlinesService implements KlinesService
type mockKlinesService struct {
	klines   []*binance.Kline
	err      error
	symbol   string
	interval string
	limit    int
}

func (m *mockKlinesService) Symbol(symbol string) KlinesService {
	m.symbol = symbol
	return m
}

func (m *mockKlinesService) Interval(interval string) KlinesService {
	m.interval = interval
	return m
}

func (m *mockKlinesService) Limit(limit int) KlinesService {
	m.limit = limit
	return m
}

func (m *mockKlinesService) Do(_ context.Context) ([]*binance.Kline, error) {
	return m.klines, m.err
}

// mockListPricesService implements ListPricesService
type mockListPricesService struct {
	prices []*binance.SymbolPrice
	err    error
	symbol string
}

func (m *mockListPricesService) Symbol(symbol string) ListPricesService {
	m.symbol = symbol
	return m
}

func (m *mockListPricesService) Do(_ context.Context) ([]*binance.SymbolPrice, error) {
	return m.prices, m.err
}

// mockSetServerTimeService implements SetServerTimeService
type mockSetServerTimeService struct {
	offset int64
	err    error
}

func (m *mockSetServerTimeService) Do(_ context.Context) (int64, error) {
	return m.offset, m.err
}

type BinanceProviderTestSuite struct {
	suite.Suite
}

func TestBinanceProviderSuite(t *testing.T) {
	suite.Run(t, new(BinanceProviderTestSuite))
}

func (suite *BinanceProviderTestSuite) TestParseBinanceConfig_Valid() {
	config, err := parseBinanceConfig(`{"apiKey": "key", "secretKey": "secret"}`)
	suite.Require().NoError(err)
	suite.Equal("key", config.ApiKey)
	suite.Equal("secret", config.SecretKey)
}

func (suite *BinanceProviderTestSuite) TestParseBinanceConfig_MissingSecretKey() {
	_, err := parseBinanceConfig(`{"apiKey": "key"}`)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *BinanceProviderTestSuite) TestParseBinanceConfig_InvalidJSON() {
	_, err := parseBinanceConfig(`{not json`)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *BinanceProviderTestSuite) TestPing_Success() {
	mockClient := newMockBinanceClient()
	mockClient.getAccountService.account = &binance.Account{}

	provider := newBinanceProviderWithClient(mockClient)
	suite.NoError(provider.Ping(context.Background()))
}

func (suite *BinanceProviderTestSuite) TestPing_ServerTimeFailure() {
	mockClient := newMockBinanceClient()
	mockClient.setServerTimeService.err = stderrors.New("dial tcp: connection refused")

	provider := newBinanceProviderWithClient(mockClient)
	err := provider.Ping(context.Background())
	suite.True(errors.HasCode(err, errors.ErrCodeConnectivityFailed))
	suite.True(errors.IsFatal(err))
}

func (suite *BinanceProviderTestSuite) TestPing_RejectedCredentials() {
	mockClient := newMockBinanceClient()
	mockClient.getAccountService.err = &common.APIError{Code: -2015, Message: "Invalid API-key, IP, or permissions for action."}

	provider := newBinanceProviderWithClient(mockClient)
	err := provider.Ping(context.Background())
	suite.True(errors.HasCode(err, errors.ErrCodeAuthenticationFailed))
	suite.True(errors.IsFatal(err))
}

func (suite *BinanceProviderTestSuite) TestGetCandles_Success() {
	mockClient := newMockBinanceClient()
	mockClient.klinesService.klines = []*binance.Kline{
		{
			OpenTime: 1704067200000, // 2024-01-01 00:00:00 UTC
			Open:     "42000.50",
			High:     "42500.00",
			Low:      "41800.00",
			Close:    "42300.00",
			Volume:   "1000.5",
		},
		{
			OpenTime: 1704067500000, // 2024-01-01 00:05:00 UTC
			Open:     "42300.00",
			High:     "42400.00",
			Low:      "42200.00",
			Close:    "42350.00",
			Volume:   "800",
		},
	}

	provider := newBinanceProviderWithClient(mockClient)
	candles, err := provider.GetCandles(context.Background(), "BTCEUR", "5m", 50)
	suite.Require().NoError(err)
	suite.Require().Len(candles, 2)

	suite.Equal("BTCEUR", mockClient.klinesService.symbol)
	suite.Equal("5m", mockClient.klinesService.interval)
	suite.Equal(50, mockClient.klinesService.limit)

	suite.Equal(time.UnixMilli(1704067200000), candles[0].Time)
	suite.Equal(42000.50, candles[0].Open)
	suite.Equal(42300.00, candles[0].Close)
	suite.Equal(1000.5, candles[0].Volume)
	suite.Equal(42350.00, candles[1].Close)
}

func (suite *BinanceProviderTestSuite) TestGetCandles_InvalidValue() {
	mockClient := newMockBinanceClient()
	mockClient.klinesService.klines = []*binance.Kline{
		{OpenTime: 1704067200000, Open: "1", High: "1", Low: "1", Close: "abc", Volume: "1"},
	}

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.GetCandles(context.Background(), "BTCEUR", "5m", 50)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *BinanceProviderTestSuite) TestGetCandles_APIError() {
	mockClient := newMockBinanceClient()
	mockClient.klinesService.err = stderrors.New("timeout")

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.GetCandles(context.Background(), "BTCEUR", "5m", 50)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.False(errors.IsFatal(err))
}

func (suite *BinanceProviderTestSuite) TestLatestPrice() {
	mockClient := newMockBinanceClient()
	mockClient.listPricesService.prices = []*binance.SymbolPrice{
		{Symbol: "BTCEUR", Price: "61234.56"},
	}

	provider := newBinanceProviderWithClient(mockClient)
	price, err := provider.LatestPrice(context.Background(), "BTCEUR")
	suite.Require().NoError(err)
	suite.Equal(61234.56, price)
	suite.Equal("BTCEUR", mockClient.listPricesService.symbol)
}

func (suite *BinanceProviderTestSuite) TestLatestPrice_Empty() {
	mockClient := newMockBinanceClient()

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.LatestPrice(context.Background(), "BTCEUR")
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataEmpty))
}

func (suite *BinanceProviderTestSuite) TestMarketBuy_Success() {
	mockClient := newMockBinanceClient()
	mockClient.createOrderService.response = &binance.CreateOrderResponse{
		Symbol:                   "BTCEUR",
		OrderID:                  12345,
		ClientOrderID:            "client-1",
		TransactTime:             1704067200000,
		ExecutedQuantity:         "0.00120000",
		CummulativeQuoteQuantity: "72.00000000",
		Status:                   binance.OrderStatusTypeFilled,
		Fills: []*binance.Fill{
			{Price: "60000.00", Quantity: "0.00120000", Commission: "0.00000120"},
		},
	}

	provider := newBinanceProviderWithClient(mockClient)
	fill, err := provider.MarketBuy(context.Background(), "BTCEUR", 0.0012)
	suite.Require().NoError(err)

	suite.Equal("BTCEUR", mockClient.createOrderService.symbol)
	suite.Equal(binance.SideTypeBuy, mockClient.createOrderService.side)
	suite.Equal(binance.OrderTypeMarket, mockClient.createOrderService.orderTyp)
	suite.Equal(binance.NewOrderRespTypeFULL, mockClient.createOrderService.respType)
	suite.Equal("0.00120000", mockClient.createOrderService.quantity)
	suite.NotEmpty(mockClient.createOrderService.clientOrderID)

	suite.Equal("12345", fill.OrderID)
	suite.Equal(types.PurchaseTypeBuy, fill.Side)
	suite.InDelta(60000.0, fill.Price, 1e-6)
	suite.InDelta(0.0012, fill.Quantity, 1e-12)
	suite.InDelta(0.0000012, fill.Commission, 1e-12)
	suite.Equal(time.UnixMilli(1704067200000), fill.FilledAt)
}

func (suite *BinanceProviderTestSuite) TestMarketSell_WeightedAverageFromFills() {
	mockClient := newMockBinanceClient()
	mockClient.createOrderService.response = &binance.CreateOrderResponse{
		Symbol:  "BTCEUR",
		OrderID: 777,
		Status:  binance.OrderStatusTypeFilled,
		Fills: []*binance.Fill{
			{Price: "100", Quantity: "1", Commission: "0.1"},
			{Price: "200", Quantity: "3", Commission: "0.3"},
		},
	}

	provider := newBinanceProviderWithClient(mockClient)
	fill, err := provider.MarketSell(context.Background(), "BTCEUR", 4)
	suite.Require().NoError(err)

	suite.Equal(binance.SideTypeSell, mockClient.createOrderService.side)
	suite.Equal(types.PurchaseTypeSell, fill.Side)
	suite.InDelta(175.0, fill.Price, 1e-9)
	suite.InDelta(4.0, fill.Quantity, 1e-9)
	suite.InDelta(0.4, fill.Commission, 1e-9)
}

func (suite *BinanceProviderTestSuite) TestMarketBuy_NotFilled() {
	mockClient := newMockBinanceClient()
	mockClient.createOrderService.response = &binance.CreateOrderResponse{
		OrderID: 1,
		Status:  binance.OrderStatusTypeExpired,
	}

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.MarketBuy(context.Background(), "BTCEUR", 0.0012)
	suite.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
}

func (suite *BinanceProviderTestSuite) TestMarketBuy_APIError() {
	mockClient := newMockBinanceClient()
	mockClient.createOrderService.err = &common.APIError{Code: -2010, Message: "Account has insufficient balance for requested action."}

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.MarketBuy(context.Background(), "BTCEUR", 0.0012)
	suite.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
	suite.False(errors.IsFatal(err))
}

func (suite *BinanceProviderTestSuite) TestMarketBuy_QuantityTooSmall() {
	mockClient := newMockBinanceClient()

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.MarketBuy(context.Background(), "BTCEUR", 0.000000001)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
	suite.False(mockClient.createOrderService.called)
}

func (suite *BinanceProviderTestSuite) TestMarketBuy_InvalidQuantity() {
	mockClient := newMockBinanceClient()

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.MarketBuy(context.Background(), "BTCEUR", 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidOrder))
	suite.False(mockClient.createOrderService.called)
}

func (suite *BinanceProviderTestSuite) TestGetFreeBalance() {
	mockClient := newMockBinanceClient()
	mockClient.getAccountService.account = &binance.Account{
		Balances: []binance.Balance{
			{Asset: "BTC", Free: "0.50000000", Locked: "0.10000000"},
			{Asset: "EUR", Free: "1234.50", Locked: "0"},
		},
	}

	provider := newBinanceProviderWithClient(mockClient)

	btc, err := provider.GetFreeBalance(context.Background(), "BTC")
	suite.Require().NoError(err)
	suite.Equal(0.5, btc)

	eur, err := provider.GetFreeBalance(context.Background(), "EUR")
	suite.Require().NoError(err)
	suite.Equal(1234.5, eur)

	eth, err := provider.GetFreeBalance(context.Background(), "ETH")
	suite.Require().NoError(err)
	suite.Equal(0.0, eth)
}

func (suite *BinanceProviderTestSuite) TestGetFreeBalance_APIError() {
	mockClient := newMockBinanceClient()
	mockClient.getAccountService.err = stderrors.New("boom")

	provider := newBinanceProviderWithClient(mockClient)
	_, err := provider.GetFreeBalance(context.Background(), "BTC")
	suite.True(errors.HasCode(err, errors.ErrCodeBalanceQueryFailed))
}

func (suite *BinanceProviderTestSuite) TestRoundToDecimalPrecision() {
	suite.Equal(0.0012, roundToDecimalPrecision(0.0012, 8))
	suite.Equal(0.00000001, roundToDecimalPrecision(0.000000019, 8))
	suite.Equal(0.0, roundToDecimalPrecision(0.000000009, 8))
	suite.Equal(1.23, roundToDecimalPrecision(1.239, 2))
}
