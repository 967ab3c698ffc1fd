package tradingprovider

import (
	"context"

	"github.com/adshao/go-binance/v2"
)

// Service interfaces for mocking the Binance API

// CreateOrderService interface for creating orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	NewClientOrderID(newClientOrderID string) CreateOrderService
	NewOrderRespType(newOrderRespType binance.NewOrderRespType) CreateOrderService
	Do(ctx context.Context) (*binance.CreateOrderResponse, error)
}

// GetAccountService interface for getting account info.
type GetAccountService interface {
	Do(ctx context.Context) (*binance.Account, error)
}

// KlinesService interface for fetching candles.
type KlinesService interface {
	Symbol(symbol string) KlinesService
	Interval(interval string) KlinesService
	Limit(limit int) KlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// ListPricesService interface for fetching the latest ticker price.
type ListPricesService interface {
	Symbol(symbol string) ListPricesService
	Do(ctx context.Context) ([]*binance.SymbolPrice, error)
}

// SetServerTimeService interface for synchronizing the local clock offset with the exchange.
type SetServerTimeService interface {
	Do(ctx context.Context) (int64, error)
}

// BinanceClient interface abstracts the Binance client for testing.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetAccountService() GetAccountService
	NewKlinesService() KlinesService
	NewListPricesService() ListPricesService
	NewSetServerTimeService() SetServerTimeService
}

// realBinanceClient wraps the actual binance.Client.
type realBinanceClient struct {
	client *binance.Client
}

func (r *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceClient) NewGetAccountService() GetAccountService {
	return &realGetAccountService{service: r.client.NewGetAccountService()}
}

func (r *realBinanceClient) NewKlinesService() KlinesService {
	return &realKlinesService{service: r.client.NewKlinesService()}
}

func (r *realBinanceClient) NewListPricesService() ListPricesService {
	return &realListPricesService{service: r.client.NewListPricesService()}
}

func (r *realBinanceClient) NewSetServerTimeService() SetServerTimeService {
	return &realSetServerTimeService{service: r.client.NewSetServerTimeService()}
}

// Real service wrappers

type realCreateOrderService struct {
	service *binance.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) NewClientOrderID(newClientOrderID string) CreateOrderService {
	s.service = s.service.NewClientOrderID(newClientOrderID)

	return s
}

func (s *realCreateOrderService) NewOrderRespType(newOrderRespType binance.NewOrderRespType) CreateOrderService {
	s.service = s.service.NewOrderRespType(newOrderRespType)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*binance.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetAccountService struct {
	service *binance.GetAccountService
}

func (s *realGetAccountService) Do(ctx context.Context) (*binance.Account, error) {
	return s.service.Do(ctx)
}

type realKlinesService struct {
	service *binance.KlinesService
}

func (s *realKlinesService) Symbol(symbol string) KlinesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realKlinesService) Interval(interval string) KlinesService {
	s.service = s.service.Interval(interval)

	return s
}

func (s *realKlinesService) Limit(limit int) KlinesService {
	s.service = s.service.Limit(limit)

	return s
}

func (s *realKlinesService) Do(ctx context.Context) ([]*binance.Kline, error) {
	return s.service.Do(ctx)
}

type realListPricesService struct {
	service *binance.ListPricesService
}

func (s *realListPricesService) Symbol(symbol string) ListPricesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realListPricesService) Do(ctx context.Context) ([]*binance.SymbolPrice, error) {
	return s.service.Do(ctx)
}

type realSetServerTimeService struct {
	service *binance.SetServerTimeService
}

func (s *realSetServerTimeService) Do(ctx context.Context) (int64, error) {
	return s.service.Do(ctx)
}
