package tradingprovider

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/crossover-trader/internal/types"
	"github.com/rxtech-lab/crossover-trader/pkg/schema"
)

// MarketDataFeed supplies candles and the latest traded price.
type MarketDataFeed interface {
	// GetCandles returns up to limit candles for symbol and interval, oldest first
	GetCandles(ctx context.Context, symbol string, interval string, limit int) ([]types.Candle, error)
	// LatestPrice returns the latest traded price for symbol
	LatestPrice(ctx context.Context, symbol string) (float64, error)
}

// OrderExecutor submits market orders and reports their fills.
// A non-nil error means the order must be treated as not executed.
type OrderExecutor interface {
	MarketBuy(ctx context.Context, symbol string, quantity float64) (types.Fill, error)
	MarketSell(ctx context.Context, symbol string, quantity float64) (types.Fill, error)
}

// AccountQuery reads account balances.
type AccountQuery interface {
	// GetFreeBalance returns the free (unlocked) balance of asset
	GetFreeBalance(ctx context.Context, asset string) (float64, error)
}

// Exchange bundles every collaborator a provider offers.
type Exchange interface {
	MarketDataFeed
	OrderExecutor
	AccountQuery
	// Ping verifies connectivity and credentials, synchronizing the clock offset
	Ping(ctx context.Context) error
}

// SymbolRegistrar is implemented by exchanges that must be told how a symbol
// splits into base and quote assets.
type SymbolRegistrar interface {
	RegisterSymbol(symbol, baseAsset, quoteAsset string)
}

type ProviderType string

const (
	ProviderBinancePaper ProviderType = "binance-paper"
	ProviderBinanceLive  ProviderType = "binance-live"
	ProviderSimulated    ProviderType = "simulated"
)

type ProviderInfo struct {
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	IsPaperTrading bool   `json:"isPaperTrading"`
}

var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderBinancePaper: {
		Name:           string(ProviderBinancePaper),
		DisplayName:    "Binance Testnet",
		Description:    "Binance testnet for paper trading cryptocurrency without real funds",
		IsPaperTrading: true,
	},
	ProviderBinanceLive: {
		Name:           string(ProviderBinanceLive),
		DisplayName:    "Binance Live",
		Description:    "Binance live environment for real-funds cryptocurrency trading",
		IsPaperTrading: false,
	},
	ProviderSimulated: {
		Name:           string(ProviderSimulated),
		DisplayName:    "Simulated",
		Description:    "Live Binance market data with orders filled locally against in-memory balances",
		IsPaperTrading: true,
	},
}

func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	return providers
}

// GetProviderInfo returns metadata for a specific trading provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, fmt.Errorf("unsupported trading provider: %s", providerName)
	}

	return info, nil
}

// GetProviderConfigSchema returns the JSON schema for a provider's configuration.
func GetProviderConfigSchema(providerName string) (string, error) {
	switch ProviderType(providerName) {
	case ProviderBinancePaper, ProviderBinanceLive:
		return schema.ToJSONSchema(BinanceProviderConfig{
			ApiKey:    "",
			SecretKey: "",
		})
	case ProviderSimulated:
		return schema.ToJSONSchema(SimulatedProviderConfig{
			ApiKey:         "",
			SecretKey:      "",
			InitialBalance: map[string]float64{},
		})
	default:
		return "", fmt.Errorf("unsupported trading provider: %s", providerName)
	}
}

// ParseProviderConfig parses a JSON configuration string for the given provider.
func ParseProviderConfig(providerName string, jsonConfig string) (any, error) {
	switch ProviderType(providerName) {
	case ProviderBinancePaper, ProviderBinanceLive:
		return parseBinanceConfig(jsonConfig)
	case ProviderSimulated:
		return parseSimulatedConfig(jsonConfig)
	default:
		return nil, fmt.Errorf("unsupported trading provider: %s", providerName)
	}
}

// NewExchange creates the exchange for the provider type.
func NewExchange(providerType ProviderType, config any) (Exchange, error) {
	switch providerType {
	case ProviderBinancePaper:
		cfg, ok := config.(*BinanceProviderConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config type for binance paper provider")
		}

		provider, err := NewBinanceProvider(*cfg, true) // useTestnet=true
		if err != nil {
			return nil, err
		}

		return provider, nil

	case ProviderBinanceLive:
		cfg, ok := config.(*BinanceProviderConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config type for binance live provider")
		}

		provider, err := NewBinanceProvider(*cfg, false) // useTestnet=false
		if err != nil {
			return nil, err
		}

		return provider, nil

	case ProviderSimulated:
		cfg, ok := config.(*SimulatedProviderConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config type for simulated provider")
		}

		feed, err := NewBinanceProvider(BinanceProviderConfig{ApiKey: cfg.ApiKey, SecretKey: cfg.SecretKey}, false)
		if err != nil {
			return nil, err
		}

		return NewSimulatedExchange(feed, cfg.InitialBalance), nil

	default:
		return nil, fmt.Errorf("unsupported trading provider: %s", providerType)
	}
}
