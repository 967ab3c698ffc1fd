package tradingprovider

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/crossover-trader/pkg/errors"
)

// BinanceProviderConfig contains configuration for Binance trading.
type BinanceProviderConfig struct {
	ApiKey    string `json:"apiKey" jsonschema:"title=API Key,description=Binance API key" validate:"required"`
	SecretKey string `json:"secretKey" jsonschema:"title=Secret Key,description=Binance API secret key" validate:"required"`
}

// Validate validates the BinanceProviderConfig struct.
func (c *BinanceProviderConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance provider config", err)
	}

	return nil
}

// parseBinanceConfig parses a JSON configuration string into a BinanceProviderConfig.
func parseBinanceConfig(jsonConfig string) (*BinanceProviderConfig, error) {
	var config BinanceProviderConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse binance config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// SimulatedProviderConfig configures the simulated exchange. Credentials are optional
// because only public market data endpoints are used.
type SimulatedProviderConfig struct {
	ApiKey         string             `json:"apiKey,omitempty" jsonschema:"title=API Key,description=Optional Binance API key for market data"`
	SecretKey      string             `json:"secretKey,omitempty" jsonschema:"title=Secret Key,description=Optional Binance API secret key"`
	InitialBalance map[string]float64 `json:"initialBalance" jsonschema:"title=Initial Balance,description=Free balance per asset" validate:"required,min=1,dive,gte=0"`
}

// Validate validates the SimulatedProviderConfig struct.
func (c *SimulatedProviderConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid simulated provider config", err)
	}

	return nil
}

func parseSimulatedConfig(jsonConfig string) (*SimulatedProviderConfig, error) {
	var config SimulatedProviderConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse simulated config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
