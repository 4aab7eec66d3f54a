package ethgas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/smartransfer/routes/provider/currencies"
	"github.com/smartransfer/routes/storage/types"
)

var errInvalidPrice = errors.New("invalid price")

var Source types.Source = "EthGas"

const (
	defaultOracleURL = "https://api.etherscan.io/api?module=gastracker&action=gasoracle"
	defaultSpotURL   = "https://api.coinbase.com/v2/prices/ETH-USD/spot"

	// transferGasLimit is a typical upper bound for an ERC-20 transfer
	transferGasLimit = 65_000
)

// oracleResponse is the response from the Etherscan-style gas oracle
type oracleResponse struct {
	Status string `json:"status"`
	Result struct {
		ProposeGasPrice string `json:"ProposeGasPrice"`
	} `json:"result"`
}

// spotResponse is the response from the Coinbase spot price API
type spotResponse struct {
	Data struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// Provider estimates the USD cost of an ERC-20 transfer at current gas prices
type Provider struct {
	client    *http.Client
	oracleURL string
	spotURL   string
}

// NewProvider creates a new instance of the gas fee provider
func NewProvider(timeout time.Duration) *Provider {
	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		oracleURL: defaultOracleURL,
		spotURL:   defaultSpotURL,
	}
}

func (p *Provider) Name() string {
	return "Ethereum Gas"
}

func (p *Provider) Interval() time.Duration {
	return time.Minute * 5
}

func (p *Provider) Fetch(ctx context.Context) ([]*types.RateSnapshot, error) {
	// Fetch the proposed gas price
	gasPriceGwei, err := p.fetchGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch gas price: %w", err)
	}

	// Fetch the ETH spot price
	ethUSD, err := p.fetchSpotPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch ETH spot price: %w", err)
	}

	var (
		fetchTime = time.Now().UTC()
		feeUSD    = gasPriceGwei * 1e-9 * transferGasLimit * ethUSD
	)

	return []*types.RateSnapshot{
		{
			AsOf:      fetchTime,
			FetchedAt: fetchTime,
			Base:      currencies.ETH,
			Target:    currencies.USD,
			Kind:      types.KindGas,
			Source:    Source,
			Rate:      math.Round(feeUSD*1e4) / 1e4,
		},
	}, nil
}

// fetchGasPrice fetches the proposed gas price, in gwei
func (p *Provider) fetchGasPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.oracleURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("unable to create new GET request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var oracleResp oracleResponse
	if err := json.NewDecoder(resp.Body).Decode(&oracleResp); err != nil {
		return 0, fmt.Errorf("unable to decode response: %w", err)
	}

	if oracleResp.Status != "1" {
		return 0, fmt.Errorf("oracle returned status %q", oracleResp.Status)
	}

	return parsePositiveFloat(oracleResp.Result.ProposeGasPrice)
}

// fetchSpotPrice fetches the current ETH/USD spot price
func (p *Provider) fetchSpotPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.spotURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("unable to create new GET request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var spotResp spotResponse
	if err := json.NewDecoder(resp.Body).Decode(&spotResp); err != nil {
		return 0, fmt.Errorf("unable to decode response: %w", err)
	}

	return parsePositiveFloat(spotResp.Data.Amount)
}

// parsePositiveFloat parses a strictly positive float value
func parsePositiveFloat(value string) (float64, error) {
	if value == "" {
		return 0, errInvalidPrice
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse value %q: %w", value, err)
	}

	if parsed <= 0 {
		return 0, errInvalidPrice
	}

	return parsed, nil
}
