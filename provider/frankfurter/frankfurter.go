// Package frankfurter provides USD spot rates from the Frankfurter API.
//
// Source: "Frankfurter"
// API: https://api.frankfurter.dev/v1/latest
// Interval: 10 minutes
//
// Fetches USD rates against all tracked destination currencies in a
// single request. The effective date (AsOf) is the reference date
// reported by the API.
package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smartransfer/routes/provider/currencies"
	"github.com/smartransfer/routes/storage/types"
)

var Source types.Source = "Frankfurter"

const defaultURL = "https://api.frankfurter.dev/v1/latest"

// apiResponse is the response from the Frankfurter latest-rates endpoint
type apiResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Provider fetches USD spot rates from the Frankfurter API
type Provider struct {
	client  *http.Client
	url     string
	targets []types.Currency
}

// NewProvider creates a new instance of the Frankfurter provider
func NewProvider(timeout time.Duration) *Provider {
	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		url:     defaultURL,
		targets: currencies.Destinations,
	}
}

func (p *Provider) Name() string {
	return "Frankfurter"
}

func (p *Provider) Interval() time.Duration {
	return time.Minute * 10
}

func (p *Provider) Fetch(ctx context.Context) ([]*types.RateSnapshot, error) {
	symbols := make([]string, 0, len(p.targets))
	for _, target := range p.targets {
		symbols = append(symbols, target.String())
	}

	query := url.Values{
		"base":    []string{currencies.USD.String()},
		"symbols": []string{strings.Join(symbols, ",")},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		p.url+"?"+query.Encode(),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("unable to decode response: %w", err)
	}

	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("no rates returned for base %s", apiResp.Base)
	}

	var (
		fetchTime     = time.Now().UTC()
		effectiveDate = fetchTime
	)

	// The API reports the reference date the rates apply to
	if parsed, err := time.Parse("2006-01-02", apiResp.Date); err == nil {
		effectiveDate = parsed.UTC()
	}

	snapshots := make([]*types.RateSnapshot, 0, len(p.targets))

	for _, target := range p.targets {
		rate, ok := apiResp.Rates[target.String()]
		if !ok || rate <= 0 {
			continue
		}

		snapshots = append(snapshots, &types.RateSnapshot{
			AsOf:      effectiveDate,
			FetchedAt: fetchTime,
			Base:      currencies.USD,
			Target:    target,
			Kind:      types.KindSpot,
			Source:    Source,
			Rate:      rate,
		})
	}

	return snapshots, nil
}
