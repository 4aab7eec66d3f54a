// Package xrates provides a fallback USD spot rate source, scraped
// from the x-rates.com comparison table. It runs on a slower cadence
// than the primary API provider and exists so the quote engine still
// has spot data when the API source is down.
package xrates

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/smartransfer/routes/provider/currencies"
	"github.com/smartransfer/routes/storage/types"
)

var errInvalidRate = errors.New("invalid rate")

var Source types.Source = "X-Rates"

const defaultURL = "https://www.x-rates.com/table/?from=USD&amount=1"

// Provider is the x-rates.com table scraping provider
type Provider struct {
	client  *http.Client
	url     string
	targets map[types.Currency]struct{}
}

// NewProvider creates a new instance of the x-rates.com provider
func NewProvider(timeout time.Duration) *Provider {
	targets := make(map[types.Currency]struct{}, len(currencies.Destinations))
	for _, target := range currencies.Destinations {
		targets[target] = struct{}{}
	}

	return &Provider{
		client: &http.Client{
			Timeout: timeout,
		},
		url:     defaultURL,
		targets: targets,
	}
}

func (p *Provider) Name() string {
	return "X-Rates"
}

func (p *Provider) Interval() time.Duration {
	return time.Hour
}

func (p *Provider) Fetch(ctx context.Context) ([]*types.RateSnapshot, error) {
	// Prepare the request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	// Execute the request
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	// Construct document for parsing
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to construct query doc: %w", err)
	}

	var (
		fetchTime = time.Now().UTC()
		snapshots = make([]*types.RateSnapshot, 0, len(p.targets))
		seen      = make(map[types.Currency]struct{}, len(p.targets))
	)

	// Each table row links to the USD -> target conversion page, with
	// the anchor text holding the rate value
	doc.Find("table.ratesTable tbody tr td a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}

		target, ok := parseTargetCurrency(href)
		if !ok {
			return
		}

		if _, tracked := p.targets[target]; !tracked {
			return
		}

		if _, dup := seen[target]; dup {
			return // keep the first (USD -> target) cell only
		}

		rate, err := parseRateNumber(sel.Text())
		if err != nil {
			return
		}

		seen[target] = struct{}{}

		snapshots = append(snapshots, &types.RateSnapshot{
			AsOf:      fetchTime,
			FetchedAt: fetchTime,
			Base:      currencies.USD,
			Target:    target,
			Kind:      types.KindSpot,
			Source:    Source,
			Rate:      rate,
		})
	})

	if len(snapshots) == 0 {
		return nil, errors.New("no tracked rates found in table")
	}

	return snapshots, nil
}

// parseTargetCurrency extracts the target currency from the conversion
// page link, e.g. "/graph/?from=USD&to=INR"
func parseTargetCurrency(href string) (types.Currency, bool) {
	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	query := parsed.Query()

	if !strings.EqualFold(query.Get("from"), currencies.USD.String()) {
		return "", false
	}

	target := strings.ToUpper(strings.TrimSpace(query.Get("to")))
	if len(target) != 3 {
		return "", false
	}

	return types.Currency(target), true
}

// parseRateNumber parses the rate value from the table cell
func parseRateNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errInvalidRate
	}

	// The table uses comma as the thousands separator: "1,234.567890"
	s = strings.ReplaceAll(s, ",", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse rate %q: %w", s, err)
	}

	if f <= 0 {
		return 0, errInvalidRate
	}

	return math.Round(f*1e6) / 1e6, nil
}
