package server

import (
	"time"

	"github.com/smartransfer/routes/catalog"
	"github.com/smartransfer/routes/engine"
	"github.com/smartransfer/routes/storage/types"
)

// QuoteRequest is a single transfer evaluation request
type QuoteRequest struct {
	Amount         float64 `json:"amount"`
	OriginCurrency string  `json:"origin_currency"`
	DestCurrency   string  `json:"dest_currency"`
	DeliveryMode   string  `json:"delivery_mode"`
	RiskTolerance  string  `json:"risk_tolerance"`

	// SpotRateOverride replaces the stored USD -> destination spot
	// rate, when set
	SpotRateOverride *float64 `json:"spot_rate_override"`

	// IsWeekend overrides the server-side weekend determination,
	// when set
	IsWeekend *bool `json:"is_weekend"`

	// SortBy optionally orders the returned quotes ("score", "cost", "time")
	SortBy string `json:"sort_by"`
}

// QuoteResponse is the evaluated route set for a single request
type QuoteResponse struct {
	Quotes  []*engine.Quote `json:"quotes"`
	Winners engine.Winners  `json:"winners"`

	AmountUSD float64 `json:"amount_usd"`

	SpotRate   float64   `json:"spot_rate"`
	SpotSource string    `json:"spot_source"`
	SpotAsOf   time.Time `json:"spot_as_of"`

	// GasFeeUSD is the live gas fee applied to crypto routes, if any
	GasFeeUSD *float64 `json:"gas_fee_usd"`
}

// ReviewResponse is the advisor's take on the best-scoring route
type ReviewResponse struct {
	Review string        `json:"review"`
	Quote  *engine.Quote `json:"quote"`
}

type ProvidersResponse struct {
	Results []*engine.Provider `json:"results"`
}

type CurrenciesResponse struct {
	Origins      []catalog.CurrencyInfo `json:"origins"`
	Destinations []catalog.CurrencyInfo `json:"destinations"`
}

// SourcesResponse describes the observed rate coverage in storage
type SourcesResponse struct {
	Sources    []types.Source   `json:"sources"`
	Currencies []types.Currency `json:"currencies"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
