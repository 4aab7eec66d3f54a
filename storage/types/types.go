package types

import "time"

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyETH Currency = "ETH"
)

func (c Currency) String() string {
	return string(c)
}

// Kind distinguishes what a snapshot measures: a currency pair spot
// rate, or a live network gas fee expressed in USD
type Kind string

const (
	KindSpot Kind = "SPOT"
	KindGas  Kind = "GAS"
)

func (k Kind) String() string {
	return string(k)
}

type Source string

func (s Source) String() string {
	return string(s)
}

// RateSnapshot is a single observed rate data point
type RateSnapshot struct {
	AsOf      time.Time `json:"as_of"`
	FetchedAt time.Time `json:"fetched_at"`
	Base      Currency  `json:"base"`
	Target    Currency  `json:"target"`
	Kind      Kind      `json:"kind"`
	Source    Source    `json:"source"`
	Rate      float64   `json:"rate"`
}

type RateQuery struct {
	Target *Currency `json:"target"`
	Kind   *Kind     `json:"kind"`
	Source *Source   `json:"source"`
	Base   Currency  `json:"base"`
	Offset int64     `json:"offset"`
	Limit  int32     `json:"limit"`
}

// Page wraps the results for pagination
type Page[T any] struct {
	Results []T   `json:"results"`
	Total   int64 `json:"total"`
}
