package storage

import (
	"context"
	"time"

	"github.com/smartransfer/routes/storage/types"
)

// Storage is an abstraction over observed rate snapshot data
type Storage interface {
	// SaveRate saves the given rate snapshot
	SaveRate(context.Context, *types.RateSnapshot) error

	// LatestRate fetches the freshest matching snapshots as of the given time
	LatestRate(context.Context, *types.RateQuery, time.Time) (*types.Page[*types.RateSnapshot], error)

	// RatesInRange fetches all matching snapshots observed within [from, to]
	RatesInRange(context.Context, *types.RateQuery, time.Time, time.Time) (*types.Page[*types.RateSnapshot], error)

	// ListSources lists all present snapshot sources
	ListSources(context.Context) ([]types.Source, error)

	// ListCurrencies lists all currencies present
	ListCurrencies(context.Context) ([]types.Currency, error)
}
