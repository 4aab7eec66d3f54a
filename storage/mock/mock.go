package mock

import (
	"context"
	"time"

	"github.com/smartransfer/routes/storage/types"
)

type (
	SaveRateDelegate       func(context.Context, *types.RateSnapshot) error
	LatestRateDelegate     func(context.Context, *types.RateQuery, time.Time) (*types.Page[*types.RateSnapshot], error)
	RatesInRangeDelegate   func(context.Context, *types.RateQuery, time.Time, time.Time) (*types.Page[*types.RateSnapshot], error)
	ListSourcesDelegate    func(context.Context) ([]types.Source, error)
	ListCurrenciesDelegate func(context.Context) ([]types.Currency, error)
)

type Storage struct {
	SaveRateFn       SaveRateDelegate
	LatestRateFn     LatestRateDelegate
	RatesInRangeFn   RatesInRangeDelegate
	ListSourcesFn    ListSourcesDelegate
	ListCurrenciesFn ListCurrenciesDelegate
}

func (m *Storage) SaveRate(ctx context.Context, snapshot *types.RateSnapshot) error {
	if m.SaveRateFn != nil {
		return m.SaveRateFn(ctx, snapshot)
	}

	return nil
}

func (m *Storage) LatestRate(
	ctx context.Context,
	query *types.RateQuery,
	at time.Time,
) (*types.Page[*types.RateSnapshot], error) {
	if m.LatestRateFn != nil {
		return m.LatestRateFn(ctx, query, at)
	}

	return nil, nil
}

func (m *Storage) RatesInRange(
	ctx context.Context,
	query *types.RateQuery,
	from time.Time,
	to time.Time,
) (*types.Page[*types.RateSnapshot], error) {
	if m.RatesInRangeFn != nil {
		return m.RatesInRangeFn(ctx, query, from, to)
	}

	return nil, nil
}

func (m *Storage) ListSources(ctx context.Context) ([]types.Source, error) {
	if m.ListSourcesFn != nil {
		return m.ListSourcesFn(ctx)
	}

	return nil, nil
}

func (m *Storage) ListCurrencies(ctx context.Context) ([]types.Currency, error) {
	if m.ListCurrenciesFn != nil {
		return m.ListCurrenciesFn(ctx)
	}

	return nil, nil
}
