package sql

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartransfer/routes/storage/types"
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		pool: pool,
	}
}

func (s *Storage) SaveRate(
	ctx context.Context,
	rate *types.RateSnapshot,
) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO rate_snapshots (base, target, rate, kind, source, as_of, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (base, target, kind, source, as_of) DO UPDATE
		 SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at`,
		rate.Base.String(),
		rate.Target.String(),
		floatToNumeric(rate.Rate),
		rate.Kind.String(),
		rate.Source.String(),
		timeToTimestampz(rate.AsOf),
		timeToTimestampz(rate.FetchedAt),
	)
	if err != nil {
		return fmt.Errorf("unable to save rate snapshot: %w", err)
	}

	return nil
}

func (s *Storage) LatestRate(
	ctx context.Context,
	query *types.RateQuery,
	t time.Time,
) (*types.Page[*types.RateSnapshot], error) {
	var (
		target, source, kind *string

		limit  = query.Limit
		offset = query.Offset
	)

	if query.Target != nil {
		v := query.Target.String()
		target = &v
	}

	if query.Source != nil {
		v := query.Source.String()
		source = &v
	}

	if query.Kind != nil {
		v := query.Kind.String()
		kind = &v
	}

	if limit == 0 {
		limit = 100
	}

	if limit > 500 {
		limit = 500
	}

	rows, err := s.pool.Query(ctx,
		`SELECT base, target, rate, kind, source, as_of, fetched_at, COUNT(*) OVER() AS total
		 FROM (
		     SELECT DISTINCT ON (target, source, kind)
		            base, target, rate, kind, source, as_of, fetched_at
		     FROM rate_snapshots
		     WHERE base = $1
		       AND ($2::TEXT IS NULL OR target = $2)
		       AND ($3::TEXT IS NULL OR source = $3)
		       AND ($4::TEXT IS NULL OR kind = $4)
		       AND as_of <= $5
		     ORDER BY target, source, kind, as_of DESC, fetched_at DESC
		 ) latest
		 ORDER BY target, source, kind
		 LIMIT $6 OFFSET $7`,
		query.Base.String(),
		target,
		source,
		kind,
		timeToTimestampz(t),
		limit,
		offset,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &types.Page[*types.RateSnapshot]{
				Results: nil,
				Total:   0,
			}, nil // valid case
		}

		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}
	defer rows.Close()

	var (
		items []*types.RateSnapshot
		total int64
	)

	for rows.Next() {
		var (
			base, tgt, k, src string
			rate              pgtype.Numeric
			asOf, fetchedAt   pgtype.Timestamptz
		)

		if err := rows.Scan(&base, &tgt, &rate, &k, &src, &asOf, &fetchedAt, &total); err != nil {
			return nil, fmt.Errorf("unable to scan rate row: %w", err)
		}

		items = append(items, &types.RateSnapshot{
			AsOf:      timestampzToTime(asOf),
			FetchedAt: timestampzToTime(fetchedAt),
			Base:      types.Currency(base),
			Target:    types.Currency(tgt),
			Kind:      types.Kind(k),
			Source:    types.Source(src),
			Rate:      numericToFloat(rate),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}

	return &types.Page[*types.RateSnapshot]{
		Results: items,
		Total:   total,
	}, nil
}

func (s *Storage) RatesInRange(
	ctx context.Context,
	query *types.RateQuery,
	from time.Time,
	to time.Time,
) (*types.Page[*types.RateSnapshot], error) {
	var (
		target, source, kind *string

		limit  = query.Limit
		offset = query.Offset
	)

	if query.Target != nil {
		v := query.Target.String()
		target = &v
	}

	if query.Source != nil {
		v := query.Source.String()
		source = &v
	}

	if query.Kind != nil {
		v := query.Kind.String()
		kind = &v
	}

	if limit == 0 {
		limit = 100
	}

	if limit > 500 {
		limit = 500
	}

	rows, err := s.pool.Query(ctx,
		`SELECT base, target, rate, kind, source, as_of, fetched_at, COUNT(*) OVER() AS total
		 FROM rate_snapshots
		 WHERE base = $1
		   AND ($2::TEXT IS NULL OR target = $2)
		   AND ($3::TEXT IS NULL OR source = $3)
		   AND ($4::TEXT IS NULL OR kind = $4)
		   AND as_of >= $5
		   AND as_of <= $6
		 ORDER BY as_of, target, source
		 LIMIT $7 OFFSET $8`,
		query.Base.String(),
		target,
		source,
		kind,
		timeToTimestampz(from),
		timeToTimestampz(to),
		limit,
		offset,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &types.Page[*types.RateSnapshot]{
				Results: nil,
				Total:   0,
			}, nil // valid case
		}

		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}
	defer rows.Close()

	var (
		items []*types.RateSnapshot
		total int64
	)

	for rows.Next() {
		var (
			base, tgt, k, src string
			rate              pgtype.Numeric
			asOf, fetchedAt   pgtype.Timestamptz
		)

		if err := rows.Scan(&base, &tgt, &rate, &k, &src, &asOf, &fetchedAt, &total); err != nil {
			return nil, fmt.Errorf("unable to scan rate row: %w", err)
		}

		items = append(items, &types.RateSnapshot{
			AsOf:      timestampzToTime(asOf),
			FetchedAt: timestampzToTime(fetchedAt),
			Base:      types.Currency(base),
			Target:    types.Currency(tgt),
			Kind:      types.Kind(k),
			Source:    types.Source(src),
			Rate:      numericToFloat(rate),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}

	return &types.Page[*types.RateSnapshot]{
		Results: items,
		Total:   total,
	}, nil
}

func (s *Storage) ListSources(ctx context.Context) ([]types.Source, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT source FROM rate_snapshots ORDER BY source`,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // valid case
		}

		return nil, fmt.Errorf("unable to fetch sources: %w", err)
	}
	defer rows.Close()

	var out []types.Source

	for rows.Next() {
		var src string

		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("unable to scan source: %w", err)
		}

		out = append(out, types.Source(src))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to fetch sources: %w", err)
	}

	return out, nil
}

func (s *Storage) ListCurrencies(ctx context.Context) ([]types.Currency, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code FROM (
		     SELECT base AS code FROM rate_snapshots
		     UNION
		     SELECT target AS code FROM rate_snapshots
		 ) codes
		 ORDER BY code`,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil //nolint:nilnil // valid case
		}

		return nil, fmt.Errorf("unable to fetch currencies: %w", err)
	}
	defer rows.Close()

	var out []types.Currency

	for rows.Next() {
		var code string

		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("unable to scan currency: %w", err)
		}

		out = append(out, types.Currency(code))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to fetch currencies: %w", err)
	}

	return out, nil
}

// floatToNumeric converts the float value to postgres numeric
func floatToNumeric(value float64) pgtype.Numeric {
	// round to 8dp and store as integer with exponent -8
	i := int64(math.Round(value * 1e8))

	return pgtype.Numeric{
		Int:   big.NewInt(i),
		Exp:   -8,
		Valid: true,
	}
}

// numericToFloat converts the postgres value to float
func numericToFloat(value pgtype.Numeric) float64 {
	if !value.Valid || value.Int == nil {
		return 0
	}

	f, _ := new(big.Rat).SetInt(value.Int).Float64()

	if value.Exp > 0 {
		f *= math.Pow10(int(value.Exp))
	} else if value.Exp < 0 {
		f /= math.Pow10(int(-value.Exp))
	}

	return f
}

// timeToTimestampz converts the time value to postgres timestamp
func timeToTimestampz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:  t.UTC(),
		Valid: true,
	}
}

// timestampzToTime converts the postgres timestamp value to time
func timestampzToTime(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}

	return ts.Time
}
