package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/smartransfer/routes/storage/types"
)

type key struct {
	base, target, source, kind string
	asOf                       int64 // unix nanos
}

type Storage struct {
	data map[key]types.RateSnapshot

	mu sync.RWMutex
}

func NewStorage() *Storage {
	return &Storage{
		data: make(map[key]types.RateSnapshot),
	}
}

func (s *Storage) SaveRate(_ context.Context, r *types.RateSnapshot) error {
	k := key{
		base:   r.Base.String(),
		target: r.Target.String(),
		source: r.Source.String(),
		kind:   r.Kind.String(),
		asOf:   r.AsOf.UTC().UnixNano(),
	}

	elem := *r
	elem.AsOf = elem.AsOf.UTC()
	elem.FetchedAt = elem.FetchedAt.UTC()

	s.mu.Lock()
	s.data[k] = elem // key is unique
	s.mu.Unlock()

	return nil
}

func (s *Storage) LatestRate(
	_ context.Context,
	query *types.RateQuery,
	asOf time.Time,
) (*types.Page[*types.RateSnapshot], error) {
	cutoff := asOf.UTC()
	base := query.Base.String()

	var (
		target, source, kind          string
		hasTarget, hasSource, hasKind bool
	)

	if query.Target != nil {
		target = query.Target.String()
		hasTarget = true
	}

	if query.Source != nil {
		source = query.Source.String()
		hasSource = true
	}

	if query.Kind != nil {
		kind = query.Kind.String()
		hasKind = true
	}

	type bucket struct {
		target, source, kind string
	}

	s.mu.RLock()

	bestByBucket := make(map[bucket]types.RateSnapshot)

	for _, v := range s.data {
		if v.Base.String() != base {
			continue
		}

		if hasTarget && v.Target.String() != target {
			continue
		}

		if hasSource && v.Source.String() != source {
			continue
		}

		if hasKind && v.Kind.String() != kind {
			continue
		}

		if v.AsOf.After(cutoff) {
			continue
		}

		b := bucket{
			target: v.Target.String(),
			source: v.Source.String(),
			kind:   v.Kind.String(),
		}

		cur, ok := bestByBucket[b]
		if !ok ||
			v.AsOf.After(cur.AsOf) ||
			(v.AsOf.Equal(cur.AsOf) && v.FetchedAt.After(cur.FetchedAt)) {
			bestByBucket[b] = v
		}
	}

	s.mu.RUnlock()

	out := make([]*types.RateSnapshot, 0, len(bestByBucket))
	for _, v := range bestByBucket {
		cp := v
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Target != out[j].Target {
			return out[i].Target.String() < out[j].Target.String()
		}

		if out[i].Source != out[j].Source {
			return out[i].Source.String() < out[j].Source.String()
		}

		return out[i].Kind.String() < out[j].Kind.String()
	})

	total := int64(len(out))
	if total == 0 {
		return &types.Page[*types.RateSnapshot]{
			Results: nil,
			Total:   0,
		}, nil
	}

	lim := query.Limit
	if lim == 0 {
		lim = 100
	}

	if lim > 500 {
		lim = 500
	}

	off := query.Offset
	if off > total {
		return &types.Page[*types.RateSnapshot]{
			Results: nil,
			Total:   total,
		}, nil
	}

	start := int(off)
	end := start + int(lim)

	if end > len(out) {
		end = len(out)
	}

	return &types.Page[*types.RateSnapshot]{
		Results: out[start:end],
		Total:   total,
	}, nil
}

func (s *Storage) RatesInRange(
	_ context.Context,
	query *types.RateQuery,
	from time.Time,
	to time.Time,
) (*types.Page[*types.RateSnapshot], error) {
	var (
		lo   = from.UTC()
		hi   = to.UTC()
		base = query.Base.String()
	)

	var (
		target, source, kind          string
		hasTarget, hasSource, hasKind bool
	)

	if query.Target != nil {
		target = query.Target.String()
		hasTarget = true
	}

	if query.Source != nil {
		source = query.Source.String()
		hasSource = true
	}

	if query.Kind != nil {
		kind = query.Kind.String()
		hasKind = true
	}

	s.mu.RLock()

	out := make([]*types.RateSnapshot, 0)

	for _, v := range s.data {
		if v.Base.String() != base {
			continue
		}

		if hasTarget && v.Target.String() != target {
			continue
		}

		if hasSource && v.Source.String() != source {
			continue
		}

		if hasKind && v.Kind.String() != kind {
			continue
		}

		if v.AsOf.Before(lo) || v.AsOf.After(hi) {
			continue
		}

		cp := v
		out = append(out, &cp)
	}

	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AsOf.Equal(out[j].AsOf) {
			return out[i].AsOf.Before(out[j].AsOf)
		}

		if out[i].Target != out[j].Target {
			return out[i].Target.String() < out[j].Target.String()
		}

		return out[i].Source.String() < out[j].Source.String()
	})

	total := int64(len(out))
	if total == 0 {
		return &types.Page[*types.RateSnapshot]{
			Results: nil,
			Total:   0,
		}, nil
	}

	lim := query.Limit
	if lim == 0 {
		lim = 100
	}

	if lim > 500 {
		lim = 500
	}

	off := query.Offset
	if off > total {
		return &types.Page[*types.RateSnapshot]{
			Results: nil,
			Total:   total,
		}, nil
	}

	start := int(off)
	end := start + int(lim)

	if end > len(out) {
		end = len(out)
	}

	return &types.Page[*types.RateSnapshot]{
		Results: out[start:end],
		Total:   total,
	}, nil
}

func (s *Storage) ListSources(_ context.Context) ([]types.Source, error) {
	s.mu.RLock()

	seen := make(map[string]struct{})

	for k := range s.data {
		seen[k.source] = struct{}{}
	}

	s.mu.RUnlock()

	out := make([]types.Source, 0, len(seen))

	for v := range seen {
		out = append(out, types.Source(v))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})

	return out, nil
}

func (s *Storage) ListCurrencies(_ context.Context) ([]types.Currency, error) {
	s.mu.RLock()

	seen := make(map[string]struct{})

	for k := range s.data {
		seen[k.base] = struct{}{}
		seen[k.target] = struct{}{}
	}

	s.mu.RUnlock()

	out := make([]types.Currency, 0, len(seen))

	for v := range seen {
		out = append(out, types.Currency(v))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})

	return out, nil
}
