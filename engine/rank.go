package engine

import "sort"

// SortCriterion selects a quote ordering
type SortCriterion string

const (
	SortByScore SortCriterion = "score" // descending
	SortByCost  SortCriterion = "cost"  // ascending by total fee
	SortByTime  SortCriterion = "time"  // ascending by settlement hours
)

func (c SortCriterion) String() string {
	return string(c)
}

// Rank derives the three named winners from a quote set. Ties are
// broken by first-encountered order. An empty quote set yields empty
// winners; that is the "no eligible providers" state, not an error.
func Rank(quotes []*Quote) Winners {
	if len(quotes) == 0 {
		return Winners{}
	}

	var (
		best     = quotes[0]
		cheapest = quotes[0]
		fastest  = quotes[0]
	)

	for _, q := range quotes[1:] {
		if q.Score > best.Score {
			best = q
		}

		if q.TotalFeeUSD < cheapest.TotalFeeUSD {
			cheapest = q
		}

		if q.SettlementHours < fastest.SettlementHours {
			fastest = q
		}
	}

	return Winners{
		BestScore: best,
		Cheapest:  cheapest,
		Fastest:   fastest,
	}
}

// SortBy returns a new ordering of the quote set by the given
// criterion. The sort is stable: quotes with equal keys keep their
// original relative order. The input slice is not modified.
func SortBy(quotes []*Quote, criterion SortCriterion) ([]*Quote, error) {
	ordered := make([]*Quote, len(quotes))
	copy(ordered, quotes)

	switch criterion {
	case SortByScore:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Score > ordered[j].Score
		})
	case SortByCost:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].TotalFeeUSD < ordered[j].TotalFeeUSD
		})
	case SortByTime:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].SettlementHours < ordered[j].SettlementHours
		})
	default:
		return nil, ErrUnknownSortCriterion
	}

	return ordered, nil
}
