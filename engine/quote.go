package engine

// BuildQuote combines the provider's fee, the spot FX rate and the
// provider's risk data into a computed quote.
//
// ReceivedDest may come out negative when the fee exceeds the send
// amount; that is a valid computed result and is surfaced, not clamped.
func BuildQuote(p *Provider, amountUSD, spotRate float64) (*Quote, error) {
	if amountUSD <= 0 {
		return nil, ErrInvalidAmount
	}

	var (
		feeUSD = p.Fees.FeeUSD(amountUSD)
		markup = p.Fees.MarkupPercent()

		effectiveRate = spotRate * (1 - markup)
		receivedDest  = (amountUSD - feeUSD) * effectiveRate
		costPct       = feeUSD / amountUSD * 100
	)

	return &Quote{
		Provider:        p,
		TotalFeeUSD:     feeUSD,
		EffectiveRate:   effectiveRate,
		ReceivedDest:    receivedDest,
		CostPct:         costPct,
		SettlementHours: p.SettlementHours,
		TaxFlag:         p.Risk.TaxableEvent,
		FXMarkupPct:     markup * 100,
		AmountUSD:       amountUSD,
	}, nil
}

// Evaluate runs a single filter -> quote -> score pass over the catalog.
// The pass is pure and deterministic: identical inputs yield identical
// quote sets and winners. The returned result is independently owned
// and discarded on the next request.
func Evaluate(providers []*Provider, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		amountUSD = req.AmountUSD()
		eligible  = Filter(providers, req)

		quotes = make([]*Quote, 0, len(eligible))
	)

	for _, p := range eligible {
		quote, err := BuildQuote(p, amountUSD, req.SpotRateUSDToDest)
		if err != nil {
			return nil, err
		}

		score, err := Score(p, quote.TotalFeeUSD, req.DeliveryMode, req.RiskTolerance)
		if err != nil {
			return nil, err
		}

		quote.Score = score

		quotes = append(quotes, quote)
	}

	return &Result{
		Quotes:  quotes,
		Winners: Rank(quotes),
	}, nil
}
