package engine

// Score produces a single comparable suitability score for one provider
// quote. The base formula depends on the delivery mode:
//
//	standard: cost dominates outright
//	express:  60% cost, 40% speed
//	same_day: 70% speed, 30% cost
//
// Crypto routes get an additive risk-tolerance adjustment. The final
// score is floored at zero and has no upper bound; scores are only
// comparable within one evaluation.
func Score(
	p *Provider,
	feeUSD float64,
	mode DeliveryMode,
	tolerance RiskTolerance,
) (float64, error) {
	var score float64

	switch mode {
	case DeliveryStandard:
		score = 100 - feeUSD/20
	case DeliveryExpress:
		var (
			costComponent  = 100 - feeUSD/25
			speedComponent = 100 - p.SettlementHours*3
		)

		score = 0.6*costComponent + 0.4*speedComponent
	case DeliverySameDay:
		var (
			speedComponent = 100 - p.SettlementHours*6
			costComponent  = 100 - feeUSD/40
		)

		score = 0.7*speedComponent + 0.3*costComponent
	default:
		return 0, ErrUnknownDeliveryMode
	}

	if p.Type == ProviderCrypto {
		switch tolerance {
		case RiskLow:
			score -= 40
		case RiskMedium:
			score -= 15
		case RiskHigh:
			score += 10
		default:
			return 0, ErrUnknownRiskTolerance
		}
	}

	if score < 0 {
		score = 0
	}

	return score, nil
}
