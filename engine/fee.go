package engine

// FeeModel is the tagged fee model of a provider. The two shapes are
// mutually exclusive: non-crypto providers carry a LinearFeeModel,
// crypto providers a CryptoFeeModel. Keeping them as separate types
// makes invalid combinations (a bank with gas fees) unrepresentable.
type FeeModel interface {
	// FeeUSD computes the absolute fee in USD for the given
	// USD-denominated send amount. No rounding is applied;
	// formatting is a presentation concern
	FeeUSD(amountUSD float64) float64

	// MarkupPercent is the FX markup (spread) the provider applies
	// on top of the spot rate, as a fraction (0.005 == 0.5%)
	MarkupPercent() float64
}

// LinearFeeModel is the flat + percentage fee shape used by
// traditional, digital wallet and remittance providers
type LinearFeeModel struct {
	FlatFeeUSD      float64 `json:"flat_fee_usd"`
	PercentFee      float64 `json:"percent_fee"`
	FXMarkupPercent float64 `json:"fx_markup_percent"`
}

func (m LinearFeeModel) FeeUSD(amountUSD float64) float64 {
	return m.FlatFeeUSD + amountUSD*m.PercentFee + amountUSD*m.FXMarkupPercent
}

func (m LinearFeeModel) MarkupPercent() float64 {
	return m.FXMarkupPercent
}

// CryptoFeeModel is the on-ramp / gas / exchange / off-ramp fee shape
// used by crypto rails. GasFeeUSD is a live value, refreshed by the
// gas fee ingestion provider.
type CryptoFeeModel struct {
	OnrampPercentFee          float64 `json:"onramp_percent_fee"`
	GasFeeUSD                 float64 `json:"gas_fee_usd"`
	ExchangeTradingFeePercent float64 `json:"exchange_trading_fee_percent"`
	OfframpPercentFee         float64 `json:"offramp_percent_fee"`
	FXSpreadPercent           float64 `json:"fx_spread_percent"`
}

func (m CryptoFeeModel) FeeUSD(amountUSD float64) float64 {
	return amountUSD*m.OnrampPercentFee +
		m.GasFeeUSD +
		amountUSD*m.ExchangeTradingFeePercent +
		amountUSD*m.OfframpPercentFee +
		amountUSD*m.FXSpreadPercent
}

func (m CryptoFeeModel) MarkupPercent() float64 {
	return m.FXSpreadPercent
}
