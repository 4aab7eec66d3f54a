package engine

import "encoding/json"

// ProviderType classifies a transfer provider and selects its fee model shape
type ProviderType string

const (
	ProviderTraditional   ProviderType = "traditional"
	ProviderDigitalWallet ProviderType = "digital_wallet"
	ProviderRemittance    ProviderType = "remittance"
	ProviderCrypto        ProviderType = "crypto"
)

func (t ProviderType) String() string {
	return string(t)
}

// DeliveryMode is the requested transfer urgency
type DeliveryMode string

const (
	DeliveryStandard DeliveryMode = "standard"
	DeliveryExpress  DeliveryMode = "express"
	DeliverySameDay  DeliveryMode = "same_day"
)

func (d DeliveryMode) String() string {
	return string(d)
}

// RiskTolerance is the user's willingness to accept crypto-route exposure
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

func (r RiskTolerance) String() string {
	return string(r)
}

// RiskLevel grades a provider risk dimension
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

func (l RiskLevel) String() string {
	return string(l)
}

// RiskProfile describes the provider's risk dimensions
type RiskProfile struct {
	VolatilityRisk       RiskLevel `json:"volatility_risk"`
	RegulatoryComplexity RiskLevel `json:"regulatory_complexity"`
	TaxableEvent         bool      `json:"taxable_event"`
}

// Provider is a static catalog entry, immutable for the engine's lifetime
type Provider struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type ProviderType `json:"type"`

	WeekendSupported bool `json:"weekend_supported"`
	SupportsSameDay  bool `json:"supports_same_day"`
	SupportsExpress  bool `json:"supports_express"`

	// nil bound means unbounded
	MinAmountUSD *float64 `json:"min_amount_usd"`
	MaxAmountUSD *float64 `json:"max_amount_usd"`

	Fees FeeModel `json:"fee_model"`

	SettlementHours float64 `json:"settlement_hours"`

	Risk                RiskProfile `json:"risk_profile"`
	CorridorSensitivity RiskLevel   `json:"corridor_sensitivity"`
	Pros                []string    `json:"pros"`
}

// UnmarshalJSON decodes the provider, resolving the fee model shape
// from the provider type (the tag of the union)
func (p *Provider) UnmarshalJSON(data []byte) error {
	type alias Provider

	aux := &struct {
		Fees json.RawMessage `json:"fee_model"`
		*alias
	}{
		alias: (*alias)(p),
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if len(aux.Fees) == 0 {
		return nil
	}

	if p.Type == ProviderCrypto {
		var fees CryptoFeeModel
		if err := json.Unmarshal(aux.Fees, &fees); err != nil {
			return err
		}

		p.Fees = fees

		return nil
	}

	var fees LinearFeeModel
	if err := json.Unmarshal(aux.Fees, &fees); err != nil {
		return err
	}

	p.Fees = fees

	return nil
}

// Request is a single transfer evaluation request.
// AmountOrigin must be positive; callers clamp it to >= 1 before
// handing it to the engine.
type Request struct {
	AmountOrigin   float64       `json:"amount_origin"`
	OriginCurrency string        `json:"origin_currency"`
	DestCurrency   string        `json:"dest_currency"`
	DeliveryMode   DeliveryMode  `json:"delivery_mode"`
	RiskTolerance  RiskTolerance `json:"risk_tolerance"`

	// SpotRateUSDToDest is the USD -> destination currency mid rate,
	// supplied by an external rate source
	SpotRateUSDToDest float64 `json:"spot_rate_usd_to_dest"`

	// OriginToUSDRate converts the origin currency amount into USD
	OriginToUSDRate float64 `json:"origin_to_usd_rate"`

	IsWeekend bool `json:"is_weekend"`
}

// AmountUSD is the USD-denominated send amount
func (r *Request) AmountUSD() float64 {
	return r.AmountOrigin * r.OriginToUSDRate
}

// Validate checks the closed enumerations and the amount precondition.
// Unknown modes and tolerances fail fast instead of silently defaulting.
func (r *Request) Validate() error {
	switch r.DeliveryMode {
	case DeliveryStandard, DeliveryExpress, DeliverySameDay:
	default:
		return ErrUnknownDeliveryMode
	}

	switch r.RiskTolerance {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return ErrUnknownRiskTolerance
	}

	if r.AmountUSD() <= 0 {
		return ErrInvalidAmount
	}

	return nil
}

// Quote is the computed outcome for one provider against one request.
// A Quote is immutable once produced; re-scoring for a different request
// requires a fresh evaluation pass.
type Quote struct {
	Provider *Provider `json:"provider"`

	TotalFeeUSD     float64 `json:"total_fee_usd"`
	EffectiveRate   float64 `json:"effective_rate"`
	ReceivedDest    float64 `json:"received_dest"`
	CostPct         float64 `json:"cost_pct"`
	SettlementHours float64 `json:"settlement_hours"`
	Score           float64 `json:"score"`
	TaxFlag         bool    `json:"tax_flag"`
	FXMarkupPct     float64 `json:"fx_markup_pct"`
	AmountUSD       float64 `json:"amount_usd"`
}

// Winners holds the three independently-ranked views over one evaluation.
// All fields are nil when no providers were eligible.
type Winners struct {
	BestScore *Quote `json:"best_score"`
	Cheapest  *Quote `json:"cheapest"`
	Fastest   *Quote `json:"fastest"`
}

// Result is the outcome of a single evaluation pass
type Result struct {
	Quotes  []*Quote `json:"quotes"`
	Winners Winners  `json:"winners"`
}
