// Package catalog holds the static transfer provider catalog and
// currency metadata consumed by the evaluation engine. The built-in
// catalog can be replaced from a TOML file.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml"

	"github.com/smartransfer/routes/engine"
)

var (
	ErrNoProviders        = errors.New("catalog has no providers")
	ErrDuplicateProvider  = errors.New("duplicate provider id")
	ErrInvalidBounds      = errors.New("provider min amount exceeds max amount")
	ErrNegativeFee        = errors.New("fee parameters must be non-negative")
	ErrNegativeSettlement = errors.New("settlement hours must be non-negative")
	ErrUnknownType        = errors.New("unknown provider type")
	ErrUnknownRiskLevel   = errors.New("unknown risk level")
)

// Default returns the built-in provider catalog. Each call returns a
// fresh copy so callers may adjust live parameters (gas fees) without
// touching the shared data.
func Default() []*engine.Provider {
	fptr := func(v float64) *float64 { return &v }

	return []*engine.Provider{
		{
			ID:               "bank_wire",
			Name:             "Bank Wire",
			Type:             engine.ProviderTraditional,
			WeekendSupported: false,
			SupportsSameDay:  false,
			SupportsExpress:  false,
			MinAmountUSD:     fptr(100),
			Fees: engine.LinearFeeModel{
				FlatFeeUSD:      30,
				PercentFee:      0,
				FXMarkupPercent: 0.018,
			},
			SettlementHours: 72,
			Risk: engine.RiskProfile{
				TaxableEvent:         false,
				VolatilityRisk:       engine.RiskLevelLow,
				RegulatoryComplexity: engine.RiskLevelLow,
			},
			CorridorSensitivity: engine.RiskLevelLow,
			Pros:                []string{"Strong regulatory protection"},
		},
		{
			ID:               "wise",
			Name:             "Wise",
			Type:             engine.ProviderTraditional,
			WeekendSupported: true,
			SupportsSameDay:  false,
			SupportsExpress:  true,
			MinAmountUSD:     fptr(1),
			MaxAmountUSD:     fptr(100000),
			Fees: engine.LinearFeeModel{
				FlatFeeUSD:      4.5,
				PercentFee:      0.0045,
				FXMarkupPercent: 0.005,
			},
			SettlementHours: 24,
			Risk: engine.RiskProfile{
				TaxableEvent:         false,
				VolatilityRisk:       engine.RiskLevelLow,
				RegulatoryComplexity: engine.RiskLevelLow,
			},
			CorridorSensitivity: engine.RiskLevelMedium,
			Pros:                []string{"Strong global coverage"},
		},
		{
			ID:               "western_union",
			Name:             "Western Union",
			Type:             engine.ProviderTraditional,
			WeekendSupported: true,
			SupportsSameDay:  true,
			SupportsExpress:  true,
			MinAmountUSD:     fptr(1),
			MaxAmountUSD:     fptr(50000),
			Fees: engine.LinearFeeModel{
				FlatFeeUSD:      10,
				PercentFee:      0.012,
				FXMarkupPercent: 0.025,
			},
			SettlementHours: 2,
			Risk: engine.RiskProfile{
				TaxableEvent:         false,
				VolatilityRisk:       engine.RiskLevelLow,
				RegulatoryComplexity: engine.RiskLevelLow,
			},
			CorridorSensitivity: engine.RiskLevelHigh,
			Pros:                []string{"Cash pickup available"},
		},
		{
			ID:               "paypal",
			Name:             "PayPal",
			Type:             engine.ProviderDigitalWallet,
			WeekendSupported: true,
			SupportsSameDay:  true,
			SupportsExpress:  true,
			MinAmountUSD:     fptr(1),
			MaxAmountUSD:     fptr(20000),
			Fees: engine.LinearFeeModel{
				FlatFeeUSD:      4,
				PercentFee:      0.028,
				FXMarkupPercent: 0.03,
			},
			SettlementHours: 12,
			Risk: engine.RiskProfile{
				TaxableEvent:         false,
				VolatilityRisk:       engine.RiskLevelLow,
				RegulatoryComplexity: engine.RiskLevelLow,
			},
			CorridorSensitivity: engine.RiskLevelMedium,
			Pros:                []string{"Integrated marketplace use"},
		},
		{
			ID:               "remitly",
			Name:             "Remitly",
			Type:             engine.ProviderRemittance,
			WeekendSupported: true,
			SupportsSameDay:  true,
			SupportsExpress:  true,
			MinAmountUSD:     fptr(1),
			MaxAmountUSD:     fptr(30000),
			Fees: engine.LinearFeeModel{
				FlatFeeUSD:      3.5,
				PercentFee:      0.005,
				FXMarkupPercent: 0.007,
			},
			SettlementHours: 3,
			Risk: engine.RiskProfile{
				TaxableEvent:         false,
				VolatilityRisk:       engine.RiskLevelLow,
				RegulatoryComplexity: engine.RiskLevelLow,
			},
			CorridorSensitivity: engine.RiskLevelHigh,
			Pros:                []string{"Competitive FX promotions"},
		},
		{
			ID:               "usdc_eth",
			Name:             "USDC / Ethereum",
			Type:             engine.ProviderCrypto,
			WeekendSupported: true,
			SupportsSameDay:  true,
			SupportsExpress:  true,
			MinAmountUSD:     fptr(50),
			Fees: engine.CryptoFeeModel{
				OnrampPercentFee:          0.008,
				GasFeeUSD:                 5.5,
				ExchangeTradingFeePercent: 0.001,
				OfframpPercentFee:         0.004,
				FXSpreadPercent:           0.002,
			},
			SettlementHours: 0.5,
			Risk: engine.RiskProfile{
				TaxableEvent:         true,
				VolatilityRisk:       engine.RiskLevelMedium,
				RegulatoryComplexity: engine.RiskLevelHigh,
			},
			CorridorSensitivity: engine.RiskLevelMedium,
			Pros:                []string{"24/7 availability"},
		},
	}
}

// file-level TOML shapes. The fee model table carries both shapes'
// fields; the provider type selects which one is read out.
type catalogFile struct {
	Providers []rawProvider `toml:"providers"`
}

type rawProvider struct {
	ID               string      `toml:"id"`
	Name             string      `toml:"name"`
	Type             string      `toml:"type"`
	WeekendSupported bool        `toml:"weekend_supported"`
	SupportsSameDay  bool        `toml:"supports_same_day"`
	SupportsExpress  bool        `toml:"supports_express"`
	MinAmountUSD     *float64    `toml:"min_amount_usd"`
	MaxAmountUSD     *float64    `toml:"max_amount_usd"`
	FeeModel         rawFeeModel `toml:"fee_model"`
	Settlement       struct {
		EstimatedHours float64 `toml:"estimated_hours"`
	} `toml:"settlement"`
	RiskProfile struct {
		TaxableEvent         bool   `toml:"taxable_event"`
		VolatilityRisk       string `toml:"volatility_risk"`
		RegulatoryComplexity string `toml:"regulatory_complexity"`
	} `toml:"risk_profile"`
	CorridorSensitivity string   `toml:"corridor_sensitivity"`
	Pros                []string `toml:"pros"`
}

type rawFeeModel struct {
	FlatFeeUSD      float64 `toml:"flat_fee_usd"`
	PercentFee      float64 `toml:"percent_fee"`
	FXMarkupPercent float64 `toml:"fx_markup_percent"`

	OnrampPercentFee          float64 `toml:"onramp_percent_fee"`
	GasFeeUSD                 float64 `toml:"gas_fee_usd"`
	ExchangeTradingFeePercent float64 `toml:"exchange_trading_fee_percent"`
	OfframpPercentFee         float64 `toml:"offramp_percent_fee"`
	FXSpreadPercent           float64 `toml:"fx_spread_percent"`
}

// Load reads a provider catalog from the given TOML path
func Load(path string) ([]*engine.Provider, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read catalog file: %w", err)
	}

	var file catalogFile

	if err := toml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("unable to parse catalog file: %w", err)
	}

	providers := make([]*engine.Provider, 0, len(file.Providers))

	for i := range file.Providers {
		p, err := file.Providers[i].toProvider()
		if err != nil {
			return nil, fmt.Errorf("invalid provider %q: %w", file.Providers[i].ID, err)
		}

		providers = append(providers, p)
	}

	if err := Validate(providers); err != nil {
		return nil, err
	}

	return providers, nil
}

func (r *rawProvider) toProvider() (*engine.Provider, error) {
	pType := engine.ProviderType(r.Type)

	var fees engine.FeeModel

	switch pType {
	case engine.ProviderCrypto:
		fees = engine.CryptoFeeModel{
			OnrampPercentFee:          r.FeeModel.OnrampPercentFee,
			GasFeeUSD:                 r.FeeModel.GasFeeUSD,
			ExchangeTradingFeePercent: r.FeeModel.ExchangeTradingFeePercent,
			OfframpPercentFee:         r.FeeModel.OfframpPercentFee,
			FXSpreadPercent:           r.FeeModel.FXSpreadPercent,
		}
	case engine.ProviderTraditional, engine.ProviderDigitalWallet, engine.ProviderRemittance:
		fees = engine.LinearFeeModel{
			FlatFeeUSD:      r.FeeModel.FlatFeeUSD,
			PercentFee:      r.FeeModel.PercentFee,
			FXMarkupPercent: r.FeeModel.FXMarkupPercent,
		}
	default:
		return nil, ErrUnknownType
	}

	volatility, err := parseRiskLevel(r.RiskProfile.VolatilityRisk)
	if err != nil {
		return nil, err
	}

	regulatory, err := parseRiskLevel(r.RiskProfile.RegulatoryComplexity)
	if err != nil {
		return nil, err
	}

	sensitivity, err := parseRiskLevel(r.CorridorSensitivity)
	if err != nil {
		return nil, err
	}

	return &engine.Provider{
		ID:               r.ID,
		Name:             r.Name,
		Type:             pType,
		WeekendSupported: r.WeekendSupported,
		SupportsSameDay:  r.SupportsSameDay,
		SupportsExpress:  r.SupportsExpress,
		MinAmountUSD:     r.MinAmountUSD,
		MaxAmountUSD:     r.MaxAmountUSD,
		Fees:             fees,
		SettlementHours:  r.Settlement.EstimatedHours,
		Risk: engine.RiskProfile{
			TaxableEvent:         r.RiskProfile.TaxableEvent,
			VolatilityRisk:       volatility,
			RegulatoryComplexity: regulatory,
		},
		CorridorSensitivity: sensitivity,
		Pros:                r.Pros,
	}, nil
}

func parseRiskLevel(v string) (engine.RiskLevel, error) {
	level := engine.RiskLevel(v)

	switch level {
	case engine.RiskLevelLow, engine.RiskLevelMedium, engine.RiskLevelHigh:
		return level, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRiskLevel, v)
	}
}

// Validate checks catalog invariants: unique ids, non-negative fee
// parameters and settlement times, coherent amount bounds
func Validate(providers []*engine.Provider) error {
	if len(providers) == 0 {
		return ErrNoProviders
	}

	seen := make(map[string]struct{}, len(providers))

	for _, p := range providers {
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateProvider, p.ID)
		}

		seen[p.ID] = struct{}{}

		if p.SettlementHours < 0 {
			return fmt.Errorf("%w: %q", ErrNegativeSettlement, p.ID)
		}

		if p.MinAmountUSD != nil && p.MaxAmountUSD != nil &&
			*p.MinAmountUSD > *p.MaxAmountUSD {
			return fmt.Errorf("%w: %q", ErrInvalidBounds, p.ID)
		}

		if err := validateFees(p); err != nil {
			return fmt.Errorf("%w: %q", err, p.ID)
		}
	}

	return nil
}

func validateFees(p *engine.Provider) error {
	switch m := p.Fees.(type) {
	case engine.LinearFeeModel:
		if m.FlatFeeUSD < 0 || m.PercentFee < 0 || m.FXMarkupPercent < 0 {
			return ErrNegativeFee
		}
	case engine.CryptoFeeModel:
		if m.OnrampPercentFee < 0 || m.GasFeeUSD < 0 ||
			m.ExchangeTradingFeePercent < 0 || m.OfframpPercentFee < 0 ||
			m.FXSpreadPercent < 0 {
			return ErrNegativeFee
		}
	default:
		return ErrUnknownType
	}

	return nil
}

// WithGasFee returns a copy of the catalog where every crypto
// provider's live gas fee is replaced with the given USD value.
// Non-crypto providers are shared, crypto entries are cloned so the
// source catalog stays untouched.
func WithGasFee(providers []*engine.Provider, gasFeeUSD float64) []*engine.Provider {
	out := make([]*engine.Provider, 0, len(providers))

	for _, p := range providers {
		m, ok := p.Fees.(engine.CryptoFeeModel)
		if !ok {
			out = append(out, p)

			continue
		}

		clone := *p
		m.GasFeeUSD = gasFeeUSD
		clone.Fees = m

		out = append(out, &clone)
	}

	return out
}

func sortedInfos(m map[string]CurrencyInfo) []CurrencyInfo {
	out := make([]CurrencyInfo, 0, len(m))

	for _, info := range m {
		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})

	return out
}
