package engine

func fptr(v float64) *float64 {
	return &v
}

// bankWire mirrors the slowest traditional rail in the default catalog
func bankWire() *Provider {
	return &Provider{
		ID:               "bank_wire",
		Name:             "Bank Wire",
		Type:             ProviderTraditional,
		WeekendSupported: false,
		SupportsSameDay:  false,
		SupportsExpress:  false,
		MinAmountUSD:     fptr(100),
		Fees: LinearFeeModel{
			FlatFeeUSD:      30,
			PercentFee:      0,
			FXMarkupPercent: 0.018,
		},
		SettlementHours: 72,
		Risk: RiskProfile{
			VolatilityRisk:       RiskLevelLow,
			RegulatoryComplexity: RiskLevelLow,
		},
	}
}

func wise() *Provider {
	return &Provider{
		ID:               "wise",
		Name:             "Wise",
		Type:             ProviderTraditional,
		WeekendSupported: true,
		SupportsSameDay:  false,
		SupportsExpress:  true,
		MinAmountUSD:     fptr(1),
		MaxAmountUSD:     fptr(100000),
		Fees: LinearFeeModel{
			FlatFeeUSD:      4.5,
			PercentFee:      0.0045,
			FXMarkupPercent: 0.005,
		},
		SettlementHours: 24,
		Risk: RiskProfile{
			VolatilityRisk:       RiskLevelLow,
			RegulatoryComplexity: RiskLevelLow,
		},
	}
}

func usdcEth() *Provider {
	return &Provider{
		ID:               "usdc_eth",
		Name:             "USDC / Ethereum",
		Type:             ProviderCrypto,
		WeekendSupported: true,
		SupportsSameDay:  true,
		SupportsExpress:  true,
		MinAmountUSD:     fptr(50),
		Fees: CryptoFeeModel{
			OnrampPercentFee:          0.008,
			GasFeeUSD:                 5.5,
			ExchangeTradingFeePercent: 0.001,
			OfframpPercentFee:         0.004,
			FXSpreadPercent:           0.002,
		},
		SettlementHours: 0.5,
		Risk: RiskProfile{
			TaxableEvent:         true,
			VolatilityRisk:       RiskLevelMedium,
			RegulatoryComplexity: RiskLevelHigh,
		},
	}
}

// usdRequest is a plain USD -> INR request with sane defaults
func usdRequest(amount float64, mode DeliveryMode, tolerance RiskTolerance) *Request {
	return &Request{
		AmountOrigin:      amount,
		OriginCurrency:    "USD",
		DestCurrency:      "INR",
		DeliveryMode:      mode,
		RiskTolerance:     tolerance,
		SpotRateUSDToDest: 83.0,
		OriginToUSDRate:   1,
	}
}
