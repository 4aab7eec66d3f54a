package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuote(t *testing.T) {
	t.Parallel()

	t.Run("wise at 5000", func(t *testing.T) {
		t.Parallel()

		quote, err := BuildQuote(wise(), 5000, 83.0)
		require.NoError(t, err)

		assert.InDelta(t, 52.0, quote.TotalFeeUSD, 1e-9)
		assert.InDelta(t, 83.0*(1-0.005), quote.EffectiveRate, 1e-9)
		assert.InDelta(t, (5000-52.0)*83.0*(1-0.005), quote.ReceivedDest, 1e-6)
		assert.InDelta(t, 1.04, quote.CostPct, 1e-9) // 52/5000*100
		assert.InDelta(t, 0.5, quote.FXMarkupPct, 1e-9)
		assert.InDelta(t, 24.0, quote.SettlementHours, 1e-9)
		assert.InDelta(t, 5000.0, quote.AmountUSD, 1e-9)
		assert.False(t, quote.TaxFlag)
	})

	t.Run("crypto markup comes from the fx spread", func(t *testing.T) {
		t.Parallel()

		quote, err := BuildQuote(usdcEth(), 5000, 83.0)
		require.NoError(t, err)

		assert.InDelta(t, 83.0*(1-0.002), quote.EffectiveRate, 1e-9)
		assert.InDelta(t, 0.2, quote.FXMarkupPct, 1e-9)
		assert.True(t, quote.TaxFlag)
	})

	t.Run("fee above amount surfaces negative received", func(t *testing.T) {
		t.Parallel()

		p := wise()
		p.Fees = LinearFeeModel{FlatFeeUSD: 200}

		quote, err := BuildQuote(p, 100, 83.0)
		require.NoError(t, err)

		assert.Negative(t, quote.ReceivedDest)
	})

	t.Run("invalid amount", func(t *testing.T) {
		t.Parallel()

		_, err := BuildQuote(wise(), 0, 83.0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = BuildQuote(wise(), -100, 83.0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	catalog := func() []*Provider {
		return []*Provider{bankWire(), wise(), usdcEth()}
	}

	t.Run("standard weekday at 5000", func(t *testing.T) {
		t.Parallel()

		result, err := Evaluate(catalog(), usdRequest(5000, DeliveryStandard, RiskMedium))
		require.NoError(t, err)

		require.Len(t, result.Quotes, 3)

		byID := make(map[string]*Quote)
		for _, q := range result.Quotes {
			byID[q.Provider.ID] = q
		}

		assert.InDelta(t, 120.0, byID["bank_wire"].TotalFeeUSD, 1e-9)
		assert.InDelta(t, 94.0, byID["bank_wire"].Score, 1e-9)

		assert.InDelta(t, 52.0, byID["wise"].TotalFeeUSD, 1e-9)
		assert.InDelta(t, 97.4, byID["wise"].Score, 1e-9)

		// wise wins on score and cost, crypto wins on speed
		require.NotNil(t, result.Winners.BestScore)
		assert.Equal(t, "wise", result.Winners.BestScore.Provider.ID)
		assert.Equal(t, "wise", result.Winners.Cheapest.Provider.ID)
		assert.Equal(t, "usdc_eth", result.Winners.Fastest.Provider.ID)
	})

	t.Run("weekend same day excludes unsupported rails", func(t *testing.T) {
		t.Parallel()

		req := usdRequest(5000, DeliverySameDay, RiskMedium)
		req.IsWeekend = true

		result, err := Evaluate(catalog(), req)
		require.NoError(t, err)

		require.Len(t, result.Quotes, 1)
		assert.Equal(t, "usdc_eth", result.Quotes[0].Provider.ID)
	})

	t.Run("empty eligible set yields no winners", func(t *testing.T) {
		t.Parallel()

		// below every provider minimum once converted (0.058 USD/MXN)
		req := &Request{
			AmountOrigin:      1,
			OriginCurrency:    "MXN",
			DestCurrency:      "INR",
			DeliveryMode:      DeliveryStandard,
			RiskTolerance:     RiskMedium,
			SpotRateUSDToDest: 83.0,
			OriginToUSDRate:   0.058,
		}

		result, err := Evaluate(catalog(), req)
		require.NoError(t, err)

		assert.Empty(t, result.Quotes)
		assert.Nil(t, result.Winners.BestScore)
		assert.Nil(t, result.Winners.Cheapest)
		assert.Nil(t, result.Winners.Fastest)

		ordered, err := SortBy(result.Quotes, SortByScore)
		require.NoError(t, err)
		assert.Empty(t, ordered)
	})

	t.Run("unknown delivery mode fails fast", func(t *testing.T) {
		t.Parallel()

		req := usdRequest(5000, "overnight", RiskMedium)

		_, err := Evaluate(catalog(), req)
		assert.ErrorIs(t, err, ErrUnknownDeliveryMode)
	})

	t.Run("unknown risk tolerance fails fast", func(t *testing.T) {
		t.Parallel()

		req := usdRequest(5000, DeliveryStandard, "yolo")

		_, err := Evaluate(catalog(), req)
		assert.ErrorIs(t, err, ErrUnknownRiskTolerance)
	})

	t.Run("non-positive amount fails fast", func(t *testing.T) {
		t.Parallel()

		req := usdRequest(0, DeliveryStandard, RiskMedium)

		_, err := Evaluate(catalog(), req)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		req := usdRequest(5000, DeliveryExpress, RiskHigh)

		first, err := Evaluate(catalog(), req)
		require.NoError(t, err)

		second, err := Evaluate(catalog(), req)
		require.NoError(t, err)

		require.Len(t, second.Quotes, len(first.Quotes))

		for i := range first.Quotes {
			assert.Equal(t, first.Quotes[i].Provider.ID, second.Quotes[i].Provider.ID)
			assert.Equal(t, first.Quotes[i].TotalFeeUSD, second.Quotes[i].TotalFeeUSD)
			assert.Equal(t, first.Quotes[i].Score, second.Quotes[i].Score)
			assert.Equal(t, first.Quotes[i].ReceivedDest, second.Quotes[i].ReceivedDest)
		}

		assert.Equal(
			t,
			first.Winners.BestScore.Provider.ID,
			second.Winners.BestScore.Provider.ID,
		)
	})

	t.Run("ranking consistency", func(t *testing.T) {
		t.Parallel()

		result, err := Evaluate(catalog(), usdRequest(5000, DeliveryStandard, RiskHigh))
		require.NoError(t, err)
		require.NotEmpty(t, result.Quotes)

		for _, q := range result.Quotes {
			assert.LessOrEqual(t, result.Winners.Cheapest.TotalFeeUSD, q.TotalFeeUSD)
			assert.LessOrEqual(t, result.Winners.Fastest.SettlementHours, q.SettlementHours)
			assert.GreaterOrEqual(t, result.Winners.BestScore.Score, q.Score)
		}
	})
}
