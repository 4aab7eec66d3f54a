package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartransfer/routes/advisor"
	"github.com/smartransfer/routes/catalog"
	"github.com/smartransfer/routes/provider/ethgas"
	"github.com/smartransfer/routes/provider/frankfurter"
	"github.com/smartransfer/routes/storage/mock"
	"github.com/smartransfer/routes/storage/types"
)

// rateStorage returns a mock storage serving the given spot and gas
// snapshots from LatestRate queries
func rateStorage(t *testing.T, spot, gas *types.RateSnapshot) *mock.Storage {
	t.Helper()

	return &mock.Storage{
		LatestRateFn: func(
			_ context.Context,
			query *types.RateQuery,
			_ time.Time,
		) (*types.Page[*types.RateSnapshot], error) {
			var match *types.RateSnapshot

			if query.Kind != nil {
				switch *query.Kind {
				case types.KindSpot:
					match = spot
				case types.KindGas:
					match = gas
				}
			}

			if match == nil {
				return &types.Page[*types.RateSnapshot]{}, nil
			}

			return &types.Page[*types.RateSnapshot]{
				Results: []*types.RateSnapshot{match},
				Total:   1,
			}, nil
		},
	}
}

func quotesServer(t *testing.T, storage *mock.Storage) *Server {
	t.Helper()

	return &Server{
		storage: storage,
		logger:  noopLogger,
		catalog: catalog.Default(),
	}
}

func postQuotes(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/quotes",
		bytes.NewReader([]byte(body)),
	)

	w := httptest.NewRecorder()
	s.Quotes(w, req)

	return w
}

func TestHandlers_Quotes(t *testing.T) {
	t.Parallel()

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		w := postQuotes(t, s, `not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown origin currency", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "XXX",
			"dest_currency": "INR",
			"delivery_mode": "standard",
			"risk_tolerance": "medium"
		}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown destination currency", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "XXX",
			"delivery_mode": "standard",
			"risk_tolerance": "medium"
		}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no spot rate", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, rateStorage(t, nil, nil))

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "INR",
			"delivery_mode": "standard",
			"risk_tolerance": "medium"
		}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		storage := &mock.Storage{
			LatestRateFn: func(
				_ context.Context,
				_ *types.RateQuery,
				_ time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				return nil, errors.New("boom")
			},
		}

		s := quotesServer(t, storage)

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "INR",
			"delivery_mode": "standard",
			"risk_tolerance": "medium"
		}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("unknown delivery mode", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, rateStorage(t, nil, nil))

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "INR",
			"delivery_mode": "teleport",
			"risk_tolerance": "medium",
			"spot_rate_override": 83.0
		}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown sort criterion", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, rateStorage(t, nil, nil))

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "INR",
			"delivery_mode": "standard",
			"risk_tolerance": "medium",
			"spot_rate_override": 83.0,
			"sort_by": "vibes"
		}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success with stored rates", func(t *testing.T) {
		t.Parallel()

		now := time.Now().UTC()

		spot := &types.RateSnapshot{
			AsOf:      now.Add(-time.Minute),
			FetchedAt: now.Add(-time.Minute),
			Base:      types.CurrencyUSD,
			Target:    "INR",
			Kind:      types.KindSpot,
			Source:    frankfurter.Source,
			Rate:      83.0,
		}

		gas := &types.RateSnapshot{
			AsOf:      now.Add(-time.Minute),
			FetchedAt: now.Add(-time.Minute),
			Base:      types.CurrencyETH,
			Target:    types.CurrencyUSD,
			Kind:      types.KindGas,
			Source:    ethgas.Source,
			Rate:      12.0,
		}

		s := quotesServer(t, rateStorage(t, spot, gas))

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "INR",
			"delivery_mode": "standard",
			"risk_tolerance": "medium",
			"is_weekend": false
		}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp QuoteResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.InDelta(t, 83.0, resp.SpotRate, 1e-9)
		assert.Equal(t, frankfurter.Source.String(), resp.SpotSource)
		assert.InDelta(t, 5000.0, resp.AmountUSD, 1e-9)

		require.NotNil(t, resp.GasFeeUSD)
		assert.InDelta(t, 12.0, *resp.GasFeeUSD, 1e-9)

		require.NotEmpty(t, resp.Quotes)
		require.NotNil(t, resp.Winners.BestScore)
		require.NotNil(t, resp.Winners.Cheapest)
		require.NotNil(t, resp.Winners.Fastest)

		for _, q := range resp.Quotes {
			assert.Positive(t, q.TotalFeeUSD)
			assert.Positive(t, q.ReceivedDest)
		}
	})

	t.Run("spot override skips storage", func(t *testing.T) {
		t.Parallel()

		var spotQueried bool

		storage := &mock.Storage{
			LatestRateFn: func(
				_ context.Context,
				query *types.RateQuery,
				_ time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				if query.Kind != nil && *query.Kind == types.KindSpot {
					spotQueried = true
				}

				return &types.Page[*types.RateSnapshot]{}, nil
			},
		}

		s := quotesServer(t, storage)

		w := postQuotes(t, s, `{
			"amount": 1000,
			"origin_currency": "EUR",
			"dest_currency": "INR",
			"delivery_mode": "standard",
			"risk_tolerance": "low",
			"spot_rate_override": 90.5,
			"is_weekend": false
		}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, spotQueried)

		var resp QuoteResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.InDelta(t, 90.5, resp.SpotRate, 1e-9)
		assert.Equal(t, "override", resp.SpotSource)

		// EUR origin converts at 1.085
		assert.InDelta(t, 1085.0, resp.AmountUSD, 1e-9)
		assert.Nil(t, resp.GasFeeUSD)
	})

	t.Run("sorted quotes", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, rateStorage(t, nil, nil))

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "INR",
			"delivery_mode": "standard",
			"risk_tolerance": "medium",
			"spot_rate_override": 83.0,
			"is_weekend": false,
			"sort_by": "cost"
		}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp QuoteResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotEmpty(t, resp.Quotes)

		for i := 1; i < len(resp.Quotes); i++ {
			assert.LessOrEqual(t, resp.Quotes[i-1].TotalFeeUSD, resp.Quotes[i].TotalFeeUSD)
		}

		require.NotNil(t, resp.Winners.Cheapest)
		assert.InDelta(t, resp.Winners.Cheapest.TotalFeeUSD, resp.Quotes[0].TotalFeeUSD, 1e-9)
	})

	t.Run("weekend same day excludes non-weekend providers", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, rateStorage(t, nil, nil))

		w := postQuotes(t, s, `{
			"amount": 5000,
			"origin_currency": "USD",
			"dest_currency": "INR",
			"delivery_mode": "same_day",
			"risk_tolerance": "medium",
			"spot_rate_override": 83.0,
			"is_weekend": true
		}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp QuoteResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		for _, q := range resp.Quotes {
			assert.True(t, q.Provider.WeekendSupported)
			assert.True(t, q.Provider.SupportsSameDay)
		}
	})
}

func TestHandlers_Review(t *testing.T) {
	t.Parallel()

	t.Run("advisor not configured", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		req := httptest.NewRequest(http.MethodPost, "/v1/quotes/review", http.NoBody)
		w := httptest.NewRecorder()

		s.Review(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, err := w.Write([]byte(`{
				"candidates": [
					{"content": {"role": "model", "parts": [{"text": "Solid route choice."}]}}
				]
			}`))
			require.NoError(t, err)
		}))
		defer srv.Close()

		s := quotesServer(t, rateStorage(t, nil, nil))
		s.advisor = advisor.New("test-key", time.Second*5, advisor.WithBaseURL(srv.URL))

		req := httptest.NewRequest(
			http.MethodPost,
			"/v1/quotes/review",
			bytes.NewReader([]byte(`{
				"amount": 5000,
				"origin_currency": "USD",
				"dest_currency": "INR",
				"delivery_mode": "standard",
				"risk_tolerance": "medium",
				"spot_rate_override": 83.0,
				"is_weekend": false
			}`)),
		)

		w := httptest.NewRecorder()
		s.Review(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp ReviewResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.Equal(t, "Solid route choice.", resp.Review)
		require.NotNil(t, resp.Quote)
		assert.NotEmpty(t, resp.Quote.Provider.ID)
	})

	t.Run("advisor error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)

			_, err := w.Write([]byte(`{"error": {"message": "boom"}}`))
			require.NoError(t, err)
		}))
		defer srv.Close()

		s := quotesServer(t, rateStorage(t, nil, nil))
		s.advisor = advisor.New("test-key", time.Second*5, advisor.WithBaseURL(srv.URL))

		req := httptest.NewRequest(
			http.MethodPost,
			"/v1/quotes/review",
			bytes.NewReader([]byte(`{
				"amount": 5000,
				"origin_currency": "USD",
				"dest_currency": "INR",
				"delivery_mode": "standard",
				"risk_tolerance": "medium",
				"spot_rate_override": 83.0
			}`)),
		)

		w := httptest.NewRecorder()
		s.Review(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestHandlers_Catalog(t *testing.T) {
	t.Parallel()

	t.Run("providers", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		req := httptest.NewRequest(http.MethodGet, "/v1/providers", http.NoBody)
		w := httptest.NewRecorder()

		s.Providers(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Results []struct {
				ID string `json:"id"`
			} `json:"results"`
		}

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Len(t, resp.Results, 6)
	})

	t.Run("currencies", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		req := httptest.NewRequest(http.MethodGet, "/v1/currencies", http.NoBody)
		w := httptest.NewRecorder()

		s.Currencies(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp CurrenciesResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.NotEmpty(t, resp.Origins)
		assert.Len(t, resp.Destinations, 10)
	})
}

func TestHandlers_Sources(t *testing.T) {
	t.Parallel()

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		storage := &mock.Storage{
			ListSourcesFn: func(_ context.Context) ([]types.Source, error) {
				return nil, errors.New("boom")
			},
		}

		s := quotesServer(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/v1/sources", http.NoBody)
		w := httptest.NewRecorder()

		s.Sources(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		storage := &mock.Storage{
			ListSourcesFn: func(_ context.Context) ([]types.Source, error) {
				return []types.Source{"Frankfurter", "X-Rates"}, nil
			},
			ListCurrenciesFn: func(_ context.Context) ([]types.Currency, error) {
				return []types.Currency{"INR", "USD"}, nil
			},
		}

		s := quotesServer(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/v1/sources", http.NoBody)
		w := httptest.NewRecorder()

		s.Sources(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp SourcesResponse

		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.Equal(t, []types.Source{"Frankfurter", "X-Rates"}, resp.Sources)
		assert.Equal(t, []types.Currency{"INR", "USD"}, resp.Currencies)
	})
}

func TestHandlers_RatesForPair(t *testing.T) {
	t.Parallel()

	t.Run("invalid base", func(t *testing.T) {
		t.Parallel()

		var called bool

		storage := &mock.Storage{
			LatestRateFn: func(
				_ context.Context,
				_ *types.RateQuery,
				_ time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				called = true

				return nil, nil
			},
		}

		s := quotesServer(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/v1/rates/US/INR", http.NoBody)
		req = withRouteParams(t, req, map[string]string{
			"base":   "US",
			"target": "INR",
		})

		w := httptest.NewRecorder()
		s.RatesForPair(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		storage := &mock.Storage{
			LatestRateFn: func(
				_ context.Context,
				_ *types.RateQuery,
				_ time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				return nil, errors.New("boom")
			},
		}

		s := quotesServer(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/v1/rates/USD/INR", http.NoBody)
		req = withRouteParams(t, req, map[string]string{
			"base":   "USD",
			"target": "INR",
		})

		w := httptest.NewRecorder()
		s.RatesForPair(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var (
			capturedQuery *types.RateQuery
			capturedAsOf  time.Time
		)

		expectedAsOf := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

		storage := &mock.Storage{
			LatestRateFn: func(
				_ context.Context,
				query *types.RateQuery,
				asOf time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				capturedQuery = query
				capturedAsOf = asOf

				return &types.Page[*types.RateSnapshot]{
					Results: []*types.RateSnapshot{{
						Base:   types.CurrencyUSD,
						Target: "INR",
						Rate:   83,
					}},
					Total: 1,
				}, nil
			},
		}

		s := quotesServer(t, storage)

		url := "/v1/rates/USD/INR?as_of=2026-08-10T00:00:00Z" +
			"&limit=200&offset=2&source=Frankfurter&kind=spot"
		req := httptest.NewRequest(http.MethodGet, url, http.NoBody)
		req = withRouteParams(t, req, map[string]string{
			"base":   "USD",
			"target": "INR",
		})

		w := httptest.NewRecorder()
		s.RatesForPair(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var page types.Page[*types.RateSnapshot]

		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		require.Len(t, page.Results, 1)
		assert.Equal(t, int64(1), page.Total)

		require.NotNil(t, capturedQuery)
		assert.Equal(t, types.CurrencyUSD, capturedQuery.Base)

		require.NotNil(t, capturedQuery.Target)
		assert.Equal(t, types.Currency("INR"), *capturedQuery.Target)

		require.NotNil(t, capturedQuery.Source)
		assert.Equal(t, frankfurter.Source, *capturedQuery.Source)

		require.NotNil(t, capturedQuery.Kind)
		assert.Equal(t, types.KindSpot, *capturedQuery.Kind)

		assert.Equal(t, int32(200), capturedQuery.Limit)
		assert.Equal(t, int64(2), capturedQuery.Offset)
		assert.Equal(t, expectedAsOf, capturedAsOf)
	})
}

func TestHandlers_RatesForBase(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var capturedQuery *types.RateQuery

		storage := &mock.Storage{
			LatestRateFn: func(
				_ context.Context,
				query *types.RateQuery,
				_ time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				capturedQuery = query

				return &types.Page[*types.RateSnapshot]{
					Results: []*types.RateSnapshot{{
						Base:   types.CurrencyETH,
						Target: types.CurrencyUSD,
						Kind:   types.KindGas,
						Rate:   4.2,
					}},
					Total: 1,
				}, nil
			},
		}

		s := quotesServer(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/v1/rates/ETH?kind=gas", http.NoBody)
		req = withRouteParams(t, req, map[string]string{"base": "ETH"})

		w := httptest.NewRecorder()
		s.RatesForBase(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, capturedQuery)
		assert.Equal(t, types.CurrencyETH, capturedQuery.Base)
		assert.Nil(t, capturedQuery.Target)

		require.NotNil(t, capturedQuery.Kind)
		assert.Equal(t, types.KindGas, *capturedQuery.Kind)
	})

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		req := httptest.NewRequest(http.MethodGet, "/v1/rates/USD?kind=nope", http.NoBody)
		req = withRouteParams(t, req, map[string]string{"base": "USD"})

		w := httptest.NewRecorder()
		s.RatesForBase(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlers_RatesHistory(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var (
			capturedQuery *types.RateQuery
			capturedFrom  time.Time
			capturedTo    time.Time
		)

		var (
			expectedFrom = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
			expectedTo   = time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
		)

		storage := &mock.Storage{
			RatesInRangeFn: func(
				_ context.Context,
				query *types.RateQuery,
				from time.Time,
				to time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				capturedQuery = query
				capturedFrom = from
				capturedTo = to

				return &types.Page[*types.RateSnapshot]{
					Results: []*types.RateSnapshot{{
						Base:   types.CurrencyUSD,
						Target: "INR",
						Rate:   83,
					}},
					Total: 1,
				}, nil
			},
		}

		s := quotesServer(t, storage)

		url := "/v1/rates/USD/INR/history" +
			"?from=2026-08-01T00:00:00Z&to=2026-08-10T00:00:00Z"
		req := httptest.NewRequest(http.MethodGet, url, http.NoBody)
		req = withRouteParams(t, req, map[string]string{
			"base":   "USD",
			"target": "INR",
		})

		w := httptest.NewRecorder()
		s.RatesHistory(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		require.NotNil(t, capturedQuery)
		assert.Equal(t, types.CurrencyUSD, capturedQuery.Base)

		require.NotNil(t, capturedQuery.Target)
		assert.Equal(t, types.Currency("INR"), *capturedQuery.Target)

		assert.Equal(t, expectedFrom, capturedFrom)
		assert.Equal(t, expectedTo, capturedTo)
	})

	t.Run("inverted window", func(t *testing.T) {
		t.Parallel()

		s := quotesServer(t, &mock.Storage{})

		url := "/v1/rates/USD/INR/history" +
			"?from=2026-08-10T00:00:00Z&to=2026-08-01T00:00:00Z"
		req := httptest.NewRequest(http.MethodGet, url, http.NoBody)
		req = withRouteParams(t, req, map[string]string{
			"base":   "USD",
			"target": "INR",
		})

		w := httptest.NewRecorder()
		s.RatesHistory(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		storage := &mock.Storage{
			RatesInRangeFn: func(
				_ context.Context,
				_ *types.RateQuery,
				_ time.Time,
				_ time.Time,
			) (*types.Page[*types.RateSnapshot], error) {
				return nil, errors.New("boom")
			},
		}

		s := quotesServer(t, storage)

		req := httptest.NewRequest(http.MethodGet, "/v1/rates/USD/INR/history", http.NoBody)
		req = withRouteParams(t, req, map[string]string{
			"base":   "USD",
			"target": "INR",
		})

		w := httptest.NewRecorder()
		s.RatesHistory(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUtils_ParseRange(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the last day", func(t *testing.T) {
		t.Parallel()

		from, to, err := parseRange("", "")

		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, to.Sub(from))
	})

	t.Run("inverted window", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseRange(
			"2026-08-10T00:00:00Z",
			"2026-08-01T00:00:00Z",
		)

		assert.ErrorIs(t, err, errInvalidRange)
	})

	t.Run("invalid from", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseRange("nope", "")

		assert.Error(t, err)
	})
}

func TestUtils_ParseAsOf(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		expected := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)

		value, err := parseAsOf("2026-08-12T00:00:00Z")

		require.NoError(t, err)
		assert.Equal(t, expected, value)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		_, err := parseAsOf("nope")

		assert.Error(t, err)
	})
}

func TestUtils_ParseLimitOffset(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		limit, offset, err := parseLimitOffset("", "")

		require.NoError(t, err)
		assert.Equal(t, int32(100), limit)
		assert.Equal(t, int64(0), offset)
	})

	t.Run("clamps limit", func(t *testing.T) {
		t.Parallel()

		limit, offset, err := parseLimitOffset("999", "5")

		require.NoError(t, err)
		assert.Equal(t, int32(500), limit)
		assert.Equal(t, int64(5), offset)
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseLimitOffset("nope", "0")

		assert.ErrorIs(t, err, errInvalidLimit)
	})

	t.Run("invalid offset", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseLimitOffset("10", "nope")

		assert.ErrorIs(t, err, errInvalidOffset)
	})
}

func TestUtils_ParseSourceAndKind(t *testing.T) {
	t.Parallel()

	t.Run("valid kind", func(t *testing.T) {
		t.Parallel()

		source, kind, err := parseSourceAndKind("Frankfurter", "spot")

		require.NoError(t, err)
		require.NotNil(t, source)
		require.NotNil(t, kind)

		assert.Equal(t, frankfurter.Source, *source)
		assert.Equal(t, types.KindSpot, *kind)
	})

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseSourceAndKind("", "nope")

		assert.ErrorIs(t, err, errInvalidKind)
	})
}

func TestUtils_ParseCurrencySymbol(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		value, err := parseCurrencySymbol("usd")

		require.NoError(t, err)
		assert.Equal(t, types.CurrencyUSD, value)
	})

	t.Run("invalid length", func(t *testing.T) {
		t.Parallel()

		_, err := parseCurrencySymbol("USDT")

		assert.Error(t, err)
	})

	t.Run("invalid chars", func(t *testing.T) {
		t.Parallel()

		_, err := parseCurrencySymbol("US$")

		assert.Error(t, err)
	})
}

func withRouteParams(t *testing.T, req *http.Request, params map[string]string) *http.Request {
	t.Helper()

	rctx := chi.NewRouteContext()

	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
