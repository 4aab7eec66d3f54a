package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartransfer/routes/advisor"
	"github.com/smartransfer/routes/catalog"
	"github.com/smartransfer/routes/engine"
	"github.com/smartransfer/routes/metrics"
	"github.com/smartransfer/routes/storage/types"
)

const (
	defaultLimit = int32(100)
	maxLimit     = int32(500)
)

var (
	errUnableToFetchRates    = errors.New("unable to fetch rates")
	errUnableToFetchCoverage = errors.New("unable to fetch rate coverage")
	errUnableToEvaluate      = errors.New("unable to evaluate routes")

	errInvalidLimit  = errors.New("invalid limit")
	errInvalidOffset = errors.New("invalid offset")
	errInvalidKind   = errors.New("invalid kind")
	errInvalidRange  = errors.New("invalid time range (from must precede to)")

	errInvalidBody         = errors.New("invalid request body")
	errUnknownOrigin       = errors.New("unknown origin currency")
	errUnknownDest         = errors.New("unknown destination currency")
	errNoSpotRate          = errors.New("no spot rate available for destination")
	errNoEligibleRoutes    = errors.New("no eligible routes for request")
	errAdvisorUnavailable  = errors.New("route advisor not configured")
	errUnableToFetchReview = errors.New("unable to generate route review")
)

func (s *Server) Quotes(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)

		return
	}

	resp, err := s.evaluateRequest(r.Context(), &req)
	if err != nil {
		s.writeEvaluationError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) Review(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, errAdvisorUnavailable)

		return
	}

	var req QuoteRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody)

		return
	}

	resp, err := s.evaluateRequest(r.Context(), &req)
	if err != nil {
		s.writeEvaluationError(w, err)

		return
	}

	recommended := resp.Winners.BestScore
	if recommended == nil {
		writeError(w, http.StatusUnprocessableEntity, errNoEligibleRoutes)

		return
	}

	review, err := s.advisor.Review(r.Context(), &advisor.ReviewInput{
		Quote:          recommended,
		OriginCurrency: strings.ToUpper(req.OriginCurrency),
		DestCurrency:   strings.ToUpper(req.DestCurrency),
		Amount:         req.Amount,
	})
	if err != nil {
		s.logger.Debug(
			"unable to generate route review",
			"err", err,
		)

		writeError(w, http.StatusBadGateway, errUnableToFetchReview)

		return
	}

	writeJSON(w, http.StatusOK, &ReviewResponse{
		Review: review,
		Quote:  recommended,
	})
}

// evaluateRequest resolves rates, applies the live gas fee, and runs
// a full evaluation pass over the provider catalog
func (s *Server) evaluateRequest(
	ctx context.Context,
	req *QuoteRequest,
) (*QuoteResponse, error) {
	origin := strings.ToUpper(strings.TrimSpace(req.OriginCurrency))
	dest := strings.ToUpper(strings.TrimSpace(req.DestCurrency))

	// Resolve the origin -> USD conversion rate
	originToUSD, ok := catalog.OriginToUSD(origin)
	if !ok {
		return nil, errUnknownOrigin
	}

	if _, ok = catalog.DestCurrency(dest); !ok {
		return nil, errUnknownDest
	}

	// Resolve the USD -> destination spot rate
	var (
		spotRate   float64
		spotSource = "override"
		spotAsOf   = time.Now().UTC()
	)

	if req.SpotRateOverride != nil && *req.SpotRateOverride > 0 {
		spotRate = *req.SpotRateOverride
	} else {
		snapshot, err := s.latestSpot(ctx, types.Currency(dest))
		if err != nil {
			return nil, err
		}

		if snapshot == nil {
			return nil, errNoSpotRate
		}

		spotRate = snapshot.Rate
		spotSource = snapshot.Source.String()
		spotAsOf = snapshot.AsOf
	}

	// Apply the live gas fee to crypto routes, when available
	var (
		providers = s.catalog
		gasFee    *float64
	)

	if snapshot := s.latestGasFee(ctx); snapshot != nil {
		providers = catalog.WithGasFee(providers, snapshot.Rate)
		gasFee = &snapshot.Rate
	}

	// Zero and negative amounts are clamped to the minimum send amount
	amount := req.Amount
	if amount < 1 {
		amount = 1
	}

	isWeekend := time.Now().UTC().Weekday() == time.Saturday ||
		time.Now().UTC().Weekday() == time.Sunday
	if req.IsWeekend != nil {
		isWeekend = *req.IsWeekend
	}

	result, err := engine.Evaluate(providers, &engine.Request{
		AmountOrigin:      amount,
		OriginCurrency:    origin,
		DestCurrency:      dest,
		DeliveryMode:      engine.DeliveryMode(req.DeliveryMode),
		RiskTolerance:     engine.RiskTolerance(req.RiskTolerance),
		SpotRateUSDToDest: spotRate,
		OriginToUSDRate:   originToUSD,
		IsWeekend:         isWeekend,
	})
	if err != nil {
		return nil, err
	}

	metrics.EvaluationsTotal.WithLabelValues(req.DeliveryMode).Inc()
	metrics.EvaluationQuotes.Observe(float64(len(result.Quotes)))

	if result.Winners.BestScore != nil {
		metrics.WinnerSelectionsTotal.WithLabelValues("best_score").Inc()
	}

	if result.Winners.Cheapest != nil {
		metrics.WinnerSelectionsTotal.WithLabelValues("cheapest").Inc()
	}

	if result.Winners.Fastest != nil {
		metrics.WinnerSelectionsTotal.WithLabelValues("fastest").Inc()
	}

	quotes := result.Quotes

	if req.SortBy != "" {
		quotes, err = engine.SortBy(quotes, engine.SortCriterion(req.SortBy))
		if err != nil {
			return nil, err
		}
	}

	return &QuoteResponse{
		Quotes:     quotes,
		Winners:    result.Winners,
		AmountUSD:  amount * originToUSD,
		SpotRate:   spotRate,
		SpotSource: spotSource,
		SpotAsOf:   spotAsOf,
		GasFeeUSD:  gasFee,
	}, nil
}

// latestSpot fetches the freshest USD -> dest spot snapshot across sources
func (s *Server) latestSpot(
	ctx context.Context,
	dest types.Currency,
) (*types.RateSnapshot, error) {
	kind := types.KindSpot

	page, err := s.storage.LatestRate(ctx, &types.RateQuery{
		Base:   types.CurrencyUSD,
		Target: &dest,
		Kind:   &kind,
	}, time.Now().UTC())
	if err != nil {
		s.logger.Debug(
			"unable to fetch spot rate",
			"dest", dest,
			"err", err,
		)

		return nil, errUnableToFetchRates
	}

	return freshest(page), nil
}

// latestGasFee fetches the freshest gas fee snapshot, if any
func (s *Server) latestGasFee(ctx context.Context) *types.RateSnapshot {
	kind := types.KindGas

	page, err := s.storage.LatestRate(ctx, &types.RateQuery{
		Base: types.CurrencyETH,
		Kind: &kind,
	}, time.Now().UTC())
	if err != nil {
		s.logger.Debug(
			"unable to fetch gas fee",
			"err", err,
		)

		return nil // gas fee is best-effort
	}

	return freshest(page)
}

// freshest picks the most recent snapshot out of a result page
func freshest(page *types.Page[*types.RateSnapshot]) *types.RateSnapshot {
	if page == nil || len(page.Results) == 0 {
		return nil
	}

	best := page.Results[0]

	for _, snapshot := range page.Results[1:] {
		if snapshot.AsOf.After(best.AsOf) ||
			(snapshot.AsOf.Equal(best.AsOf) && snapshot.FetchedAt.After(best.FetchedAt)) {
			best = snapshot
		}
	}

	return best
}

// writeEvaluationError maps evaluation errors to HTTP statuses
func (s *Server) writeEvaluationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errUnknownOrigin),
		errors.Is(err, errUnknownDest),
		errors.Is(err, engine.ErrUnknownDeliveryMode),
		errors.Is(err, engine.ErrUnknownRiskTolerance),
		errors.Is(err, engine.ErrUnknownSortCriterion),
		errors.Is(err, engine.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, errNoSpotRate):
		writeError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, errUnableToFetchRates):
		writeError(w, http.StatusInternalServerError, err)
	default:
		s.logger.Debug(
			"unable to evaluate routes",
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToEvaluate)
	}
}

func (s *Server) Providers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &ProvidersResponse{
		Results: s.catalog,
	})
}

func (s *Server) Currencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, &CurrenciesResponse{
		Origins:      catalog.OriginCurrencies(),
		Destinations: catalog.DestCurrencies(),
	})
}

func (s *Server) Sources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.storage.ListSources(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch sources",
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToFetchCoverage)

		return
	}

	currencies, err := s.storage.ListCurrencies(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch currencies",
			"err", err,
		)

		writeError(w, http.StatusInternalServerError, errUnableToFetchCoverage)

		return
	}

	writeJSON(w, http.StatusOK, &SourcesResponse{
		Sources:    sources,
		Currencies: currencies,
	})
}

func (s *Server) RatesForPair(w http.ResponseWriter, r *http.Request) {
	var (
		baseParam   = chi.URLParam(r, "base")
		targetParam = chi.URLParam(r, "target")

		asOfParam   = r.URL.Query().Get("as_of")
		limitParam  = r.URL.Query().Get("limit")
		offsetParam = r.URL.Query().Get("offset")

		sourceParam = r.URL.Query().Get("source")
		kindParam   = r.URL.Query().Get("kind")
	)

	// Parse the base currency
	base, err := parseCurrencySymbol(baseParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the target currency
	target, err := parseCurrencySymbol(targetParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the effective date (defaults to now)
	asOf, err := parseAsOf(asOfParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the pagination settings
	limit, offset, err := parseLimitOffset(limitParam, offsetParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the source and kind (optional)
	source, kind, err := parseSourceAndKind(sourceParam, kindParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	q := &types.RateQuery{
		Base:   base,
		Target: &target,
		Source: source,
		Kind:   kind,
		Limit:  limit,
		Offset: offset,
	}

	page, err := s.storage.LatestRate(r.Context(), q, asOf)
	if err != nil {
		s.logger.Debug(
			"unable to fetch rates",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchRates,
		)

		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) RatesForBase(w http.ResponseWriter, r *http.Request) {
	var (
		baseParam = chi.URLParam(r, "base")

		asOfParam   = r.URL.Query().Get("as_of")
		limitParam  = r.URL.Query().Get("limit")
		offsetParam = r.URL.Query().Get("offset")

		sourceParam = r.URL.Query().Get("source")
		kindParam   = r.URL.Query().Get("kind")
	)

	// Parse the base currency
	base, err := parseCurrencySymbol(baseParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the effective date
	asOf, err := parseAsOf(asOfParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the pagination settings
	limit, offset, err := parseLimitOffset(limitParam, offsetParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the source and kind (optional)
	source, kind, err := parseSourceAndKind(sourceParam, kindParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	q := &types.RateQuery{
		Base:   base,
		Target: nil,
		Source: source,
		Kind:   kind,
		Limit:  limit,
		Offset: offset,
	}

	page, err := s.storage.LatestRate(r.Context(), q, asOf)
	if err != nil {
		s.logger.Debug(
			"unable to fetch rates",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchRates,
		)

		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) RatesHistory(w http.ResponseWriter, r *http.Request) {
	var (
		baseParam   = chi.URLParam(r, "base")
		targetParam = chi.URLParam(r, "target")

		fromParam = r.URL.Query().Get("from")
		toParam   = r.URL.Query().Get("to")

		limitParam  = r.URL.Query().Get("limit")
		offsetParam = r.URL.Query().Get("offset")

		sourceParam = r.URL.Query().Get("source")
		kindParam   = r.URL.Query().Get("kind")
	)

	// Parse the base currency
	base, err := parseCurrencySymbol(baseParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the target currency
	target, err := parseCurrencySymbol(targetParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the observation window (defaults to the last 24h)
	from, to, err := parseRange(fromParam, toParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the pagination settings
	limit, offset, err := parseLimitOffset(limitParam, offsetParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	// Parse the source and kind (optional)
	source, kind, err := parseSourceAndKind(sourceParam, kindParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	q := &types.RateQuery{
		Base:   base,
		Target: &target,
		Source: source,
		Kind:   kind,
		Limit:  limit,
		Offset: offset,
	}

	page, err := s.storage.RatesInRange(r.Context(), q, from, to)
	if err != nil {
		s.logger.Debug(
			"unable to fetch rate history",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchRates,
		)

		return
	}

	writeJSON(w, http.StatusOK, page)
}

func parseAsOf(asOfRaw string) (time.Time, error) {
	v := strings.TrimSpace(asOfRaw)
	if v == "" {
		return time.Now().UTC(), nil // default is now
	}

	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, errors.New("invalid as_of (must be RFC3339 UTC)")
	}

	return t.UTC(), nil
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	to := time.Now().UTC()

	if v := strings.TrimSpace(toRaw); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to (must be RFC3339 UTC)")
		}

		to = t.UTC()
	}

	from := to.Add(-24 * time.Hour)

	if v := strings.TrimSpace(fromRaw); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from (must be RFC3339 UTC)")
		}

		from = t.UTC()
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, errInvalidRange
	}

	return from, to, nil
}

func parseLimitOffset(limitRaw, offsetRaw string) (int32, int64, error) {
	limit := defaultLimit

	if v := strings.TrimSpace(limitRaw); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, 0, errInvalidLimit
		}

		limit = int32(n) //nolint:gosec // Fine to clamp
	}

	if limit == 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	var offset int64

	if v := strings.TrimSpace(offsetRaw); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, 0, errInvalidOffset
		}

		offset = n
	}

	return limit, offset, nil
}

func parseSourceAndKind(sourceRaw, kindRaw string) (*types.Source, *types.Kind, error) {
	var src *types.Source

	if v := strings.TrimSpace(sourceRaw); v != "" {
		s := types.Source(v)

		src = &s
	}

	var kind *types.Kind

	if v := strings.TrimSpace(kindRaw); v != "" {
		k := types.Kind(strings.ToUpper(v))

		switch k {
		case types.KindSpot, types.KindGas:
			kind = &k
		default:
			return nil, nil, errInvalidKind
		}
	}

	return src, kind, nil
}

func parseCurrencySymbol(v string) (types.Currency, error) {
	s := strings.ToUpper(strings.TrimSpace(v))
	if len(s) != 3 {
		return "", errors.New("invalid currency (must be 3 letters)")
	}

	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", errors.New("invalid currency (must be A-Z)")
		}
	}

	return types.Currency(s), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
