package quote

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/smartransfer/routes/catalog"
	"github.com/smartransfer/routes/cmd/env"
	"github.com/smartransfer/routes/engine"
)

// quoteCfg wraps the one-shot quote configuration
type quoteCfg struct {
	amount    float64
	from      string
	to        string
	mode      string
	tolerance string
	spot      float64
	weekend   bool
	sortBy    string

	catalogPath string
}

// NewQuoteCmd creates the quote subcommand
func NewQuoteCmd() *ffcli.Command {
	cfg := &quoteCfg{}

	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "quote",
		ShortUsage: "quote [flags]",
		LongHelp:   "Evaluates transfer routes for a single request and prints the ranking",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *quoteCfg) registerFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.amount, "amount", 1000, "the amount to send, in the origin currency")
	fs.StringVar(&c.from, "from", "USD", "the origin currency code")
	fs.StringVar(&c.to, "to", "INR", "the destination currency code")
	fs.StringVar(&c.mode, "mode", "standard", "the delivery mode (standard, express, same_day)")
	fs.StringVar(&c.tolerance, "tolerance", "medium", "the risk tolerance (low, medium, high)")
	fs.Float64Var(&c.spot, "spot", 0, "the USD to destination spot rate")
	fs.BoolVar(&c.weekend, "weekend", false, "whether the transfer happens on a weekend")
	fs.StringVar(&c.sortBy, "sort", "", "the quote sort criterion (score, cost, time), if any")

	fs.StringVar(
		&c.catalogPath,
		"catalog",
		"",
		"the path to a TOML provider catalog, if any",
	)
}

func (c *quoteCfg) exec(_ context.Context, _ []string) error {
	origin := strings.ToUpper(c.from)
	dest := strings.ToUpper(c.to)

	originToUSD, ok := catalog.OriginToUSD(origin)
	if !ok {
		return fmt.Errorf("unknown origin currency %q", origin)
	}

	if _, ok = catalog.DestCurrency(dest); !ok {
		return fmt.Errorf("unknown destination currency %q", dest)
	}

	if c.spot <= 0 {
		return fmt.Errorf("a positive -spot rate is required")
	}

	// Resolve the provider catalog
	providers := catalog.Default()

	if c.catalogPath != "" {
		loaded, err := catalog.Load(c.catalogPath)
		if err != nil {
			return fmt.Errorf("unable to load provider catalog, %w", err)
		}

		providers = loaded
	}

	result, err := engine.Evaluate(providers, &engine.Request{
		AmountOrigin:      c.amount,
		OriginCurrency:    origin,
		DestCurrency:      dest,
		DeliveryMode:      engine.DeliveryMode(c.mode),
		RiskTolerance:     engine.RiskTolerance(c.tolerance),
		SpotRateUSDToDest: c.spot,
		OriginToUSDRate:   originToUSD,
		IsWeekend:         c.weekend,
	})
	if err != nil {
		return fmt.Errorf("unable to evaluate routes, %w", err)
	}

	quotes := result.Quotes

	if c.sortBy != "" {
		quotes, err = engine.SortBy(quotes, engine.SortCriterion(c.sortBy))
		if err != nil {
			return fmt.Errorf("unable to sort quotes, %w", err)
		}
	}

	if len(quotes) == 0 {
		fmt.Println("No eligible routes for this request")

		return nil
	}

	printQuotes(quotes, dest)
	printWinners(result.Winners)

	return nil
}

// printQuotes prints the evaluated quotes as a table
func printQuotes(quotes []*engine.Quote, dest string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(
		w,
		"PROVIDER\tFEE (USD)\tCOST %%\tRECEIVED (%s)\tHOURS\tSCORE\n",
		dest,
	)

	for _, q := range quotes {
		_, _ = fmt.Fprintf(
			w,
			"%s\t%.2f\t%.2f\t%.2f\t%g\t%.1f\n",
			q.Provider.Name,
			q.TotalFeeUSD,
			q.CostPct,
			q.ReceivedDest,
			q.SettlementHours,
			q.Score,
		)
	}

	_ = w.Flush()
}

// printWinners prints the per-criterion winners
func printWinners(winners engine.Winners) {
	fmt.Println()

	if winners.BestScore != nil {
		fmt.Printf("Best score: %s\n", winners.BestScore.Provider.Name)
	}

	if winners.Cheapest != nil {
		fmt.Printf("Cheapest:   %s\n", winners.Cheapest.Provider.Name)
	}

	if winners.Fastest != nil {
		fmt.Printf("Fastest:    %s\n", winners.Fastest.Provider.Name)
	}
}
