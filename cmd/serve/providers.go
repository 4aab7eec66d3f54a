package serve

import (
	"time"

	"github.com/smartransfer/routes/ingest"
	"github.com/smartransfer/routes/provider/ethgas"
	"github.com/smartransfer/routes/provider/frankfurter"
	"github.com/smartransfer/routes/provider/xrates"
)

// defaultProviders returns the default ingestion providers
func defaultProviders() []ingest.Provider {
	var (
		// Official ECB-derived spot rates
		frankfurterProvider = frankfurter.NewProvider(time.Second * 30)

		// Fallback spot rate scraper
		xratesProvider = xrates.NewProvider(time.Second * 30)

		// Live Ethereum transfer fee estimates
		ethgasProvider = ethgas.NewProvider(time.Second * 30)
	)

	return []ingest.Provider{
		frankfurterProvider,
		xratesProvider,
		ethgasProvider,
	}
}
