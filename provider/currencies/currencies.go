package currencies

import "github.com/smartransfer/routes/storage/types"

var (
	USD types.Currency = "USD"
	ETH types.Currency = "ETH"

	INR types.Currency = "INR"
	EUR types.Currency = "EUR"
	GBP types.Currency = "GBP"
	MXN types.Currency = "MXN"
	PHP types.Currency = "PHP"
	NGN types.Currency = "NGN"
	BRL types.Currency = "BRL"
	JPY types.Currency = "JPY"
	PKR types.Currency = "PKR"
	BDT types.Currency = "BDT"
)

// Destinations are the payout currencies tracked by the rate providers
var Destinations = []types.Currency{
	INR, EUR, GBP, MXN, PHP, NGN, BRL, JPY, PKR, BDT,
}
