package catalog

// CurrencyInfo is static display metadata for a currency
type CurrencyInfo struct {
	Code    string `json:"code"`
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// originCurrencies are the supported send currencies
var originCurrencies = map[string]CurrencyInfo{
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar", Country: "United States"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro", Country: "Eurozone"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound", Country: "United Kingdom"},
	"CAD": {Code: "CAD", Symbol: "C$", Name: "Canadian Dollar", Country: "Canada"},
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar", Country: "Australia"},
	"SGD": {Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", Country: "Singapore"},
	"AED": {Code: "AED", Symbol: "د.إ", Name: "UAE Dirham", Country: "UAE"},
	"CHF": {Code: "CHF", Symbol: "Fr", Name: "Swiss Franc", Country: "Switzerland"},
	"HKD": {Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar", Country: "Hong Kong"},
	"NZD": {Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar", Country: "New Zealand"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Country: "Japan"},
	"NOK": {Code: "NOK", Symbol: "kr", Name: "Norwegian Krone", Country: "Norway"},
	"SEK": {Code: "SEK", Symbol: "kr", Name: "Swedish Krona", Country: "Sweden"},
	"DKK": {Code: "DKK", Symbol: "kr", Name: "Danish Krone", Country: "Denmark"},
	"MXN": {Code: "MXN", Symbol: "$", Name: "Mexican Peso", Country: "Mexico"},
	"BRL": {Code: "BRL", Symbol: "R$", Name: "Brazilian Real", Country: "Brazil"},
	"ZAR": {Code: "ZAR", Symbol: "R", Name: "South African Rand", Country: "South Africa"},
	"TRY": {Code: "TRY", Symbol: "₺", Name: "Turkish Lira", Country: "Turkey"},
	"SAR": {Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal", Country: "Saudi Arabia"},
	"QAR": {Code: "QAR", Symbol: "﷼", Name: "Qatari Riyal", Country: "Qatar"},
	"KWD": {Code: "KWD", Symbol: "KD", Name: "Kuwaiti Dinar", Country: "Kuwait"},
}

// destCurrencies are the supported receive currencies
var destCurrencies = map[string]CurrencyInfo{
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee", Country: "India"},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro", Country: "Eurozone"},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound", Country: "United Kingdom"},
	"MXN": {Code: "MXN", Symbol: "$", Name: "Mexican Peso", Country: "Mexico"},
	"PHP": {Code: "PHP", Symbol: "₱", Name: "Philippine Peso", Country: "Philippines"},
	"NGN": {Code: "NGN", Symbol: "₦", Name: "Nigerian Naira", Country: "Nigeria"},
	"BRL": {Code: "BRL", Symbol: "R$", Name: "Brazilian Real", Country: "Brazil"},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Country: "Japan"},
	"PKR": {Code: "PKR", Symbol: "₨", Name: "Pakistani Rupee", Country: "Pakistan"},
	"BDT": {Code: "BDT", Symbol: "৳", Name: "Bangladeshi Taka", Country: "Bangladesh"},
}

// originToUSD is the static origin-currency to USD conversion table.
// These are configuration constants, not live rates.
var originToUSD = map[string]float64{
	"USD": 1,
	"EUR": 1.085,
	"GBP": 1.267,
	"CAD": 0.738,
	"AUD": 0.648,
	"SGD": 0.743,
	"AED": 0.272,
	"CHF": 1.115,
	"HKD": 0.128,
	"NZD": 0.609,
	"JPY": 0.0067,
	"NOK": 0.094,
	"SEK": 0.095,
	"DKK": 0.145,
	"MXN": 0.058,
	"BRL": 0.201,
	"ZAR": 0.054,
	"TRY": 0.031,
	"SAR": 0.267,
	"QAR": 0.274,
	"KWD": 3.25,
}

// OriginToUSD returns the static USD conversion rate for an origin
// currency, and whether the currency is supported
func OriginToUSD(code string) (float64, bool) {
	rate, ok := originToUSD[code]

	return rate, ok
}

// OriginCurrency returns the metadata for a send currency
func OriginCurrency(code string) (CurrencyInfo, bool) {
	info, ok := originCurrencies[code]

	return info, ok
}

// DestCurrency returns the metadata for a receive currency
func DestCurrency(code string) (CurrencyInfo, bool) {
	info, ok := destCurrencies[code]

	return info, ok
}

// OriginCurrencies lists the supported send currencies, sorted by code
func OriginCurrencies() []CurrencyInfo {
	return sortedInfos(originCurrencies)
}

// DestCurrencies lists the supported receive currencies, sorted by code
func DestCurrencies() []CurrencyInfo {
	return sortedInfos(destCurrencies)
}
