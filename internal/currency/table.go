package currency

import "strings"

// RateEntry maps a country to its display currency and the multiplier from
// canonical USD prices. Rate is always > 0; the table is static and loaded
// once at startup.
type RateEntry struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Flag     string  `json:"flag"`
	Currency string  `json:"currency"`
	Symbol   string  `json:"symbol"`
	Rate     float64 `json:"rate"`
}

// Countries is the supported country table. The first entry (US/USD, rate 1)
// doubles as the fallback for unknown codes.
var Countries = []RateEntry{
	{Code: "US", Name: "United States", Flag: "🇺🇸", Currency: "USD", Symbol: "$", Rate: 1},
	{Code: "SA", Name: "Saudi Arabia", Flag: "🇸🇦", Currency: "SAR", Symbol: "ر.س", Rate: 3.75},
	{Code: "AE", Name: "UAE", Flag: "🇦🇪", Currency: "AED", Symbol: "د.إ", Rate: 3.67},
	{Code: "EG", Name: "Egypt", Flag: "🇪🇬", Currency: "EGP", Symbol: "ج.م", Rate: 48.50},
	{Code: "TN", Name: "Tunisia", Flag: "🇹🇳", Currency: "TND", Symbol: "د.ت", Rate: 3.10},
	{Code: "MA", Name: "Morocco", Flag: "🇲🇦", Currency: "MAD", Symbol: "د.م.", Rate: 10.10},
	{Code: "DE", Name: "Germany", Flag: "🇩🇪", Currency: "EUR", Symbol: "€", Rate: 0.92},
	{Code: "GB", Name: "United Kingdom", Flag: "🇬🇧", Currency: "GBP", Symbol: "£", Rate: 0.79},
	{Code: "JP", Name: "Japan", Flag: "🇯🇵", Currency: "JPY", Symbol: "¥", Rate: 151.0},
}

// Default returns the fallback entry (US/USD, rate 1).
func Default() RateEntry {
	return Countries[0]
}

// Lookup returns the rate entry for a country code. Unknown codes fall back
// to the default entry; this sits in a display path and never fails.
func Lookup(code string) RateEntry {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range Countries {
		if c.Code == code {
			return c
		}
	}
	return Countries[0]
}
