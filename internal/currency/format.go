package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NegativeSentinel is returned for negative input. Negative prices are
// rejected upstream; the display path must still never panic.
const NegativeSentinel = "—"

// supported mirrors the UI languages (en/ar/fr/es); unknown locales match
// to English.
var supported = []language.Tag{
	language.English,
	language.Arabic,
	language.French,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Currencies whose minor unit is not used in display.
var zeroDecimal = map[string]bool{
	"JPY": true,
}

// Format converts a canonical USD amount to the entry's local currency and
// renders it with locale-aware grouping and decimal rules. Zero renders as
// zero, never blank.
func Format(priceUSD float64, entry RateEntry, locale string) string {
	if priceUSD < 0 {
		return NegativeSentinel
	}
	local := priceUSD * entry.Rate

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	tag, _, _ = matcher.Match(tag)
	p := message.NewPrinter(tag)

	scale := 2
	if zeroDecimal[entry.Currency] {
		scale = 0
	}
	return entry.Symbol + p.Sprintf("%v", number.Decimal(local, number.Scale(scale)))
}
