package marketdata

import (
	"getwealthos-backend/internal/currency"
	"getwealthos-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/market/exchange-rates?base=USD
// Serves the latest polled snapshot. Before the first successful poll the
// static rate table stands in, so the page always has something to show.
func (h *Handlers) GetExchangeRates(c *fiber.Ctx) error {
	rates := h.Service.Rates(c.Context())
	if rates != nil {
		return response.Success(c, "Exchange rates fetched", rates, fiber.Map{"source": "live"})
	}

	table := map[string]float64{}
	for _, entry := range currency.Countries {
		table[entry.Currency] = entry.Rate
	}
	return response.Success(c, "Exchange rates fetched", ExchangeRates{
		Base:            "USD",
		ConversionRates: table,
	}, fiber.Map{"source": "static_table"})
}

// GET /api/v1/market/crypto-prices
// Serves the cached coingecko quotes; an empty object before the first
// poll (the UI substitutes its own placeholder figures).
func (h *Handlers) GetCryptoPrices(c *fiber.Ctx) error {
	prices := h.Service.CryptoQuotes(c.Context())
	if prices == nil {
		prices = CryptoPrices{}
	}
	return response.Success(c, "Crypto prices fetched", prices, nil)
}
