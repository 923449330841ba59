package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Coins quoted on the crypto market page.
const coinIDs = "bitcoin,ethereum,tether,binancecoin,solana"

// ExchangeRates is one snapshot from the exchange-rate provider. The
// provider schema is not negotiated; absent fields decode to zero values
// and display fallbacks are substituted downstream.
type ExchangeRates struct {
	Base            string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	FetchedAt       time.Time          `json:"fetched_at"`
}

// CryptoPrices maps coin id to quote fields (usd, usd_24h_change).
type CryptoPrices map[string]map[string]float64

// ExchangeRateClient calls the exchangerate-api v6 endpoint.
type ExchangeRateClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func (c *ExchangeRateClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// Latest fetches the current conversion table for a base currency.
func (c *ExchangeRateClient) Latest(ctx context.Context, base string) (*ExchangeRates, error) {
	if base == "" {
		base = "USD"
	}
	url := fmt.Sprintf("%s/v6/%s/latest/%s", c.BaseURL, c.APIKey, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate provider returned %d", resp.StatusCode)
	}

	var out ExchangeRates
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Base == "" {
		out.Base = base
	}
	if out.ConversionRates == nil {
		out.ConversionRates = map[string]float64{}
	}
	out.FetchedAt = time.Now().UTC()
	return &out, nil
}

// CryptoPriceClient calls the coingecko simple-price endpoint.
type CryptoPriceClient struct {
	BaseURL string
	HTTP    *http.Client
}

func (c *CryptoPriceClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// SimplePrices fetches USD quotes with 24h change for the tracked coins.
func (c *CryptoPriceClient) SimplePrices(ctx context.Context) (CryptoPrices, error) {
	url := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true", c.BaseURL, coinIDs)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crypto price provider returned %d", resp.StatusCode)
	}

	var out CryptoPrices
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		out = CryptoPrices{}
	}
	return out, nil
}
