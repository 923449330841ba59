package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exchangeFixture(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/test-key/latest/USD", r.URL.Path)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func cryptoFixture(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
		assert.Equal(t, coinIDs, r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRefreshRatesReplacesSnapshot(t *testing.T) {
	srv := exchangeFixture(t, http.StatusOK,
		`{"base_code":"USD","conversion_rates":{"USD":1,"SAR":3.75,"JPY":151.2}}`)
	svc := &Service{
		Exchange: &ExchangeRateClient{BaseURL: srv.URL, APIKey: "test-key"},
		Rdb:      testRedis(t),
	}

	err := svc.RefreshRates(context.Background())
	require.NoError(t, err)

	rates := svc.Rates(context.Background())
	require.NotNil(t, rates)
	assert.Equal(t, "USD", rates.Base)
	assert.Equal(t, 3.75, rates.ConversionRates["SAR"])
	assert.WithinDuration(t, time.Now().UTC(), rates.FetchedAt, 5*time.Second)
	assert.WithinDuration(t, time.Now().UTC(), svc.LastFetched(context.Background()), 5*time.Second)
}

func TestRefreshRatesToleratesSparseProviderBody(t *testing.T) {
	srv := exchangeFixture(t, http.StatusOK, `{}`)
	svc := &Service{Exchange: &ExchangeRateClient{BaseURL: srv.URL, APIKey: "test-key"}}

	err := svc.RefreshRates(context.Background())
	require.NoError(t, err)

	rates := svc.Rates(context.Background())
	require.NotNil(t, rates)
	assert.Equal(t, "USD", rates.Base)
	assert.NotNil(t, rates.ConversionRates)
	assert.Empty(t, rates.ConversionRates)
}

func TestRefreshRatesKeepsPreviousSnapshotOnProviderError(t *testing.T) {
	srv := exchangeFixture(t, http.StatusOK,
		`{"base_code":"USD","conversion_rates":{"USD":1}}`)
	svc := &Service{Exchange: &ExchangeRateClient{BaseURL: srv.URL, APIKey: "test-key"}}
	require.NoError(t, svc.RefreshRates(context.Background()))

	broken := exchangeFixture(t, http.StatusTooManyRequests, `{"result":"error"}`)
	svc.Exchange.BaseURL = broken.URL

	err := svc.RefreshRates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	rates := svc.Rates(context.Background())
	require.NotNil(t, rates)
	assert.Equal(t, 1.0, rates.ConversionRates["USD"])
}

func TestRefreshCryptoReplacesSnapshot(t *testing.T) {
	srv := cryptoFixture(t, http.StatusOK,
		`{"bitcoin":{"usd":67000,"usd_24h_change":1.2},"ethereum":{"usd":3500,"usd_24h_change":-0.4}}`)
	svc := &Service{Crypto: &CryptoPriceClient{BaseURL: srv.URL}, Rdb: testRedis(t)}

	err := svc.RefreshCrypto(context.Background())
	require.NoError(t, err)

	prices := svc.CryptoQuotes(context.Background())
	require.NotNil(t, prices)
	assert.Equal(t, 67000.0, prices["bitcoin"]["usd"])
	assert.Equal(t, -0.4, prices["ethereum"]["usd_24h_change"])
}

func TestRatesFallsBackToRedisOnColdProcess(t *testing.T) {
	srv := exchangeFixture(t, http.StatusOK,
		`{"base_code":"USD","conversion_rates":{"EGP":48.5}}`)
	rdb := testRedis(t)

	warm := &Service{Exchange: &ExchangeRateClient{BaseURL: srv.URL, APIKey: "test-key"}, Rdb: rdb}
	require.NoError(t, warm.RefreshRates(context.Background()))

	// A fresh instance sharing the same Redis sees the snapshot without polling.
	cold := &Service{Rdb: rdb}
	rates := cold.Rates(context.Background())
	require.NotNil(t, rates)
	assert.Equal(t, 48.5, rates.ConversionRates["EGP"])
}

func TestRatesNilWhenNothingCachedAnywhere(t *testing.T) {
	svc := &Service{Rdb: testRedis(t)}
	assert.Nil(t, svc.Rates(context.Background()))
	assert.Nil(t, svc.CryptoQuotes(context.Background()))
	assert.True(t, svc.LastFetched(context.Background()).IsZero())
}
