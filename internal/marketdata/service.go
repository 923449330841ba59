package marketdata

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis keys for the shared market-data cache (read by health too).
const (
	KeyExchangeRates = "market:exchange_rates"
	KeyCryptoPrices  = "market:crypto_prices"
)

// cacheTTL bounds how long a snapshot survives in Redis without a refresh.
const cacheTTL = time.Hour

// Service polls the market-data providers on a fixed interval and serves
// the last snapshot. Each tick simply replaces the previous value; a
// failed tick keeps it, and a stale read during the interval is fine.
// There is no retry and no overlap guard: the period is much larger than
// a provider round trip.
type Service struct {
	Exchange *ExchangeRateClient
	Crypto   *CryptoPriceClient
	Rdb      *redis.Client
	Base     string

	mu     sync.RWMutex
	rates  *ExchangeRates
	crypto CryptoPrices
}

// RefreshRates fetches a fresh exchange-rate snapshot and replaces the
// cached one in memory and Redis.
func (s *Service) RefreshRates(ctx context.Context) error {
	rates, err := s.Exchange.Latest(ctx, s.Base)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rates = rates
	s.mu.Unlock()

	if s.Rdb != nil {
		if b, err := json.Marshal(rates); err == nil {
			s.Rdb.Set(ctx, KeyExchangeRates, b, cacheTTL)
		}
	}
	return nil
}

// RefreshCrypto fetches fresh crypto quotes and replaces the cached ones.
func (s *Service) RefreshCrypto(ctx context.Context) error {
	prices, err := s.Crypto.SimplePrices(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.crypto = prices
	s.mu.Unlock()

	if s.Rdb != nil {
		if b, err := json.Marshal(prices); err == nil {
			s.Rdb.Set(ctx, KeyCryptoPrices, b, cacheTTL)
		}
	}
	return nil
}

// Rates returns the cached snapshot, falling back to Redis when this
// process has not polled yet (fresh serverless instance). Nil means no
// snapshot exists anywhere.
func (s *Service) Rates(ctx context.Context) *ExchangeRates {
	s.mu.RLock()
	rates := s.rates
	s.mu.RUnlock()
	if rates != nil {
		return rates
	}
	if s.Rdb == nil {
		return nil
	}
	b, err := s.Rdb.Get(ctx, KeyExchangeRates).Bytes()
	if err != nil {
		return nil
	}
	var out ExchangeRates
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	s.mu.Lock()
	s.rates = &out
	s.mu.Unlock()
	return &out
}

// CryptoQuotes returns the cached crypto snapshot, or nil when none exists.
func (s *Service) CryptoQuotes(ctx context.Context) CryptoPrices {
	s.mu.RLock()
	prices := s.crypto
	s.mu.RUnlock()
	if prices != nil {
		return prices
	}
	if s.Rdb == nil {
		return nil
	}
	b, err := s.Rdb.Get(ctx, KeyCryptoPrices).Bytes()
	if err != nil {
		return nil
	}
	var out CryptoPrices
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	s.mu.Lock()
	s.crypto = out
	s.mu.Unlock()
	return out
}

// LastFetched reports when the in-scope exchange snapshot was taken; zero
// when none exists. Used by the health endpoint.
func (s *Service) LastFetched(ctx context.Context) time.Time {
	if rates := s.Rates(ctx); rates != nil {
		return rates.FetchedAt
	}
	return time.Time{}
}

// StartPolling refreshes both feeds immediately, then on every tick until
// the context is cancelled.
func (s *Service) StartPolling(ctx context.Context, interval time.Duration) {
	refresh := func() {
		if err := s.RefreshRates(ctx); err != nil {
			log.Warn().Err(err).Msg("exchange rate poll failed, keeping previous snapshot")
		}
		if err := s.RefreshCrypto(ctx); err != nil {
			log.Warn().Err(err).Msg("crypto price poll failed, keeping previous snapshot")
		}
	}
	go func() {
		refresh()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()
}
