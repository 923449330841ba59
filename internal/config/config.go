package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	JWTSecret           string
	DatabaseURL         string
	RedisURL            string
	MongoURI            string // set with LISTINGS_BACKEND=mongo to read the legacy cluster
	ListingsBackend     string // "postgres" (default) or "mongo"
	ExchangeRateKey     string
	ExchangeRateURL     string
	CoinGeckoURL        string
	RatesPollInterval   time.Duration
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL_DEV")
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = viper.GetString("SESSION_SECRET")
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		JWTSecret:           jwtSecret,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		MongoURI:            viper.GetString("MONGODB_URI"),
		ListingsBackend:     listingsBackend(viper.GetString("LISTINGS_BACKEND")),
		ExchangeRateKey:     viper.GetString("EXCHANGERATE_KEY"),
		ExchangeRateURL:     withDefault(viper.GetString("EXCHANGERATE_URL"), "https://v6.exchangerate-api.com"),
		CoinGeckoURL:        withDefault(viper.GetString("COINGECKO_URL"), "https://api.coingecko.com"),
		RatesPollInterval:   pollInterval(viper.GetString("RATES_POLL_INTERVAL")),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}

func listingsBackend(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "mongo") {
		return "mongo"
	}
	return "postgres"
}

func withDefault(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}

func pollInterval(s string) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil && d > 0 {
		return d
	}
	return time.Hour
}
