package app

import (
	"context"
	"net/http"

	"getwealthos-backend/internal/auth"
	"getwealthos-backend/internal/config"
	"getwealthos-backend/internal/health"
	"getwealthos-backend/internal/infrastructure/database"
	"getwealthos-backend/internal/listings"
	"getwealthos-backend/internal/marketdata"
	"getwealthos-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route registration.
// Vercel will invoke the returned handler via adaptor.
func CreateApp(cfg *config.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis); need Redis client for health marker too
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, err
	}
	app.Use(sessionHandler)

	// Health request marker (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Response formatter (inject helpers)
	app.Use(middleware.ResponseFormatter())

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Database (optional in tests; auth and postgres listings need it)
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// Market data poller (exchange rates + crypto quotes)
	marketService := &marketdata.Service{
		Exchange: &marketdata.ExchangeRateClient{BaseURL: cfg.ExchangeRateURL, APIKey: cfg.ExchangeRateKey},
		Crypto:   &marketdata.CryptoPriceClient{BaseURL: cfg.CoinGeckoURL},
		Rdb:      rdb,
		Base:     "USD",
	}
	if cfg.ExchangeRateKey != "" {
		marketService.StartPolling(context.Background(), cfg.RatesPollInterval)
	}

	// --- Routes (no auth) ---
	var dbPinger health.DBPinger
	if db != nil {
		dbPinger = &gormPinger{db: db}
	}
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             dbPinger,
		Market:         marketService,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", healthHandlers.Reset)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/errors", healthHandlers.Errors)

	// Auth: POST register, POST login, GET me, DELETE logout
	authHandlers := &auth.Handlers{
		DB:        db,
		Rdb:       rdb,
		Config:    sessionCfg,
		JWTSecret: cfg.JWTSecret,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// Market data (public)
	marketHandlers := &marketdata.Handlers{Service: marketService}
	marketGroup := app.Group("/api/v1/market")
	marketGroup.Get("/exchange-rates", marketHandlers.GetExchangeRates)
	marketGroup.Get("/crypto-prices", marketHandlers.GetCryptoPrices)

	// Listings: reads are public, create requires auth
	store, err := listingStore(cfg, db)
	if err != nil {
		return nil, err
	}
	listingsHandlers := &listings.Handlers{Service: &listings.Service{Store: store}}
	verifyToken := func(token string) (map[string]interface{}, error) {
		return auth.ParseToken(cfg.JWTSecret, token)
	}
	listingsGroup := app.Group("/api/v1/listings")
	listingsGroup.Get("/get-market-listings/:market", listingsHandlers.GetMarketListings)
	listingsGroup.Get("/get-subtype-listings/:market/:sub_type", listingsHandlers.GetSubtypeListings)
	listingsGroup.Post("/create-listing", middleware.RequireAuth(verifyToken), listingsHandlers.CreateListing)

	return app, nil
}

// listingStore picks the listing backend: Mongo for the legacy cluster,
// otherwise the relational store. A nil DB (no DATABASE_URL) leaves reads
// empty and the sample fallback takes over.
func listingStore(cfg *config.Config, db *gorm.DB) (listings.ListingStore, error) {
	if cfg.ListingsBackend == "mongo" && cfg.MongoURI != "" {
		store, err := listings.NewMongoListingStore(context.Background(), cfg.MongoURI, "getwealthos")
		if err != nil {
			return nil, err
		}
		log.Info().Msg("listings backed by mongo")
		return store, nil
	}
	if db == nil {
		return nil, nil
	}
	return &listings.GormListingStore{DB: db}, nil
}

type gormPinger struct{ db *gorm.DB }

func (g *gormPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Handler returns an http.Handler for Vercel (Fiber app as net/http handler).
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
