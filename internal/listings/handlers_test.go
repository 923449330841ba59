package listings

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"getwealthos-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func setupHandlersTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}))
	svc := &Service{Store: &GormListingStore{DB: db}}
	return &Handlers{Service: svc}, db
}

func withUser(app *fiber.App, country string) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  testUserID,
			"fullname": "Test User",
			"email":    "user@test.com",
			"country":  country,
		})
		return c.Next()
	})
}

func TestCreateListingWithoutSession(t *testing.T) {
	h, db := setupHandlersTest(t)
	app := fiber.New()
	app.Post("/create-listing", h.CreateListing)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Villa", "price": 100, "market_type": "REAL_ESTATE",
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	var count int64
	db.Model(&domain.Listing{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateListingSuccess(t *testing.T) {
	h, db := setupHandlersTest(t)
	app := fiber.New()
	withUser(app, "US")
	app.Post("/create-listing", h.CreateListing)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Villa",
		"price":       1200000,
		"market_type": "REAL_ESTATE",
		"images":      []string{"a", "", "b"},
		"created_at":  "2001-01-01T00:00:00Z",
		"specs":       map[string]interface{}{"size_sqm": 450},
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result struct {
		Status string `json:"status"`
		Data   struct {
			OwnerID      string   `json:"owner_id"`
			Images       []string `json:"images"`
			PriceUSD     float64  `json:"price_usd"`
			CreatedAt    string   `json:"created_at"`
			DisplayPrice string   `json:"display_price"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, testUserID, result.Data.OwnerID)
	assert.Equal(t, []string{"a", "b"}, result.Data.Images)
	assert.Equal(t, 1200000.0, result.Data.PriceUSD)
	// created_at is server-assigned; the client value is never trusted
	assert.NotEqual(t, "2001-01-01T00:00:00Z", result.Data.CreatedAt)
	assert.Equal(t, "$1,200,000.00", result.Data.DisplayPrice)

	var count int64
	db.Model(&domain.Listing{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateListingLegacyFieldNames(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	withUser(app, "US")
	app.Post("/create-listing", h.CreateListing)

	// Older clients send "type" and a scalar "image"
	body, _ := json.Marshal(map[string]interface{}{
		"title": "Tesla Model S", "price": 89000, "type": "CARS", "image": "https://cars.example/1.jpg",
	})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var result struct {
		Data struct {
			MarketType string   `json:"market_type"`
			Images     []string `json:"images"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "CARS", result.Data.MarketType)
	assert.Equal(t, []string{"https://cars.example/1.jpg"}, result.Data.Images)
}

func TestCreateListingMissingPrice(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	withUser(app, "US")
	app.Post("/create-listing", h.CreateListing)

	body, _ := json.Marshal(map[string]interface{}{"title": "Villa", "market_type": "REAL_ESTATE"})
	req := httptest.NewRequest("POST", "/create-listing", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetMarketListingsServesSamplesWhenEmpty(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	app.Get("/get-market-listings/:market", h.GetMarketListings)

	req := httptest.NewRequest("GET", "/get-market-listings/real_estate", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result struct {
		Data     []ListingView          `json:"data"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotEmpty(t, result.Data)
	assert.Equal(t, true, result.Metadata["sampled"])
	assert.Equal(t, "Luxury Villa Sea View", result.Data[0].Title)
	assert.NotEmpty(t, result.Data[0].DisplayPrice)
}

func TestGetMarketListingsUnknownMarket(t *testing.T) {
	h, _ := setupHandlersTest(t)
	app := fiber.New()
	app.Get("/get-market-listings/:market", h.GetMarketListings)

	req := httptest.NewRequest("GET", "/get-market-listings/boats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetMarketListingsCountryOverride(t *testing.T) {
	h, db := setupHandlersTest(t)
	require.NoError(t, db.Create(&domain.Listing{
		MarketType: domain.MarketRealEstate, Title: "Villa", PriceUSD: 100,
	}).Error)

	app := fiber.New()
	app.Get("/get-market-listings/:market", h.GetMarketListings)

	req := httptest.NewRequest("GET", "/get-market-listings/REAL_ESTATE?country=SA", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result struct {
		Data     []ListingView          `json:"data"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Data, 1)
	assert.Equal(t, false, result.Metadata["sampled"])
	assert.Equal(t, "SAR", result.Data[0].Currency)
	// 100 USD at 3.75 SAR/USD
	assert.Equal(t, "ر.س375.00", result.Data[0].DisplayPrice)
}

func TestGetSubtypeListings(t *testing.T) {
	h, db := setupHandlersTest(t)
	sub := "apartment"
	require.NoError(t, db.Create(&domain.Listing{
		MarketType: domain.MarketRealEstate, Title: "Flat", PriceUSD: 900, SubType: &sub,
	}).Error)

	app := fiber.New()
	app.Get("/get-subtype-listings/:market/:sub_type", h.GetSubtypeListings)

	req := httptest.NewRequest("GET", "/get-subtype-listings/REAL_ESTATE/apartment", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result struct {
		Data []ListingView `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Flat", result.Data[0].Title)
}
