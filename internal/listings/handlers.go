package listings

import (
	"encoding/json"
	"errors"
	"strings"

	"getwealthos-backend/internal/currency"
	"getwealthos-backend/internal/domain"
	"getwealthos-backend/internal/middleware"
	"getwealthos-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// ListingView is a listing decorated with its localized display price.
type ListingView struct {
	domain.Listing
	DisplayPrice string `json:"display_price"`
	Currency     string `json:"currency"`
}

// GET /api/v1/listings/get-market-listings/:market
// Optional query: sub_type, mode, country, lang. Empty results are replaced
// with the static sample catalog so market pages never render blank.
func (h *Handlers) GetMarketListings(c *fiber.Ctx) error {
	market := domain.MarketType(strings.ToUpper(c.Params("market")))
	if !market.Valid() {
		return response.Error(c, "Unknown market type", fiber.StatusBadRequest, nil)
	}

	items := h.Service.ListByMarket(c.Context(), ListFilter{
		Market:      market,
		SubType:     c.Query("sub_type"),
		ListingMode: c.Query("mode"),
	})
	sampled := false
	if len(items) == 0 {
		items = SamplesFor(market)
		sampled = true
	}

	entry, lang := displayContext(c)
	return response.Success(c, "Listings fetched successfully", renderListings(items, entry, lang), fiber.Map{
		"market":   market,
		"sampled":  sampled,
		"currency": entry.Currency,
	})
}

// GET /api/v1/listings/get-subtype-listings/:market/:sub_type
func (h *Handlers) GetSubtypeListings(c *fiber.Ctx) error {
	market := domain.MarketType(strings.ToUpper(c.Params("market")))
	if !market.Valid() {
		return response.Error(c, "Unknown market type", fiber.StatusBadRequest, nil)
	}
	subType := c.Params("sub_type")
	if subType == "" {
		return response.Error(c, "sub_type is required", fiber.StatusBadRequest, nil)
	}

	items := h.Service.ListBySubtype(c.Context(), market, subType)
	entry, lang := displayContext(c)
	return response.Success(c, "Listings fetched successfully", renderListings(items, entry, lang), fiber.Map{
		"market":   market,
		"sub_type": subType,
		"currency": entry.Currency,
	})
}

// createListingBody accepts the canonical field names plus the legacy
// spellings still sent by older clients (type, scalar image). Any
// client-supplied created_at is parsed and dropped.
type createListingBody struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       *float64        `json:"price"`
	Location    string          `json:"location"`
	MarketType  string          `json:"market_type"`
	LegacyType  string          `json:"type"`
	SubType     string          `json:"sub_type"`
	ListingMode string          `json:"listing_mode"`
	Images      []string        `json:"images"`
	LegacyImage string          `json:"image"`
	Specs       json.RawMessage `json:"specs"`
	CreatedAt   string          `json:"created_at"`
}

// POST /api/v1/listings/create-listing — 201 with the persisted record.
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body createListingBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Price == nil {
		return response.Error(c, "Missing required field: price", fiber.StatusBadRequest, nil)
	}

	market := body.MarketType
	if market == "" {
		market = body.LegacyType
	}
	images := body.Images
	if len(images) == 0 && body.LegacyImage != "" {
		images = []string{body.LegacyImage}
	}

	listing, err := h.Service.Create(c.Context(), principalFrom(c), CreateListingInput{
		Title:       body.Title,
		Description: body.Description,
		Price:       *body.Price,
		Location:    body.Location,
		MarketType:  domain.MarketType(strings.ToUpper(market)),
		SubType:     body.SubType,
		ListingMode: body.ListingMode,
		Images:      images,
		Specs:       body.Specs,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		case errors.Is(err, ErrValidation):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, ErrRemoteWrite):
			return response.Error(c, err.Error(), fiber.StatusBadGateway, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	entry, lang := displayContext(c)
	return response.SuccessCreated(c, "Listing created successfully", renderListing(*listing, entry, lang), nil)
}

// --- helpers ---

// displayContext resolves the active rate entry (query country overrides
// the session user's) and language for price rendering.
func displayContext(c *fiber.Ctx) (currency.RateEntry, string) {
	code := c.Query("country")
	if code == "" {
		if m, ok := middleware.GetUser(c).(map[string]interface{}); ok {
			code, _ = m["country"].(string)
		}
	}
	lang := c.Query("lang", "en")
	return currency.Lookup(code), lang
}

func renderListing(l domain.Listing, entry currency.RateEntry, lang string) ListingView {
	return ListingView{
		Listing:      l,
		DisplayPrice: currency.Format(l.PriceUSD, entry, lang),
		Currency:     entry.Currency,
	}
}

func renderListings(items []domain.Listing, entry currency.RateEntry, lang string) []ListingView {
	views := make([]ListingView, 0, len(items))
	for _, l := range items {
		views = append(views, renderListing(l, entry, lang))
	}
	return views
}

func principalFrom(c *fiber.Ctx) *Principal {
	m, ok := middleware.GetUser(c).(map[string]interface{})
	if !ok {
		return nil
	}
	idStr, _ := m["user_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil
	}
	country, _ := m["country"].(string)
	return &Principal{UserID: id, CountryCode: country}
}
