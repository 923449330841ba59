package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"getwealthos-backend/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// Principal is the authenticated actor creating a listing.
type Principal struct {
	UserID      uuid.UUID
	CountryCode string
}

// CreateListingInput is a listing draft. Price is the canonical USD amount;
// multi-currency input is not accepted.
type CreateListingInput struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Price       float64           `json:"price" validate:"gte=0"`
	Location    string            `json:"location"`
	MarketType  domain.MarketType `json:"market_type" validate:"required"`
	SubType     string            `json:"sub_type"`
	ListingMode string            `json:"listing_mode" validate:"omitempty,oneof=sale rent"`
	Images      []string          `json:"images"`
	Specs       json.RawMessage   `json:"specs"`
}

// Service is the listing query facade. Reads are fail-soft (store errors
// are logged and an empty slice returned); writes are fail-loud.
type Service struct {
	Store ListingStore
}

// ListByMarket returns listings for a vertical, newest first. A store or
// transport failure yields an empty slice, never an error; callers
// substitute placeholder content for empty results.
func (s *Service) ListByMarket(ctx context.Context, f ListFilter) []domain.Listing {
	if !f.Market.Valid() || s.Store == nil {
		return []domain.Listing{}
	}
	out, err := s.Store.List(ctx, f)
	if err != nil {
		log.Warn().Err(err).Str("market", string(f.Market)).Msg("listing fetch failed, serving empty result")
		return []domain.Listing{}
	}
	if out == nil {
		out = []domain.Listing{}
	}
	return out
}

// ListBySubtype narrows ListByMarket to one sub-type.
func (s *Service) ListBySubtype(ctx context.Context, market domain.MarketType, subType string) []domain.Listing {
	return s.ListByMarket(ctx, ListFilter{Market: market, SubType: subType})
}

// Create validates and persists a listing draft for the authenticated
// principal. The owner and creation timestamp are stamped server-side;
// client-supplied values for either are never trusted.
func (s *Service) Create(ctx context.Context, principal *Principal, in CreateListingInput) (*domain.Listing, error) {
	if principal == nil || principal.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !in.MarketType.Valid() {
		return nil, fmt.Errorf("%w: unknown market type %q", ErrValidation, in.MarketType)
	}
	specVariant, err := domain.DecodeSpecs(in.MarketType, []byte(in.Specs))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed specs: %v", ErrValidation, err)
	}
	specs, err := domain.EncodeSpecs(specVariant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ownerID := principal.UserID
	listing := &domain.Listing{
		OwnerID:     &ownerID,
		MarketType:  in.MarketType,
		ListingMode: in.ListingMode,
		Title:       in.Title,
		Description: in.Description,
		PriceUSD:    in.Price,
		Location:    in.Location,
		Images:      NormalizeImages(in.Images),
		Specs:       specs,
	}
	if st := strings.TrimSpace(in.SubType); st != "" {
		listing.SubType = &st
	}

	if s.Store == nil {
		return nil, fmt.Errorf("%w: no listing store configured", ErrRemoteWrite)
	}
	if err := s.Store.Insert(ctx, listing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}
	return listing, nil
}

// NormalizeImages drops blank entries and keeps the first MaxListingImages
// URLs in their original order.
func NormalizeImages(in []string) domain.ImageList {
	out := make(domain.ImageList, 0, len(in))
	for _, url := range in {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		out = append(out, url)
		if len(out) == domain.MaxListingImages {
			break
		}
	}
	return out
}
