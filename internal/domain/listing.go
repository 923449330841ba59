package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MarketType is the marketplace vertical a listing belongs to.
type MarketType string

const (
	MarketRealEstate MarketType = "REAL_ESTATE"
	MarketCrypto     MarketType = "CRYPTO"
	MarketJobs       MarketType = "JOBS"
	MarketFreelance  MarketType = "FREELANCE"
	MarketEcommerce  MarketType = "ECOMMERCE"
	MarketTravel     MarketType = "TRAVEL"
	MarketCars       MarketType = "CARS"
)

// MarketTypes lists every supported vertical, in nav order.
var MarketTypes = []MarketType{
	MarketRealEstate,
	MarketCrypto,
	MarketCars,
	MarketJobs,
	MarketEcommerce,
	MarketFreelance,
	MarketTravel,
}

// Valid reports whether m is a known vertical.
func (m MarketType) Valid() bool {
	for _, known := range MarketTypes {
		if m == known {
			return true
		}
	}
	return false
}

// Listing modes for verticals that distinguish them (real estate, cars).
const (
	ModeSale = "sale"
	ModeRent = "rent"
)

// MaxListingImages caps the image gallery per listing.
const MaxListingImages = 6

// ImageList stores the images column as JSON but behaves as a string slice
// in Go and marshals to a plain array in API responses.
type ImageList []string

// MarshalJSON sends images as [] rather than null when empty.
func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner for reading from the json column.
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	default:
		return errors.New("unsupported type for ImageList")
	}
}

// Value implements driver.Valuer for writing to the json column.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Listing is the canonical listing record shared by every vertical.
// Prices are stored in USD regardless of display currency.
type Listing struct {
	ListingID   uuid.UUID      `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	OwnerID     *uuid.UUID     `gorm:"column:owner_id;type:uuid" json:"owner_id"`
	MarketType  MarketType     `gorm:"column:market_type;type:varchar(20);not null;index" json:"market_type"`
	SubType     *string        `gorm:"column:sub_type" json:"sub_type"`
	ListingMode string         `gorm:"column:listing_mode;type:varchar(10)" json:"listing_mode"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	PriceUSD    float64        `gorm:"column:price_usd;type:decimal(18,2);not null" json:"price_usd"`
	Location    string         `gorm:"column:location" json:"location"`
	Images      ImageList      `gorm:"column:images;type:json" json:"images"`
	Specs       datatypes.JSON `gorm:"column:specs;type:json" json:"specs"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets listing_id when not already set. V7 ids are
// time-ordered, so the id doubles as an insertion-order surrogate when
// created_at timestamps collide.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		l.ListingID = id
	}
	return nil
}
