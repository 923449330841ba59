package domain

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// SpecFields is the per-vertical extra-fields variant stored in the specs
// column. The concrete type is keyed by the listing's MarketType.
type SpecFields interface {
	Market() MarketType
}

// RealEstateSpecs for REAL_ESTATE listings.
type RealEstateSpecs struct {
	SizeSqm  float64 `json:"size_sqm,omitempty"`
	Bedrooms int     `json:"bedrooms,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
}

func (RealEstateSpecs) Market() MarketType { return MarketRealEstate }

// CarSpecs for CARS listings.
type CarSpecs struct {
	Year    int    `json:"year,omitempty"`
	Mileage string `json:"mileage,omitempty"`
	Fuel    string `json:"fuel,omitempty"`
}

func (CarSpecs) Market() MarketType { return MarketCars }

// JobSpecs for JOBS listings. Contract is Remote, Hybrid or On-site.
type JobSpecs struct {
	Company  string `json:"company,omitempty"`
	Contract string `json:"contract,omitempty"`
}

func (JobSpecs) Market() MarketType { return MarketJobs }

// FreelanceSpecs for FREELANCE listings; price is the hourly rate.
type FreelanceSpecs struct {
	Skills []string `json:"skills,omitempty"`
	Rating float64  `json:"rating,omitempty"`
}

func (FreelanceSpecs) Market() MarketType { return MarketFreelance }

// EcommerceSpecs for ECOMMERCE listings.
type EcommerceSpecs struct {
	Category string  `json:"category,omitempty"`
	Seller   string  `json:"seller,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
}

func (EcommerceSpecs) Market() MarketType { return MarketEcommerce }

// TravelSpecs for TRAVEL listings.
type TravelSpecs struct {
	Destinations string `json:"destinations,omitempty"`
	Nights       int    `json:"nights,omitempty"`
}

func (TravelSpecs) Market() MarketType { return MarketTravel }

// CryptoSpecs for CRYPTO P2P listings.
type CryptoSpecs struct {
	Asset          string   `json:"asset,omitempty"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
}

func (CryptoSpecs) Market() MarketType { return MarketCrypto }

// EncodeSpecs serializes a variant for the specs column. A nil variant
// encodes as an empty object.
func EncodeSpecs(s SpecFields) (datatypes.JSON, error) {
	if s == nil {
		return datatypes.JSON("{}"), nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// DecodeSpecs deserializes the specs column into the variant for the given
// market type. Missing or partial data yields zero fields, not an error;
// only genuinely malformed JSON fails.
func DecodeSpecs(m MarketType, raw datatypes.JSON) (SpecFields, error) {
	var target SpecFields
	switch m {
	case MarketRealEstate:
		target = &RealEstateSpecs{}
	case MarketCars:
		target = &CarSpecs{}
	case MarketJobs:
		target = &JobSpecs{}
	case MarketFreelance:
		target = &FreelanceSpecs{}
	case MarketEcommerce:
		target = &EcommerceSpecs{}
	case MarketTravel:
		target = &TravelSpecs{}
	case MarketCrypto:
		target = &CryptoSpecs{}
	default:
		return nil, fmt.Errorf("unknown market type %q", m)
	}
	if len(raw) == 0 {
		return target, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, err
	}
	return target, nil
}
