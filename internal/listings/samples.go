package listings

import (
	"getwealthos-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sample listings keep market pages populated before any real inventory
// exists. They mirror the launch-era showcase content; IDs are fixed so
// clients can key on them across reloads.

func mustSpecs(s domain.SpecFields) datatypes.JSON {
	b, err := domain.EncodeSpecs(s)
	if err != nil {
		panic(err)
	}
	return b
}

func sampleID(n byte) uuid.UUID {
	return uuid.UUID{0x5a, 0x3e, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, n}
}

var samples = map[domain.MarketType][]domain.Listing{
	domain.MarketRealEstate: {
		{
			ListingID:  sampleID(0x01),
			MarketType: domain.MarketRealEstate,
			Title:      "Luxury Villa Sea View",
			PriceUSD:   1200000,
			Location:   "Dubai, UAE",
			Images:     domain.ImageList{"https://images.unsplash.com/photo-1512917774080-9991f1c4c750?w=800"},
			Specs:      mustSpecs(&domain.RealEstateSpecs{SizeSqm: 450, Lat: 25.2, Lng: 55.2}),
		},
		{
			ListingID:  sampleID(0x02),
			MarketType: domain.MarketRealEstate,
			Title:      "Modern Penthouse",
			PriceUSD:   850000,
			Location:   "New York, USA",
			Images:     domain.ImageList{"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800"},
			Specs:      mustSpecs(&domain.RealEstateSpecs{SizeSqm: 200, Lat: 40.7, Lng: -74.0}),
		},
	},
	domain.MarketCars: {
		{
			ListingID:  sampleID(0x03),
			MarketType: domain.MarketCars,
			Title:      "Tesla Model S Plaid",
			PriceUSD:   89000,
			Location:   "Dubai",
			Images:     domain.ImageList{"https://images.unsplash.com/photo-1560958089-b8a1929cea89?w=800"},
			Specs:      mustSpecs(&domain.CarSpecs{Year: 2024, Mileage: "0 km", Fuel: "Electric"}),
		},
		{
			ListingID:  sampleID(0x04),
			MarketType: domain.MarketCars,
			Title:      "Porsche 911 Carrera",
			PriceUSD:   125000,
			Location:   "London",
			Images:     domain.ImageList{"https://images.unsplash.com/photo-1503376780353-7e6692767b70?w=800"},
			Specs:      mustSpecs(&domain.CarSpecs{Year: 2023, Mileage: "5,000 km", Fuel: "Petrol"}),
		},
	},
	domain.MarketEcommerce: {
		{
			ListingID:  sampleID(0x05),
			MarketType: domain.MarketEcommerce,
			Title:      "iPhone 15 Pro Max - 256GB",
			PriceUSD:   1199,
			Images:     domain.ImageList{"https://picsum.photos/seed/iphone/400/400"},
			Specs:      mustSpecs(&domain.EcommerceSpecs{Category: "Electronics", Rating: 4.9, Seller: "Apple Store"}),
		},
		{
			ListingID:  sampleID(0x06),
			MarketType: domain.MarketEcommerce,
			Title:      "Ergonomic Office Chair",
			PriceUSD:   299,
			Images:     domain.ImageList{"https://picsum.photos/seed/chair/400/400"},
			Specs:      mustSpecs(&domain.EcommerceSpecs{Category: "Furniture", Rating: 4.7, Seller: "HomeStyle"}),
		},
		{
			ListingID:  sampleID(0x07),
			MarketType: domain.MarketEcommerce,
			Title:      "Professional DSLR Camera",
			PriceUSD:   1500,
			Images:     domain.ImageList{"https://picsum.photos/seed/camera/400/400"},
			Specs:      mustSpecs(&domain.EcommerceSpecs{Category: "Electronics", Rating: 4.8, Seller: "PhotoPro"}),
		},
		{
			ListingID:  sampleID(0x08),
			MarketType: domain.MarketEcommerce,
			Title:      "Organic Skin Care Set",
			PriceUSD:   85,
			Images:     domain.ImageList{"https://picsum.photos/seed/cream/400/400"},
			Specs:      mustSpecs(&domain.EcommerceSpecs{Category: "Beauty", Rating: 4.5, Seller: "GlowLife"}),
		},
	},
	domain.MarketJobs: {
		{
			ListingID:   sampleID(0x09),
			MarketType:  domain.MarketJobs,
			Title:       "Senior React Developer",
			Description: "$120k - $160k",
			PriceUSD:    120000,
			Specs:       mustSpecs(&domain.JobSpecs{Company: "TechFlow Global", Contract: "Remote"}),
		},
		{
			ListingID:   sampleID(0x0a),
			MarketType:  domain.MarketJobs,
			Title:       "Marketing Manager",
			Description: "$80k - $110k",
			PriceUSD:    80000,
			Specs:       mustSpecs(&domain.JobSpecs{Company: "BrandBoost", Contract: "Hybrid"}),
		},
		{
			ListingID:   sampleID(0x0b),
			MarketType:  domain.MarketJobs,
			Title:       "Project Coordinator",
			Description: "$70k - $90k",
			PriceUSD:    70000,
			Specs:       mustSpecs(&domain.JobSpecs{Company: "BuildWise", Contract: "On-site"}),
		},
		{
			ListingID:   sampleID(0x0c),
			MarketType:  domain.MarketJobs,
			Title:       "AI Research Engineer",
			Description: "$200k+",
			PriceUSD:    200000,
			Specs:       mustSpecs(&domain.JobSpecs{Company: "MindCore", Contract: "Remote"}),
		},
	},
	domain.MarketFreelance: {
		{
			ListingID:  sampleID(0x0d),
			MarketType: domain.MarketFreelance,
			Title:      "Full Stack Engineer — Ahmed K.",
			PriceUSD:   45,
			Images:     domain.ImageList{"https://i.pravatar.cc/150?u=ahmed"},
			Specs:      mustSpecs(&domain.FreelanceSpecs{Skills: []string{"React", "NodeJS", "Web3"}, Rating: 4.9}),
		},
		{
			ListingID:  sampleID(0x0e),
			MarketType: domain.MarketFreelance,
			Title:      "UI/UX Designer — Sarah M.",
			PriceUSD:   35,
			Images:     domain.ImageList{"https://i.pravatar.cc/150?u=sarah"},
			Specs:      mustSpecs(&domain.FreelanceSpecs{Skills: []string{"Figma", "Adobe XD", "Mobile"}, Rating: 5.0}),
		},
		{
			ListingID:  sampleID(0x0f),
			MarketType: domain.MarketFreelance,
			Title:      "AI Specialist — John D.",
			PriceUSD:   60,
			Images:     domain.ImageList{"https://i.pravatar.cc/150?u=john"},
			Specs:      mustSpecs(&domain.FreelanceSpecs{Skills: []string{"Python", "PyTorch", "Gemini"}, Rating: 4.8}),
		},
	},
	domain.MarketTravel: {
		{
			ListingID:  sampleID(0x10),
			MarketType: domain.MarketTravel,
			Title:      "Hajj & Umrah 2024",
			PriceUSD:   2500,
			Location:   "Mecca & Medina",
			Images:     domain.ImageList{"https://picsum.photos/seed/kaaba/800/500"},
			Specs:      mustSpecs(&domain.TravelSpecs{Destinations: "Mecca & Medina"}),
		},
		{
			ListingID:  sampleID(0x11),
			MarketType: domain.MarketTravel,
			Title:      "Europe Summer Tour",
			PriceUSD:   1800,
			Location:   "Paris, Rome, Zurich",
			Images:     domain.ImageList{"https://picsum.photos/seed/paris/800/500"},
			Specs:      mustSpecs(&domain.TravelSpecs{Destinations: "Paris, Rome, Zurich"}),
		},
		{
			ListingID:  sampleID(0x12),
			MarketType: domain.MarketTravel,
			Title:      "Digital Nomad Visa",
			PriceUSD:   450,
			Location:   "Bali, Indonesia",
			Images:     domain.ImageList{"https://picsum.photos/seed/bali/800/500"},
			Specs:      mustSpecs(&domain.TravelSpecs{Destinations: "Bali, Indonesia"}),
		},
	},
	domain.MarketCrypto: {
		{
			ListingID:  sampleID(0x13),
			MarketType: domain.MarketCrypto,
			Title:      "Sell BTC — Bank Transfer",
			PriceUSD:   71245,
			Specs:      mustSpecs(&domain.CryptoSpecs{Asset: "bitcoin", PaymentMethods: []string{"bank_transfer"}}),
		},
		{
			ListingID:  sampleID(0x14),
			MarketType: domain.MarketCrypto,
			Title:      "Buy USDT — Instant",
			PriceUSD:   1,
			Specs:      mustSpecs(&domain.CryptoSpecs{Asset: "tether", PaymentMethods: []string{"bank_transfer", "cash"}}),
		},
	},
}

// SamplesFor returns the static fallback listings for a market. The result
// is a copy; callers may decorate it freely.
func SamplesFor(market domain.MarketType) []domain.Listing {
	src := samples[market]
	out := make([]domain.Listing, len(src))
	copy(out, src)
	return out
}
