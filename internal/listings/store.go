package listings

import (
	"context"

	"getwealthos-backend/internal/domain"

	"gorm.io/gorm"
)

// ListFilter narrows a listing query. Market is required; SubType and
// ListingMode are optional refinements.
type ListFilter struct {
	Market      domain.MarketType
	SubType     string
	ListingMode string
}

// ListingStore is the remote listing store boundary. Errors are returned
// raw; the service decides the fail-soft/fail-loud policy per direction.
type ListingStore interface {
	List(ctx context.Context, f ListFilter) ([]domain.Listing, error)
	Insert(ctx context.Context, l *domain.Listing) error
}

// GormListingStore is the canonical store (Postgres in production, SQLite
// in tests).
type GormListingStore struct {
	DB *gorm.DB
}

func (s *GormListingStore) List(ctx context.Context, f ListFilter) ([]domain.Listing, error) {
	q := s.DB.WithContext(ctx).Where("market_type = ?", f.Market)
	if f.SubType != "" {
		q = q.Where("sub_type = ?", f.SubType)
	}
	if f.ListingMode != "" {
		q = q.Where("listing_mode = ?", f.ListingMode)
	}
	var out []domain.Listing
	// V7 ids are assigned in insertion order, so the id tiebreak keeps
	// records inserted in the same instant newest first
	if err := q.Order("created_at DESC").Order("listing_id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormListingStore) Insert(ctx context.Context, l *domain.Listing) error {
	return s.DB.WithContext(ctx).Create(l).Error
}
