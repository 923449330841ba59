package listings

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"getwealthos-backend/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/datatypes"
)

// MongoListingStore reads and writes the legacy document-store listings
// collection. Historical documents drifted in shape (`image` scalar vs
// `images` array, `type` vs `market_type`, `price` vs `price_usd`, string
// vs ObjectID ids); reads normalize everything into the canonical Listing.
type MongoListingStore struct {
	Coll *mongo.Collection
}

// NewMongoListingStore connects to the document store and returns the
// adapter over its listings collection.
func NewMongoListingStore(ctx context.Context, uri, dbName string) (*MongoListingStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoListingStore{Coll: client.Database(dbName).Collection("listings")}, nil
}

func (s *MongoListingStore) List(ctx context.Context, f ListFilter) ([]domain.Listing, error) {
	// Legacy documents store the vertical under "type"
	filter := bson.M{"$or": bson.A{
		bson.M{"market_type": string(f.Market)},
		bson.M{"type": string(f.Market)},
	}}
	if f.SubType != "" {
		filter["sub_type"] = f.SubType
	}
	if f.ListingMode != "" {
		filter["listing_mode"] = f.ListingMode
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.Coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Listing
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, NormalizeDocument(doc))
	}
	return out, cur.Err()
}

func (s *MongoListingStore) Insert(ctx context.Context, l *domain.Listing) error {
	if l.ListingID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		l.ListingID = id
	}
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt

	doc := bson.M{
		"listing_id":   l.ListingID.String(),
		"market_type":  string(l.MarketType),
		"listing_mode": l.ListingMode,
		"title":        l.Title,
		"description":  l.Description,
		"price_usd":    l.PriceUSD,
		"location":     l.Location,
		"images":       []string(l.Images),
		"created_at":   l.CreatedAt,
		"updated_at":   l.UpdatedAt,
	}
	if l.OwnerID != nil {
		doc["owner_id"] = l.OwnerID.String()
	}
	if l.SubType != nil {
		doc["sub_type"] = *l.SubType
	}
	if len(l.Specs) > 0 {
		var specs map[string]interface{}
		if err := json.Unmarshal(l.Specs, &specs); err == nil {
			doc["specs"] = specs
		}
	}
	_, err := s.Coll.InsertOne(ctx, doc)
	return err
}

// NormalizeDocument maps one legacy document onto the canonical schema.
// Every historical field spelling is accepted; nothing here errors, since
// partial documents must still display.
func NormalizeDocument(doc bson.M) domain.Listing {
	l := domain.Listing{
		ListingID:   docUUID(doc, "listing_id", "_id"),
		MarketType:  domain.MarketType(docString(doc, "market_type", "type")),
		ListingMode: docString(doc, "listing_mode"),
		Title:       docString(doc, "title"),
		Description: docString(doc, "description"),
		PriceUSD:    docFloat(doc, "price_usd", "price"),
		Location:    docString(doc, "location"),
		Images:      NormalizeImages(docImages(doc)),
		CreatedAt:   docTime(doc, "created_at", "createdAt"),
		UpdatedAt:   docTime(doc, "updated_at", "updatedAt"),
	}
	if st := docString(doc, "sub_type"); st != "" {
		l.SubType = &st
	}
	if owner := docUUIDPtr(doc, "owner_id"); owner != nil {
		l.OwnerID = owner
	}
	if specs, ok := doc["specs"]; ok && specs != nil {
		if b, err := json.Marshal(specs); err == nil {
			l.Specs = datatypes.JSON(b)
		}
	}
	return l
}

// docImages accepts the modern images array or the legacy scalar image.
func docImages(doc bson.M) []string {
	switch v := doc["images"].(type) {
	case bson.A:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	if s, ok := doc["image"].(string); ok && s != "" {
		return []string{s}
	}
	return nil
}

func docString(doc bson.M, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func docFloat(doc bson.M, keys ...string) float64 {
	for _, k := range keys {
		switch v := doc[k].(type) {
		case float64:
			return v
		case int32:
			return float64(v)
		case int64:
			return float64(v)
		case int:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func docTime(doc bson.M, keys ...string) time.Time {
	for _, k := range keys {
		switch v := doc[k].(type) {
		case time.Time:
			return v
		case primitive.DateTime:
			return v.Time()
		}
	}
	return time.Time{}
}

// docUUID resolves an id from either a uuid string or an ObjectID; ObjectIDs
// map to a deterministic name-based uuid so repeated reads stay stable.
func docUUID(doc bson.M, keys ...string) uuid.UUID {
	if p := docUUIDPtr(doc, keys...); p != nil {
		return *p
	}
	return uuid.Nil
}

func docUUIDPtr(doc bson.M, keys ...string) *uuid.UUID {
	for _, k := range keys {
		switch v := doc[k].(type) {
		case string:
			if v == "" {
				continue
			}
			if id, err := uuid.Parse(v); err == nil {
				return &id
			}
			id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(v))
			return &id
		case primitive.ObjectID:
			id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(v.Hex()))
			return &id
		}
	}
	return nil
}
