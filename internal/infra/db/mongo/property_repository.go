package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/property"
)

type PropertyCatalog struct {
	col *mongo.Collection
}

func NewPropertyCatalog(db *mongo.Database) *PropertyCatalog {
	return &PropertyCatalog{col: db.Collection("properties")}
}

func (c *PropertyCatalog) FindByID(ctx context.Context, id string) (*property.Property, error) {
	var doc propertyDocument
	if err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, property.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// Put upserts a catalog entry; used by the fixtures loader.
func (c *PropertyCatalog) Put(ctx context.Context, prop *property.Property) error {
	doc := propertyDocument{
		ID:               prop.ID,
		Title:            prop.Title,
		NightlyRateCents: prop.NightlyRateCents,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := c.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

type propertyDocument struct {
	ID               string `bson:"_id"`
	Title            string `bson:"title"`
	NightlyRateCents int64  `bson:"nightly_rate_cents"`
}

func (d propertyDocument) toEntity() *property.Property {
	return &property.Property{
		ID:               d.ID,
		Title:            d.Title,
		NightlyRateCents: d.NightlyRateCents,
	}
}

var _ property.Catalog = (*PropertyCatalog)(nil)
