package cache

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"ohlcv_gateway/internal/feature/marketdata/domain/entity"
)

// cacheDocument is the MongoDB document shape for one cached record set.
type cacheDocument struct {
	ID                string `bson:"_id"`
	Symbol            string `bson:"symbol"`
	FromDate          string `bson:"fromDate"`
	ToDate            string `bson:"toDate"`
	Kind              string `bson:"kind"`
	SerializedRecords string `bson:"serializedRecords"`
}

func newCacheDocument(key entity.CacheKey, payload []byte) cacheDocument {
	return cacheDocument{
		ID:                key.String(),
		Symbol:            key.Symbol,
		FromDate:          key.From.Format(entity.DateLayout),
		ToDate:            key.To.Format(entity.DateLayout),
		Kind:              string(key.Kind),
		SerializedRecords: string(payload),
	}
}

// MongoBackend stores one document per cache key in a collection.
// Writes replace the whole document (last write wins).
type MongoBackend struct {
	coll *mongo.Collection
}

var _ Backend = (*MongoBackend)(nil)

// NewMongoBackend returns a backend over coll.
func NewMongoBackend(coll *mongo.Collection) *MongoBackend {
	return &MongoBackend{coll: coll}
}

// Name implements Backend.
func (m *MongoBackend) Name() string { return "mongo" }

// Get implements Backend.
func (m *MongoBackend) Get(ctx context.Context, key entity.CacheKey) ([]byte, bool, error) {
	var doc cacheDocument
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.SerializedRecords), true, nil
}

// Put implements Backend.
func (m *MongoBackend) Put(ctx context.Context, key entity.CacheKey, payload []byte) error {
	doc := newCacheDocument(key, payload)
	_, err := m.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.ID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
