package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository is a MongoDB implementation of DocumentRepository.
type MongoRepository struct {
	db *mongo.Database
}

// NewMongoRepository creates a new instance of MongoRepository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		db: db,
	}
}

// Create validates the record and inserts it into the named collection.
func (r *MongoRepository) Create(ctx context.Context, collection string, record interface{}) (string, error) {
	if err := validateRecord(record); err != nil {
		return "", err
	}
	res, err := r.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected id type %T from insert into %s", res.InsertedID, collection)
	}
	return oid.Hex(), nil
}

// Query returns up to limit documents matching the filter, in the store's
// natural (insertion) order.
func (r *MongoRepository) Query(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.db.Collection(collection).Find(ctx, buildQuery(filter), findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	documents := make([]Document, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document from %s: %w", collection, err)
		}
		documents = append(documents, normalizeID(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error reading %s: %w", collection, err)
	}
	return documents, nil
}

// GetByID returns the document with the given hex id, or ErrNotFound.
func (r *MongoRepository) GetByID(ctx context.Context, collection string, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid document id %q: %w", id, err)
	}

	var doc bson.M
	err = r.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s from %s: %w", id, collection, err)
	}
	return normalizeID(doc), nil
}

// FindOne returns the first document matching the filter, or ErrNotFound.
func (r *MongoRepository) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	var doc bson.M
	err := r.db.Collection(collection).FindOne(ctx, buildQuery(filter)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document in %s: %w", collection, err)
	}
	return normalizeID(doc), nil
}

// UpdateByID overwrites the given fields of an existing document. Fields not
// named are left untouched, so callers own what gets preserved.
func (r *MongoRepository) UpdateByID(ctx context.Context, collection string, id string, fields Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", id, err)
	}

	res, err := r.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("failed to update document %s in %s: %w", id, collection, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// buildQuery translates a Filter into the store's native query dialect.
func buildQuery(filter Filter) bson.M {
	query := bson.M{}
	for field, value := range filter.Match {
		query[field] = value
	}
	if filter.Term != "" {
		regex := bson.M{"$regex": filter.Term, "$options": "i"}
		or := make([]bson.M, 0, len(filter.TermFields)+len(filter.TermArrays))
		for _, field := range filter.TermFields {
			or = append(or, bson.M{field: regex})
		}
		for _, field := range filter.TermArrays {
			or = append(or, bson.M{field: bson.M{"$elemMatch": regex}})
		}
		if len(or) > 0 {
			query["$or"] = or
		}
	}
	return query
}

// normalizeID replaces the store-native _id with its hex string under "id".
func normalizeID(doc bson.M) Document {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		doc["id"] = oid.Hex()
		delete(doc, "_id")
	}
	return Document(doc)
}
