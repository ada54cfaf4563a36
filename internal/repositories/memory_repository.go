package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory implementation of DocumentRepository with
// the same observable semantics as the Mongo one: insertion-order reads, hex
// ObjectID identifiers and the Filter dialect. It backs the tests.
type MemoryRepository struct {
	collections map[string][]bson.M
	mu          sync.RWMutex
}

// NewMemoryRepository creates a new instance of MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		collections: make(map[string][]bson.M),
	}
}

// Create validates the record and appends it to the named collection.
func (r *MemoryRepository) Create(ctx context.Context, collection string, record interface{}) (string, error) {
	if err := validateRecord(record); err != nil {
		return "", err
	}
	doc, err := ToDocument(record)
	if err != nil {
		return "", err
	}

	id := primitive.NewObjectID()
	stored := bson.M(doc)
	stored["_id"] = id

	r.mu.Lock()
	r.collections[collection] = append(r.collections[collection], stored)
	r.mu.Unlock()

	return id.Hex(), nil
}

// Query returns up to limit documents matching the filter, in insertion order.
func (r *MemoryRepository) Query(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	documents := make([]Document, 0)
	for _, doc := range r.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		documents = append(documents, normalizeID(copyDoc(doc)))
		if limit > 0 && int64(len(documents)) >= limit {
			break
		}
	}
	return documents, nil
}

// GetByID returns the document with the given hex id, or ErrNotFound.
func (r *MemoryRepository) GetByID(ctx context.Context, collection string, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid document id %q: %w", id, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.collections[collection] {
		if doc["_id"] == oid {
			return normalizeID(copyDoc(doc)), nil
		}
	}
	return nil, ErrNotFound
}

// FindOne returns the first document matching the filter, or ErrNotFound.
func (r *MemoryRepository) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.collections[collection] {
		if matches(doc, filter) {
			return normalizeID(copyDoc(doc)), nil
		}
	}
	return nil, ErrNotFound
}

// UpdateByID overwrites the given fields of an existing document. The
// identifier itself is never touched.
func (r *MemoryRepository) UpdateByID(ctx context.Context, collection string, id string, fields Document) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range r.collections[collection] {
		if doc["_id"] != oid {
			continue
		}
		for field, value := range fields {
			if field == "_id" || field == "id" {
				continue
			}
			doc[field] = value
		}
		return nil
	}
	return ErrNotFound
}

// matches applies the Filter semantics to a stored document.
func matches(doc bson.M, filter Filter) bool {
	for field, value := range filter.Match {
		s, ok := doc[field].(string)
		if !ok || s != value {
			return false
		}
	}
	if filter.Term == "" {
		return true
	}

	term := strings.ToLower(filter.Term)
	for _, field := range filter.TermFields {
		if s, ok := doc[field].(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	for _, field := range filter.TermArrays {
		items, ok := doc[field].(primitive.A)
		if !ok {
			continue
		}
		for _, item := range items {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
	}
	return false
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for field, value := range doc {
		out[field] = value
	}
	return out
}
