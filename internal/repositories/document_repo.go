package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no document matches the requested identifier
// or filter.
var ErrNotFound = errors.New("document not found")

// ValidationError lists the constraints a record violated. It is returned by
// Create before anything is written to the store.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Document is a stored record with its identifier normalized to a hex string
// under the "id" key (the store-native "_id" is never exposed).
type Document map[string]interface{}

// Filter describes the supported query conditions: exact field matches plus
// a single case-insensitive substring term applied across the listed fields.
// TermArrays names array-of-string fields where the term matches any element.
type Filter struct {
	Match      map[string]string
	Term       string
	TermFields []string
	TermArrays []string
}

// DocumentRepository is the generic, collection-agnostic access layer over a
// document store. All entity types are stored through it, parametrized by
// collection name; schema validation happens against the record's struct tags
// before any write.
type DocumentRepository interface {
	// Create validates the record, inserts it and returns the assigned id.
	Create(ctx context.Context, collection string, record interface{}) (string, error)
	// Query returns up to limit matching documents in insertion order.
	Query(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error)
	// GetByID returns the document with the given id, or ErrNotFound.
	GetByID(ctx context.Context, collection string, id string) (Document, error)
	// FindOne returns the first document matching the filter, or ErrNotFound.
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)
	// UpdateByID overwrites the given fields of an existing document.
	UpdateByID(ctx context.Context, collection string, id string, fields Document) error
}

var validate = validator.New()

// validateRecord checks the record against its struct tags and flattens any
// failures into a *ValidationError.
func validateRecord(record interface{}) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	violations := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return &ValidationError{Violations: violations}
}

// ToDocument converts a record to its stored form through bson, so field
// names follow the same bson tags the store persists.
func ToDocument(record interface{}) (Document, error) {
	data, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to deserialize record: %w", err)
	}
	return Document(doc), nil
}
