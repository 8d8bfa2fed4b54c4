// Package store persists entities as documents, one collection per entity kind.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrStorageUnavailable wraps every failure of the underlying store.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound is returned by GetDocument when no document has the id.
	ErrNotFound = errors.New("document not found")
)

// Document is a stored document as read back from a collection. Its "_id"
// is always a string.
type Document = bson.M

// Filter maps field names to exact-match values. An empty filter matches all.
type Filter map[string]interface{}

// Store is the persistence contract used by the services.
type Store interface {
	// CreateDocument stores entity in collection under a freshly generated id
	// and returns that id.
	CreateDocument(ctx context.Context, collection string, entity interface{}) (string, error)
	// GetDocuments returns documents matching filter. limit <= 0 means no limit.
	// No ordering is guaranteed.
	GetDocuments(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error)
	GetDocument(ctx context.Context, collection, id string) (Document, error)
	// IncrementXP adds amount to the xp of the user with the given id and,
	// when touchLastActive is set, stamps last_active. A missing user is not an error.
	IncrementXP(ctx context.Context, userID string, amount int, touchLastActive bool) error
	CollectionNames(ctx context.Context) ([]string, error)
}

// NewID returns a fresh document identifier. It is safe to use as a URL path segment.
func NewID() string {
	return uuid.New().String()
}

// toDocument converts an entity into an ordered BSON document with id as its
// first field. Any "_id" carried by the entity is replaced.
func toDocument(entity interface{}, id string) (bson.D, error) {
	raw, err := bson.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	doc := make(bson.D, 0, len(fields)+1)
	doc = append(doc, bson.E{Key: "_id", Value: id})
	for _, e := range fields {
		if e.Key == "_id" {
			continue
		}
		doc = append(doc, e)
	}
	return doc, nil
}

// Decode converts documents into typed models, e.g. Decode[models.Mood](docs).
func Decode[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := DecodeOne(d, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeOne converts a single document into dst.
func DecodeOne(doc Document, dst interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := bson.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func unavailable(op, collection string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStorageUnavailable, op, collection, err)
}
