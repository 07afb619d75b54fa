package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Document is a schemaless record as it lives in a collection. Values are
// plain JSON scalars (string, float64, bool, nil) after a round trip through
// encoding/json. The adapter injects the document id under the "id" key on
// reads; "id" inside a body passed to Create/Update is ignored.
type Document map[string]any

// Comparison operators supported by query filters and update preconditions.
type Op string

const (
	OpEq  Op = "=="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
)

// Filter is a single field predicate, e.g. {"sharingAvailable", OpEq, true}.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Order sorts query results by one field.
type Order struct {
	Field string
	Desc  bool
}

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrConditionFailed is returned by UpdateWhere when the document exists
	// but one of the preconditions no longer holds.
	ErrConditionFailed = errors.New("update condition failed")
)

// Adapter is the generic document-store contract the services are built on.
// Implementations must set createdAt on Create and refresh updatedAt on every
// write, and must treat range filters over strings lexicographically (dates
// are stored as UTC RFC 3339 strings at second precision, so lexicographic
// and chronological order coincide).
type Adapter interface {
	// Create stores a new document and returns its generated id.
	Create(ctx context.Context, collection string, doc Document) (string, error)

	// Get returns a single document by id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Update applies a partial update (merge patch) to an existing document.
	Update(ctx context.Context, collection, id string, patch Document) error

	// UpdateWhere applies a partial update only while every condition still
	// holds; returns ErrConditionFailed otherwise. This is the building block
	// for compare-and-swap style writes.
	UpdateWhere(ctx context.Context, collection, id string, patch Document, conds []Filter) error

	// Delete removes a document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Query returns all documents matching every filter, optionally ordered
	// by one field.
	Query(ctx context.Context, collection string, filters []Filter, order *Order) ([]Document, error)
}

// ToDocument converts any JSON-taggable value to a Document.
func ToDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Decode populates out (a struct pointer) from a Document.
func Decode(doc Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// TimeValue normalizes a time for storage and for use in date filters.
// Everything date-like goes through here so that stored strings stay
// comparable (UTC, whole seconds, RFC 3339).
func TimeValue(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// NormalizeTime applies the same normalization as TimeValue but keeps the
// value as a time.Time, for model fields that will be marshalled directly.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
