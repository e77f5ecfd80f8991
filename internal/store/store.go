// Package store persists whole collections of records as JSON documents.
//
// A collection is read and replaced as a unit. The store does no locking of its
// own: callers that read-modify-write a collection must hold the collection's
// lock from a Locker for the whole cycle.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	Artworks = "artworks"
	Users    = "users"
)

// ErrIO matches every *Error returned by a store.
var ErrIO = errors.New("store io failure")

var emptyCollection = []byte("[]")

// DocumentStore reads and replaces collections encoded as JSON arrays.
type DocumentStore interface {
	// Init prepares the backing resource. Calling it more than once is safe.
	Init(ctx context.Context) error
	// Load returns the collection, creating it empty when it does not exist yet.
	Load(ctx context.Context, collection string) ([]byte, error)
	// Save replaces the whole collection.
	Save(ctx context.Context, collection string, data []byte) error
}

// Error describes a failed store operation.
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrIO }

// ReadCollection loads a collection and decodes it into records in stored order.
func ReadCollection[T any](ctx context.Context, s DocumentStore, collection string) ([]T, error) {
	data, err := s.Load(ctx, collection)
	if err != nil {
		return nil, err
	}
	records := []T{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &Error{Op: "decode", Collection: collection, Err: err}
	}
	return records, nil
}

// WriteCollection encodes records and replaces the collection with them.
func WriteCollection[T any](ctx context.Context, s DocumentStore, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &Error{Op: "encode", Collection: collection, Err: err}
	}
	return s.Save(ctx, collection, data)
}

func validateName(op, collection string) error {
	if collection == "" {
		return &Error{Op: op, Collection: collection, Err: errors.New("empty collection name")}
	}
	for _, r := range collection {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			continue
		}
		return &Error{Op: op, Collection: collection, Err: fmt.Errorf("invalid collection name")}
	}
	return nil
}
