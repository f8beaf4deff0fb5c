// Package repositories defines the generic document façade shared by every
// resource collection. Implementations live in the mongo and memory
// subpackages.
package repositories

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// DocumentStore is create/read/update/delete over one named collection of T.
//
// Ids are ObjectID hex strings. An id that does not parse is reported as
// utils.ErrNotFound, the same as an id that parses but matches nothing.
// Every write refreshes updatedAt.
type DocumentStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	// Page returns the 1-based page of at most limit records and the total count.
	Page(ctx context.Context, page, limit int64) ([]T, int64, error)
	Get(ctx context.Context, id string) (*T, error)
	FindActive(ctx context.Context) (*T, error)
	// First returns the oldest record.
	First(ctx context.Context) (*T, error)

	Insert(ctx context.Context, doc *T) error
	// Update shallow-merges fields over the stored document.
	Update(ctx context.Context, id string, fields bson.M) (*T, error)
	Delete(ctx context.Context, id string) error
	DeactivateAll(ctx context.Context) error

	// Push appends value to the embedded array field.
	Push(ctx context.Context, id, field string, value any) (*T, error)
	// Pull removes the embedded item whose _id is subID.
	Pull(ctx context.Context, id, field, subID string) (*T, error)
	// SetAt merges fields into the item at index of the array field.
	SetAt(ctx context.Context, id, field string, index int, fields bson.M) (*T, error)
	// RemoveAt deletes the item at index, shifting later items down.
	RemoveAt(ctx context.Context, id, field string, index int) (*T, error)
	// SetByID merges fields into the embedded item whose _id is subID.
	SetByID(ctx context.Context, id, field, subID string, fields bson.M) (*T, error)

	Ping(ctx context.Context) error
}

// Inserter is implemented by documents that stamp their own id and
// timestamps before the first write.
type Inserter interface {
	BeforeInsert(now time.Time)
}

// Clock is swapped in tests.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now().UTC() }

// PageOffset returns how many records precede page, or false when page starts
// at or past total. page and limit must already be positive. Pages far past
// the end never overflow into a negative offset.
func PageOffset(page, limit, total int64) (int64, bool) {
	if page-1 > (math.MaxInt64-1)/limit {
		return 0, false
	}
	start := (page - 1) * limit
	return start, start < total
}
