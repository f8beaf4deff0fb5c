// Package memory keeps documents in process. It backs STORE_DRIVER=memory,
// the service tests and the client's offline mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yoockh/folio/internal/repositories"
	"github.com/yoockh/folio/internal/utils"
)

// Store holds documents in their BSON form so that field-level updates
// behave the same as against Mongo.
type Store[T any] struct {
	mu   sync.RWMutex
	docs []bson.M
	now  repositories.Clock
}

var _ repositories.DocumentStore[struct{}] = (*Store[struct{}])(nil)

func New[T any]() *Store[T] {
	return &Store[T]{now: repositories.SystemClock}
}

func (s *Store[T]) WithClock(now repositories.Clock) *Store[T] {
	s.now = now
	return s
}

func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.docs))
	for _, d := range s.docs {
		v, err := decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *Store[T]) Page(ctx context.Context, page, limit int64) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	start, ok := repositories.PageOffset(page, limit, total)
	if !ok {
		return []T{}, total, nil
	}
	end := total
	if limit < total-start {
		end = start + limit
	}
	return all[start:end], total, nil
}

func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	return decode[T](s.docs[i])
}

func (s *Store[T]) FindActive(ctx context.Context) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.docs {
		if active, _ := d["active"].(bool); active {
			return decode[T](d)
		}
	}
	return nil, utils.ErrNotFound
}

func (s *Store[T]) First(ctx context.Context) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.docs) == 0 {
		return nil, utils.ErrNotFound
	}
	return decode[T](s.docs[0])
}

func (s *Store[T]) Insert(ctx context.Context, doc *T) error {
	if in, ok := any(doc).(repositories.Inserter); ok {
		in.BeforeInsert(s.now())
	}
	d, err := toDoc(doc)
	if err != nil {
		return err
	}
	oid, ok := d["_id"].(primitive.ObjectID)
	if !ok || oid.IsZero() {
		oid = primitive.NewObjectID()
		d["_id"] = oid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.indexOf(oid.Hex()); err == nil {
		return fmt.Errorf("%w: duplicate _id %s", utils.ErrConflict, oid.Hex())
	}
	s.docs = append(s.docs, d)
	return nil
}

func (s *Store[T]) Update(ctx context.Context, id string, fields bson.M) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		nv, err := normalize(v)
		if err != nil {
			return nil, err
		}
		s.docs[i][k] = nv
	}
	s.touch(s.docs[i])
	return decode[T](s.docs[i])
}

func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return err
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return nil
}

func (s *Store[T]) DeactivateAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs {
		if active, _ := d["active"].(bool); active {
			d["active"] = false
			s.touch(d)
		}
	}
	return nil
}

func (s *Store[T]) Push(ctx context.Context, id, field string, value any) (*T, error) {
	nv, err := normalize(value)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	arr := array(s.docs[i][field])
	s.docs[i][field] = append(arr, nv)
	s.touch(s.docs[i])
	return decode[T](s.docs[i])
}

func (s *Store[T]) Pull(ctx context.Context, id, field, subID string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	arr := array(s.docs[i][field])
	j := indexBySubID(arr, subID)
	if j < 0 {
		return nil, utils.ErrNotFound
	}
	out := make(bson.A, 0, len(arr)-1)
	out = append(out, arr[:j]...)
	out = append(out, arr[j+1:]...)
	s.docs[i][field] = out
	s.touch(s.docs[i])
	return decode[T](s.docs[i])
}

func (s *Store[T]) SetAt(ctx context.Context, id, field string, index int, fields bson.M) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	arr := array(s.docs[i][field])
	if index < 0 || index >= len(arr) {
		return nil, utils.ErrNotFound
	}
	if err := s.mergeAt(arr, index, fields); err != nil {
		return nil, err
	}
	s.docs[i][field] = arr
	s.touch(s.docs[i])
	return decode[T](s.docs[i])
}

func (s *Store[T]) RemoveAt(ctx context.Context, id, field string, index int) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	arr := array(s.docs[i][field])
	if index < 0 || index >= len(arr) {
		return nil, utils.ErrNotFound
	}
	out := make(bson.A, 0, len(arr)-1)
	out = append(out, arr[:index]...)
	out = append(out, arr[index+1:]...)
	s.docs[i][field] = out
	s.touch(s.docs[i])
	return decode[T](s.docs[i])
}

func (s *Store[T]) SetByID(ctx context.Context, id, field, subID string, fields bson.M) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	arr := array(s.docs[i][field])
	j := indexBySubID(arr, subID)
	if j < 0 {
		return nil, utils.ErrNotFound
	}
	if err := s.mergeAt(arr, j, fields); err != nil {
		return nil, err
	}
	s.docs[i][field] = arr
	s.touch(s.docs[i])
	return decode[T](s.docs[i])
}

func (s *Store[T]) Ping(ctx context.Context) error { return nil }

// Len is the number of stored documents.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Reset drops every document.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.docs = nil
	s.mu.Unlock()
}

func (s *Store[T]) touch(d bson.M) {
	d["updatedAt"] = primitive.NewDateTimeFromTime(s.now())
}

func (s *Store[T]) mergeAt(arr bson.A, index int, fields bson.M) error {
	item, ok := asMap(arr[index])
	if !ok {
		return fmt.Errorf("%w: element %d is not a document", utils.ErrConflict, index)
	}
	for k, v := range fields {
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		item[k] = nv
	}
	arr[index] = item
	return nil
}

// indexOf must be called with the lock held.
func (s *Store[T]) indexOf(id string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1, utils.ErrNotFound
	}
	for i, d := range s.docs {
		if got, ok := d["_id"].(primitive.ObjectID); ok && got == oid {
			return i, nil
		}
	}
	return -1, utils.ErrNotFound
}

func indexBySubID(arr bson.A, subID string) int {
	oid, err := primitive.ObjectIDFromHex(subID)
	if err != nil {
		return -1
	}
	for j, el := range arr {
		m, ok := asMap(el)
		if !ok {
			continue
		}
		if got, ok := m["_id"].(primitive.ObjectID); ok && got == oid {
			return j
		}
	}
	return -1
}

func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d bson.M
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

func decode[T any](d bson.M) (*T, error) {
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// normalize converts a Go value into the shape the driver decodes it to.
func normalize(v any) (any, error) {
	d, err := toDoc(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return d["v"], nil
}

func array(v any) bson.A {
	switch a := v.(type) {
	case bson.A:
		return a
	case []any:
		return bson.A(a)
	default:
		return bson.A{}
	}
}

func asMap(v any) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return bson.M(m), true
	case bson.D:
		out := make(bson.M, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}
