package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/folio/internal/repositories"
	"github.com/yoockh/folio/internal/utils"
)

// Collection is the Mongo implementation of repositories.DocumentStore.
type Collection[T any] struct {
	col *mongo.Collection
	now repositories.Clock
}

var _ repositories.DocumentStore[struct{}] = (*Collection[struct{}])(nil)

func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{col: db.Collection(name), now: repositories.SystemClock}
}

// WithClock replaces the timestamp source.
func (c *Collection[T]) WithClock(now repositories.Clock) *Collection[T] {
	c.now = now
	return c
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	cur, err := c.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, wrap(err)
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func (c *Collection[T]) Page(ctx context.Context, page, limit int64) ([]T, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	total, err := c.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, wrap(err)
	}
	skip, ok := repositories.PageOffset(page, limit, total)
	if !ok {
		return []T{}, total, nil
	}

	cur, err := c.col.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "_id", Value: 1}}).
			SetSkip(skip).
			SetLimit(limit),
	)
	if err != nil {
		return nil, 0, wrap(err)
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, wrap(err)
	}
	return out, total, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return c.findOne(ctx, bson.M{"_id": oid})
}

func (c *Collection[T]) FindActive(ctx context.Context) (*T, error) {
	return c.findOne(ctx, bson.M{"active": true})
}

func (c *Collection[T]) First(ctx context.Context) (*T, error) {
	return c.findOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	if s, ok := any(doc).(repositories.Inserter); ok {
		s.BeforeInsert(c.now())
	}
	_, err := c.col.InsertOne(ctx, doc)
	return wrap(err)
}

func (c *Collection[T]) Update(ctx context.Context, id string, fields bson.M) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		set[k] = v
	}
	set["updatedAt"] = c.now()
	return c.findAndModify(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrap(err)
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) DeactivateAll(ctx context.Context) error {
	_, err := c.col.UpdateMany(ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updatedAt": c.now()}},
	)
	return wrap(err)
}

func (c *Collection[T]) Push(ctx context.Context, id, field string, value any) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return c.findAndModify(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{field: value},
		"$set":  bson.M{"updatedAt": c.now()},
	})
}

func (c *Collection[T]) Pull(ctx context.Context, id, field, subID string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	sub, err := objectID(subID)
	if err != nil {
		return nil, err
	}
	return c.findAndModify(ctx,
		bson.M{"_id": oid, field + "._id": sub},
		bson.M{
			"$pull": bson.M{field: bson.M{"_id": sub}},
			"$set":  bson.M{"updatedAt": c.now()},
		},
	)
}

func (c *Collection[T]) SetAt(ctx context.Context, id, field string, index int, fields bson.M) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, utils.ErrNotFound
	}
	key := fmt.Sprintf("%s.%d", field, index)
	set := bson.M{"updatedAt": c.now()}
	for k, v := range fields {
		set[key+"."+k] = v
	}
	return c.findAndModify(ctx,
		bson.M{"_id": oid, key: bson.M{"$exists": true}},
		bson.M{"$set": set},
	)
}

// RemoveAt unsets the slot and then pulls the resulting null. Both steps are
// single-document writes; a concurrent index-based edit can still land in
// between, which is the documented index-shift hazard.
func (c *Collection[T]) RemoveAt(ctx context.Context, id, field string, index int) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, utils.ErrNotFound
	}
	key := fmt.Sprintf("%s.%d", field, index)
	res, err := c.col.UpdateOne(ctx,
		bson.M{"_id": oid, key: bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{key: ""}},
	)
	if err != nil {
		return nil, wrap(err)
	}
	if res.MatchedCount == 0 {
		return nil, utils.ErrNotFound
	}
	return c.findAndModify(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{field: nil},
		"$set":  bson.M{"updatedAt": c.now()},
	})
}

func (c *Collection[T]) SetByID(ctx context.Context, id, field, subID string, fields bson.M) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	sub, err := objectID(subID)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": c.now()}
	for k, v := range fields {
		set[field+".$."+k] = v
	}
	return c.findAndModify(ctx,
		bson.M{"_id": oid, field + "._id": sub},
		bson.M{"$set": set},
	)
}

func (c *Collection[T]) Ping(ctx context.Context) error {
	return wrap(c.col.Database().Client().Ping(ctx, nil))
}

func (c *Collection[T]) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*T, error) {
	var out T
	err := c.col.FindOne(ctx, filter, opts...).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &out, nil
}

func (c *Collection[T]) findAndModify(ctx context.Context, filter bson.M, update bson.M) (*T, error) {
	var out T
	err := c.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &out, nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.ErrNotFound
	}
	return oid, nil
}

// wrap tags connectivity failures with utils.ErrUnavailable.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", utils.ErrUnavailable, err)
	}
	return err
}
