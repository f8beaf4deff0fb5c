package mongo

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

const ns = "test.project"

func TestCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get decodes document", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "Folio"},
			{Key: "technologies", Value: bson.A{"go", "mongo"}},
			{Key: "createdAt", Value: "2024-01-02"},
		}))

		got, err := col.Get(ctx, oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid, got.ID)
		assert.Equal(mt, "Folio", got.Title)
		assert.Equal(mt, []string{"go", "mongo"}, got.Technologies)
	})

	mt.Run("get missing is not found", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := col.Get(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})

	mt.Run("malformed id is not found without a round trip", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)

		_, err := col.Get(ctx, "current")
		assert.ErrorIs(mt, err, utils.ErrNotFound)
		_, err = col.Update(ctx, "zz", bson.M{"title": "x"})
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})

	mt.Run("page far past the end only counts", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		items, total, err := col.Page(ctx, math.MaxInt64, 100)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), total)
		assert.NotNil(mt, items)
		assert.Empty(mt, items)
	})

	mt.Run("list returns empty slice", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := col.List(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("list decodes every document", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "a"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "b"}},
		))

		got, err := col.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "b", got[1].Title)
	})

	mt.Run("insert stamps id and timestamps", func(mt *mtest.T) {
		now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		col := NewCollection[models.About](mt.DB, models.CollectionAbout).WithClock(func() time.Time { return now })
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		a := &models.About{Title: "Dev", Description: "Bio"}
		require.NoError(mt, col.Insert(ctx, a))
		assert.False(mt, a.ID.IsZero())
		assert.Equal(mt, now, a.CreatedAt)
		assert.NotNil(mt, a.Skills)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{{Key: "_id", Value: oid}, {Key: "title", Value: "New"}}},
		})

		got, err := col.Update(ctx, oid.Hex(), bson.M{"title": "New"})
		require.NoError(mt, err)
		assert.Equal(mt, "New", got.Title)
	})

	mt.Run("update missing is not found", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := col.Update(ctx, primitive.NewObjectID().Hex(), bson.M{"title": "x"})
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})

	mt.Run("delete reports missing documents", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, col.Delete(ctx, primitive.NewObjectID().Hex()))
		assert.ErrorIs(mt, col.Delete(ctx, primitive.NewObjectID().Hex()), utils.ErrNotFound)
	})

	mt.Run("remove at index unsets then pulls", func(mt *mtest.T) {
		col := NewCollection[models.Profile](mt.DB, models.CollectionProfile)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			bson.D{
				{Key: "ok", Value: 1},
				{Key: "value", Value: bson.D{
					{Key: "_id", Value: oid},
					{Key: "name", Value: "Ann"},
					{Key: "socialLinks", Value: bson.A{bson.D{{Key: "platform", Value: "x"}}}},
				}},
			},
		)

		got, err := col.RemoveAt(ctx, oid.Hex(), "socialLinks", 0)
		require.NoError(mt, err)
		require.Len(mt, got.SocialLinks, 1)
		assert.Equal(mt, "x", got.SocialLinks[0].Platform)
	})

	mt.Run("remove at missing index is not found", func(mt *mtest.T) {
		col := NewCollection[models.Profile](mt.DB, models.CollectionProfile)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		_, err := col.RemoveAt(ctx, primitive.NewObjectID().Hex(), "socialLinks", 4)
		assert.ErrorIs(mt, err, utils.ErrNotFound)

		_, err = col.RemoveAt(ctx, primitive.NewObjectID().Hex(), "socialLinks", -1)
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})

	mt.Run("command errors are passed through", func(mt *mtest.T) {
		col := NewCollection[models.Project](mt.DB, models.CollectionProject)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad",
		}))

		err := col.DeactivateAll(ctx)
		require.Error(mt, err)
		assert.False(mt, errors.Is(err, utils.ErrUnavailable))
	})
}

func TestWrap(t *testing.T) {
	assert.NoError(t, wrap(nil))
	assert.ErrorIs(t, wrap(context.DeadlineExceeded), utils.ErrUnavailable)

	plain := errors.New("boom")
	assert.Equal(t, plain, wrap(plain))
}
