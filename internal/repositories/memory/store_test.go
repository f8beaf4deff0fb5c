package memory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/utils"
)

func TestStore_InsertAssignsIDAndTimestamps(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := New[models.About]().WithClock(func() time.Time { return now })

	a := &models.About{Title: "Dev", Description: "Bio"}
	require.NoError(t, s.Insert(context.Background(), a))
	assert.False(t, a.ID.IsZero())
	assert.Equal(t, now, a.CreatedAt)

	got, err := s.Get(context.Background(), a.ID.Hex())
	require.NoError(t, err)
	assert.True(t, now.Equal(got.UpdatedAt))
	assert.Equal(t, "Dev", got.Title)
}

func TestStore_DuplicateIDIsConflict(t *testing.T) {
	s := New[models.Project]()
	p := &models.Project{Title: "a"}
	require.NoError(t, s.Insert(context.Background(), p))

	dup := &models.Project{ID: p.ID, Title: "b"}
	assert.ErrorIs(t, s.Insert(context.Background(), dup), utils.ErrConflict)
}

func TestStore_NotFound(t *testing.T) {
	s := New[models.Project]()
	ctx := context.Background()
	missing := primitive.NewObjectID().Hex()

	_, err := s.Get(ctx, "not-hex")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = s.Get(ctx, missing)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = s.Update(ctx, missing, bson.M{"title": "x"})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, missing), utils.ErrNotFound)
	_, err = s.First(ctx)
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = s.FindActive(ctx)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestStore_UpdateIsShallowMerge(t *testing.T) {
	s := New[models.About]()
	ctx := context.Background()
	a := &models.About{
		Title:       "Dev",
		Description: "Bio",
		Skills:      []models.Skill{{Name: "Go", Level: 90}},
		SocialLinks: &models.SocialLinks{GitHub: "https://github.com/me", Twitter: "https://twitter.com/me"},
	}
	require.NoError(t, s.Insert(ctx, a))

	got, err := s.Update(ctx, a.ID.Hex(), bson.M{
		"title":       "Lead",
		"socialLinks": models.SocialLinks{GitHub: "https://github.com/other"},
		"_id":         primitive.NewObjectID(),
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Lead", got.Title)
	assert.Equal(t, a.Skills, got.Skills)
	// embedded documents are replaced, not merged
	assert.Equal(t, &models.SocialLinks{GitHub: "https://github.com/other"}, got.SocialLinks)
}

func TestStore_ArrayOps(t *testing.T) {
	s := New[models.Profile]()
	ctx := context.Background()
	p := &models.Profile{Name: "Ann"}
	require.NoError(t, s.Insert(ctx, p))
	id := p.ID.Hex()

	a := models.SocialLink{ID: primitive.NewObjectID(), Platform: "github", URL: "u1", Active: true}
	b := models.SocialLink{ID: primitive.NewObjectID(), Platform: "linkedin", URL: "u2", Active: true}
	_, err := s.Push(ctx, id, "socialLinks", a)
	require.NoError(t, err)
	got, err := s.Push(ctx, id, "socialLinks", b)
	require.NoError(t, err)
	assert.Equal(t, []models.SocialLink{a, b}, got.SocialLinks)

	got, err = s.SetAt(ctx, id, "socialLinks", 1, bson.M{"active": false})
	require.NoError(t, err)
	assert.False(t, got.SocialLinks[1].Active)
	assert.Equal(t, "linkedin", got.SocialLinks[1].Platform)

	got, err = s.SetByID(ctx, id, "socialLinks", a.ID.Hex(), bson.M{"url": "u3"})
	require.NoError(t, err)
	assert.Equal(t, "u3", got.SocialLinks[0].URL)

	got, err = s.RemoveAt(ctx, id, "socialLinks", 0)
	require.NoError(t, err)
	require.Len(t, got.SocialLinks, 1)
	assert.Equal(t, b.ID, got.SocialLinks[0].ID)

	_, err = s.SetAt(ctx, id, "socialLinks", 3, bson.M{"active": true})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = s.Pull(ctx, id, "socialLinks", a.ID.Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	got, err = s.Pull(ctx, id, "socialLinks", b.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, got.SocialLinks)
}

func TestStore_DeactivateAllAndFindActive(t *testing.T) {
	s := New[models.Profile]()
	ctx := context.Background()
	for _, active := range []bool{false, true, true} {
		require.NoError(t, s.Insert(ctx, &models.Profile{Name: "p", Active: active}))
	}

	act, err := s.FindActive(ctx)
	require.NoError(t, err)
	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, all[1].ID, act.ID)

	require.NoError(t, s.DeactivateAll(ctx))
	_, err = s.FindActive(ctx)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestStore_RoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Get after Insert returns what was stored", prop.ForAll(
		func(title, desc string, techs []string) bool {
			s := New[models.Project]()
			ctx := context.Background()
			in := &models.Project{Title: title, Description: desc, Technologies: techs}
			if err := s.Insert(ctx, in); err != nil {
				return false
			}
			got, err := s.Get(ctx, in.ID.Hex())
			if err != nil {
				return false
			}
			if got.Title != title || got.Description != desc || len(got.Technologies) != len(in.Technologies) {
				return false
			}
			for i := range in.Technologies {
				if got.Technologies[i] != in.Technologies[i] {
					return false
				}
			}
			return true
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("Delete then Get is not found", prop.ForAll(
		func(n int) bool {
			s := New[models.Project]()
			ctx := context.Background()
			var ids []string
			for i := 0; i < n; i++ {
				p := &models.Project{Title: "p"}
				if err := s.Insert(ctx, p); err != nil {
					return false
				}
				ids = append(ids, p.ID.Hex())
			}
			victim := ids[n/2]
			if err := s.Delete(ctx, victim); err != nil {
				return false
			}
			_, err := s.Get(ctx, victim)
			return err == utils.ErrNotFound && s.Len() == n-1
		},
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

func TestStore_Page(t *testing.T) {
	s := New[models.Project]()
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Insert(ctx, &models.Project{Title: title}))
	}

	items, total, err := s.Page(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].Title)

	items, _, err = s.Page(ctx, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, total, err = s.Page(ctx, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 1)
	assert.Equal(t, "e", items[0].Title)

	items, total, err = s.Page(ctx, math.MaxInt64, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
