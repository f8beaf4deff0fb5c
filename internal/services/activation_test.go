package services

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yoockh/folio/internal/lock"
	"github.com/yoockh/folio/internal/logger"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories/memory"
	"github.com/yoockh/folio/internal/utils"
)

func profileID(p *models.Profile) string { return p.ID.Hex() }

func seedProfiles(t testing.TB, store *memory.Store[models.Profile], n int) []string {
	ids := make([]string, n)
	for i := range ids {
		p := &models.Profile{Name: "p", Active: i%2 == 0}
		require.NoError(t, store.Insert(context.Background(), p))
		ids[i] = p.ID.Hex()
	}
	return ids
}

func TestActivator_SetActiveProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("exactly the target is active after every SetActive", prop.ForAll(
		func(n int, picks []int) bool {
			ctx := context.Background()
			store := memory.New[models.Profile]()
			act := NewActivator(store, lock.NewLocal(), "profile", profileID, nil, logger.Discard())
			ids := seedProfiles(t, store, n)

			for _, k := range picks {
				target := ids[k%n]
				if _, err := act.SetActive(ctx, target); err != nil {
					return false
				}
				all, err := store.List(ctx)
				if err != nil {
					return false
				}
				count := 0
				for _, p := range all {
					if p.Active {
						count++
						if p.ID.Hex() != target {
							return false
						}
					}
				}
				if count != 1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

func TestActivator_ConcurrentSetActive(t *testing.T) {
	ctx := context.Background()
	store := memory.New[models.Profile]()
	act := NewActivator(store, lock.NewLocal(), "profile", profileID, nil, logger.Discard())
	ids := seedProfiles(t, store, 5)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			_, err := act.SetActive(ctx, target)
			assert.NoError(t, err)
		}(ids[rand.Intn(len(ids))])
	}
	wg.Wait()

	all, err := store.List(ctx)
	require.NoError(t, err)
	active := 0
	for _, p := range all {
		if p.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestActivator_GetCurrentWithoutDefault(t *testing.T) {
	store := memory.New[models.Profile]()
	act := NewActivator(store, nil, "profile", profileID, nil, nil)

	_, err := act.GetCurrent(context.Background())
	assert.Error(t, err)
	assert.Zero(t, store.Len())
}

func TestActivator_SetActiveUnknownKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	store := memory.New[models.Profile]()
	act := NewActivator(store, lock.NewLocal(), "profile", profileID, nil, logger.Discard())
	ids := seedProfiles(t, store, 3)

	_, err := act.SetActive(ctx, ids[1])
	require.NoError(t, err)

	_, err = act.SetActive(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, utils.ErrNotFound)

	cur, err := store.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids[1], cur.ID.Hex())
}
