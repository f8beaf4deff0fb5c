package services

import (
	"context"
	"time"

	"github.com/yoockh/folio/internal/lock"
	"github.com/yoockh/folio/internal/logger"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories/memory"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newAboutSvc() (AboutService, *memory.Store[models.About]) {
	store := memory.New[models.About]().WithClock(fixedClock)
	return NewAboutService(store, lock.NewLocal(), logger.Discard()), store
}

func newProfileSvc() (ProfileService, *memory.Store[models.Profile]) {
	store := memory.New[models.Profile]().WithClock(fixedClock)
	return NewProfileService(store, lock.NewLocal(), logger.Discard()), store
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func activeIDs[T any](ctx context.Context, list func(context.Context) ([]T, error), active func(T) (string, bool)) []string {
	all, err := list(ctx)
	if err != nil {
		return nil
	}
	var out []string
	for _, v := range all {
		if id, ok := active(v); ok {
			out = append(out, id)
		}
	}
	return out
}

func aboutActive(a models.About) (string, bool)     { return a.ID.Hex(), a.Active }
func profileActive(p models.Profile) (string, bool) { return p.ID.Hex(), p.Active }
