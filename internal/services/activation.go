package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yoockh/folio/internal/lock"
	"github.com/yoockh/folio/internal/repositories"
	"github.com/yoockh/folio/internal/utils"
)

// Activator keeps at most one record of a collection flagged active.
//
// SetActive is a deactivate-all write followed by an activate-one write.
// The pair runs under a per-collection lock so concurrent callers cannot
// interleave; a crash between the two writes can still leave nothing
// active, which GetCurrent repairs.
type Activator[T any] struct {
	store  repositories.DocumentStore[T]
	locker lock.Locker
	key    string
	idOf   func(*T) string
	// newDefault builds the record persisted when GetCurrent finds an empty
	// collection. nil means an empty collection has no current record.
	newDefault func() *T
	log        *logrus.Logger
}

func NewActivator[T any](
	store repositories.DocumentStore[T],
	locker lock.Locker,
	collection string,
	idOf func(*T) string,
	newDefault func() *T,
	log *logrus.Logger,
) *Activator[T] {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Activator[T]{
		store:      store,
		locker:     locker,
		key:        "activate:" + collection,
		idOf:       idOf,
		newDefault: newDefault,
		log:        log,
	}
}

// SetActive makes id the only active record. An unknown id returns
// utils.ErrNotFound and leaves the current active record in place.
func (a *Activator[T]) SetActive(ctx context.Context, id string) (*T, error) {
	unlock, err := a.locker.Lock(ctx, a.key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return a.setActiveLocked(ctx, id)
}

func (a *Activator[T]) setActiveLocked(ctx context.Context, id string) (*T, error) {
	if _, err := a.store.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := a.store.DeactivateAll(ctx); err != nil {
		return nil, err
	}
	return a.store.Update(ctx, id, bson.M{"active": true})
}

// GetCurrent returns the active record. With none active it promotes the
// oldest record, and with an empty collection it persists newDefault.
func (a *Activator[T]) GetCurrent(ctx context.Context) (*T, error) {
	cur, err := a.store.FindActive(ctx)
	if err == nil {
		return cur, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	unlock, err := a.locker.Lock(ctx, a.key)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// another caller may have repaired it while we waited
	cur, err = a.store.FindActive(ctx)
	if err == nil {
		return cur, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, err
	}

	first, err := a.store.First(ctx)
	switch {
	case err == nil:
		id := a.idOf(first)
		a.log.WithFields(logrus.Fields{"collection": a.key, "id": id}).
			Warn("no active record, promoting oldest")
		return a.setActiveLocked(ctx, id)
	case !errors.Is(err, utils.ErrNotFound):
		return nil, err
	case a.newDefault == nil:
		return nil, utils.ErrNotFound
	}

	doc := a.newDefault()
	if err := a.store.Insert(ctx, doc); err != nil {
		return nil, err
	}
	a.log.WithFields(logrus.Fields{"collection": a.key, "id": a.idOf(doc)}).
		Warn("empty collection, created default record")
	return doc, nil
}

// storeErr turns a repository or lock error into an AppError for op.
func storeErr(op, what string, err error) error {
	var ae *utils.AppError
	switch {
	case errors.As(err, &ae):
		return err
	case errors.Is(err, utils.ErrNotFound):
		return utils.E(utils.CodeNotFound, op, what+" not found", err)
	case errors.Is(err, utils.ErrUnavailable):
		return utils.E(utils.CodeUnavailable, op, "store unavailable", err)
	case errors.Is(err, utils.ErrConflict):
		return utils.E(utils.CodeConflict, op, what+" already exists", err)
	case errors.Is(err, lock.ErrBusy):
		return utils.E(utils.CodeTimeout, op, "activation is busy, retry", err)
	default:
		return utils.E(utils.CodeInternal, op, "failed to access "+what, err)
	}
}
