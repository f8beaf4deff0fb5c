package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/yoockh/folio/internal/models"
)

type Mode int32

const (
	Online Mode = iota
	Offline
)

func (m Mode) String() string {
	if m == Offline {
		return "offline"
	}
	return "online"
}

// state tracks where one resource is currently served from.
type state struct {
	c    *Client
	name string
	mode atomic.Int32
}

func (s *state) Mode() Mode { return Mode(s.mode.Load()) }

func (s *state) goOffline(cause error) {
	if !s.mode.CompareAndSwap(int32(Online), int32(Offline)) {
		return
	}
	s.c.log.WithError(cause).WithField("resource", s.name).
		Warn("backend unreachable, serving from local store")
	if s.c.onMode != nil {
		s.c.onMode(s.name, Offline)
	}
}

func (s *state) goOnline() {
	if !s.mode.CompareAndSwap(int32(Offline), int32(Online)) {
		return
	}
	s.c.log.WithField("resource", s.name).Info("back online")
	if s.c.onMode != nil {
		s.c.onMode(s.name, Online)
	}
}

// run calls the backend, or the local store once the resource is offline.
// Only unreachable backends trigger the switch; API errors are returned.
func run[V any](s *state, online, offline func() (V, error)) (V, error) {
	if s.c.fallback && s.Mode() == Offline {
		v, err := offline()
		return v, offlineErr(err)
	}

	v, err := online()
	if err == nil || !s.c.fallback || !errors.Is(err, ErrUnavailable) {
		return v, err
	}

	s.goOffline(err)
	v, err = offline()
	return v, offlineErr(err)
}

type offlineOps[T, In, P any] struct {
	list   func(ctx context.Context) ([]T, error)
	page   func(ctx context.Context, page, limit int64) (*models.Page[T], error)
	get    func(ctx context.Context, id string) (*T, error)
	create func(ctx context.Context, in In) (*T, error)
	update func(ctx context.Context, id string, patch P) (*T, error)
	delete func(ctx context.Context, id string) error
}

// Resource is the CRUD surface shared by every collection. T is the record,
// In the create body and P the partial update.
type Resource[T, In, P any] struct {
	state
	path string
	off  offlineOps[T, In, P]
}

func newResource[T, In, P any](c *Client, path string, off offlineOps[T, In, P]) *Resource[T, In, P] {
	r := &Resource[T, In, P]{path: path, off: off}
	r.state.c = c
	r.state.name = path[1:]
	return r
}

// GoOnline sends the next call to the backend again.
func (r *Resource[T, In, P]) GoOnline() { r.goOnline() }

func (r *Resource[T, In, P]) idPath(id string, rest ...string) string {
	p := r.path + "/" + url.PathEscape(id)
	for _, s := range rest {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (r *Resource[T, In, P]) List(ctx context.Context) ([]T, error) {
	return run(&r.state,
		func() ([]T, error) {
			var out []T
			err := r.c.do(ctx, http.MethodGet, r.path, nil, &out)
			return out, err
		},
		func() ([]T, error) { return r.off.list(ctx) },
	)
}

func (r *Resource[T, In, P]) Page(ctx context.Context, page, limit int64) (*models.Page[T], error) {
	return run(&r.state,
		func() (*models.Page[T], error) {
			var out models.Page[T]
			q := fmt.Sprintf("%s?page=%d&limit=%d", r.path, page, limit)
			if err := r.c.do(ctx, http.MethodGet, q, nil, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*models.Page[T], error) { return r.off.page(ctx, page, limit) },
	)
}

func (r *Resource[T, In, P]) Get(ctx context.Context, id string) (*T, error) {
	return run(&r.state,
		func() (*T, error) { return r.send(ctx, http.MethodGet, r.idPath(id), nil) },
		func() (*T, error) { return r.off.get(ctx, id) },
	)
}

func (r *Resource[T, In, P]) Create(ctx context.Context, in In) (*T, error) {
	return run(&r.state,
		func() (*T, error) { return r.send(ctx, http.MethodPost, r.path, in) },
		func() (*T, error) { return r.off.create(ctx, in) },
	)
}

func (r *Resource[T, In, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	return run(&r.state,
		func() (*T, error) { return r.send(ctx, http.MethodPatch, r.idPath(id), patch) },
		func() (*T, error) { return r.off.update(ctx, id, patch) },
	)
}

func (r *Resource[T, In, P]) Delete(ctx context.Context, id string) error {
	_, err := run(&r.state,
		func() (struct{}, error) {
			return struct{}{}, r.c.do(ctx, http.MethodDelete, r.idPath(id), nil, nil)
		},
		func() (struct{}, error) { return struct{}{}, r.off.delete(ctx, id) },
	)
	return err
}

// send performs a call whose answer is a single record.
func (r *Resource[T, In, P]) send(ctx context.Context, method, path string, body any) (*T, error) {
	var out T
	if err := r.c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
