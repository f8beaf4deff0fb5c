package cache

import (
	"context"
	"time"
)

// Cache holds JSON snapshots of hot public reads. A miss is (false, nil).
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const (
	KeyCurrentAbout  = "about:current"
	KeyActiveProfile = "profile:active"
)
