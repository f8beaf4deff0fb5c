// Package storage holds uploaded media. The API only needs to put an object
// and learn its public URL.
package storage

import (
	"context"
	"io"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}
