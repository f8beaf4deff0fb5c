package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
)

// GCS stores portfolio images in a bucket and makes them publicly readable.
type GCS struct {
	client *gcs.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCS{client: c, bucket: bucket}, nil
}

func (u *GCS) Close() error { return u.client.Close() }

// Ping checks that the bucket exists and the credentials can see it.
func (u *GCS) Ping(ctx context.Context) error {
	_, err := u.client.Bucket(u.bucket).Attrs(ctx)
	return err
}

func (u *GCS) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	obj := u.client.Bucket(u.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000, immutable"
	// images are capped well below one chunk, send them in a single request
	w.ChunkSize = 0

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", objectName, err)
	}

	// the public site links images directly
	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("publish %s: %w", objectName, err)
	}
	return PublicURL(u.bucket, objectName), nil
}

func PublicURL(bucket, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", url.PathEscape(bucket), (&url.URL{Path: objectName}).EscapedPath())
}
