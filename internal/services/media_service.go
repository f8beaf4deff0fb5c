package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/yoockh/folio/internal/storage"
	"github.com/yoockh/folio/internal/utils"
)

const MaxImageSize = 5 << 20

// ImageTypes maps the accepted sniffed content types to object extensions.
var ImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Upload struct {
	URL         string `json:"url"`
	ObjectName  string `json:"objectName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type MediaService interface {
	UploadImage(ctx context.Context, contentType string, size int64, r io.Reader) (*Upload, error)
}

type mediaService struct {
	uploader storage.Uploader
}

// NewMediaService accepts a nil uploader; uploads then fail with UNAVAILABLE.
func NewMediaService(uploader storage.Uploader) MediaService {
	return &mediaService{uploader: uploader}
}

func (s *mediaService) UploadImage(ctx context.Context, contentType string, size int64, r io.Reader) (*Upload, error) {
	const op = "MediaService.UploadImage"

	ext, ok := ImageTypes[contentType]
	if !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, "only png, jpeg, gif or webp images are allowed", nil)
	}
	if size <= 0 || size > MaxImageSize {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 5MB)", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "uploads are not configured", nil)
	}

	objectName := "images/" + uuid.NewString() + ext
	url, err := s.uploader.Upload(ctx, objectName, contentType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload image", err)
	}
	return &Upload{URL: url, ObjectName: objectName, ContentType: contentType, Size: size}, nil
}
