package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/utils"
)

type MediaHandler struct {
	svc services.MediaService
}

func NewMediaHandler(svc services.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// UploadImage takes multipart field "file". The content type is sniffed
// from the bytes, not taken from the client.
func (h *MediaHandler) UploadImage(c *gin.Context) {
	const op = "MediaHandler.UploadImage"

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > services.MaxImageSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 5MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	head = head[:n]
	ct := http.DetectContentType(head)

	// re-compose stream: head + remaining file
	r := io.MultiReader(bytes.NewReader(head), file)

	up, err := h.svc.UploadImage(c.Request.Context(), ct, fh.Size, r)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, up)
}
