package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/folio-media/images/a.png", PublicURL("folio-media", "images/a.png"))
	assert.Equal(t, "https://storage.googleapis.com/b/images/my%20cat.png", PublicURL("b", "images/my cat.png"))
}
