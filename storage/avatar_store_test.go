package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	store := &AvatarStore{
		bucket:    "skycast-avatars",
		publicURL: "http://localhost:9000",
	}

	t.Run("OwnURL", func(t *testing.T) {
		key, ok := store.objectKey("http://localhost:9000/skycast-avatars/users/7/abc.png")
		assert.True(t, ok)
		assert.Equal(t, "users/7/abc.png", key)
	})

	t.Run("ForeignURL", func(t *testing.T) {
		_, ok := store.objectKey("https://lh3.googleusercontent.com/a/photo.jpg")
		assert.False(t, ok)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, ok := store.objectKey("http://localhost:9000/skycast-avatars/")
		assert.False(t, ok)
	})
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, "", extensionFor("application/octet-stream"))
}
