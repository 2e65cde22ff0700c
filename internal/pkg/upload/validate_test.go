package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageBySniff(t *testing.T) {
	jpegHead := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngHead := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

	t.Run("accepts a jpeg", func(t *testing.T) {
		mime, err := ValidateImageBySniff("photo.jpg", jpegHead)
		assert.NoError(t, err)
		assert.Equal(t, "image/jpeg", mime)
	})

	t.Run("accepts a png", func(t *testing.T) {
		mime, err := ValidateImageBySniff("photo.png", pngHead)
		assert.NoError(t, err)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("rejects an unknown extension", func(t *testing.T) {
		_, err := ValidateImageBySniff("photo.exe", jpegHead)
		assert.Error(t, err)
	})

	t.Run("rejects html content behind an image extension", func(t *testing.T) {
		_, err := ValidateImageBySniff("photo.jpg", []byte("<html><body>hi</body></html>"))
		assert.Error(t, err)
	})

	t.Run("rejects svg", func(t *testing.T) {
		_, err := ValidateImageBySniff("photo.jpg", []byte(`<?xml version="1.0"?><svg></svg>`))
		assert.Error(t, err)
	})
}
