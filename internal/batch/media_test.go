package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaKindOf(t *testing.T) {
	t.Parallel()

	media := NewMediaTypes(
		[]string{".mp4", ".avi"},
		[]string{".jpg", ".png"},
	)

	tests := []struct {
		path string
		want MediaKind
	}{
		{"/cam/clip.mp4", MediaVideo},
		{"/cam/CLIP.MP4", MediaVideo},
		{"/cam/photo.jpg", MediaImage},
		{"/cam/photo.JPG", MediaImage},
		{"/cam/readme.txt", MediaUnknown},
		{"/cam/noext", MediaUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, media.KindOf(tt.path), tt.path)
	}
}

func TestMediaKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "video", MediaVideo.String())
	assert.Equal(t, "image", MediaImage.String())
	assert.Equal(t, "unknown", MediaUnknown.String())
}
