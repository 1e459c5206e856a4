package batch

import (
	"path/filepath"
	"strings"
)

// MediaKind distinguishes the two input types the pipeline handles.
type MediaKind int

const (
	MediaUnknown MediaKind = iota
	MediaVideo
	MediaImage
)

func (k MediaKind) String() string {
	switch k {
	case MediaVideo:
		return "video"
	case MediaImage:
		return "image"
	default:
		return "unknown"
	}
}

// MediaTypes resolves file extensions to media kinds, case-insensitively.
type MediaTypes struct {
	video map[string]struct{}
	image map[string]struct{}
}

// NewMediaTypes builds the resolver from extension lists. Extensions are
// expected to include the leading dot.
func NewMediaTypes(videoExts, imageExts []string) *MediaTypes {
	m := &MediaTypes{
		video: make(map[string]struct{}, len(videoExts)),
		image: make(map[string]struct{}, len(imageExts)),
	}
	for _, ext := range videoExts {
		m.video[strings.ToLower(ext)] = struct{}{}
	}
	for _, ext := range imageExts {
		m.image[strings.ToLower(ext)] = struct{}{}
	}
	return m
}

// KindOf returns the media kind for a path based on its extension.
func (m *MediaTypes) KindOf(path string) MediaKind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := m.video[ext]; ok {
		return MediaVideo
	}
	if _, ok := m.image[ext]; ok {
		return MediaImage
	}
	return MediaUnknown
}
