package detection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	detections := []Detection{
		{SpeciesID: 0, SpeciesName: "Wolf", Confidence: 0.80},
		{SpeciesID: 1, SpeciesName: "Elk", Confidence: 0.39},
		{SpeciesID: 2, SpeciesName: "Deer", Confidence: 0.40},
	}

	accepted := Filter(detections, 0.40)
	require.Len(t, accepted, 2)
	assert.Equal(t, "Wolf", accepted[0].SpeciesName)
	assert.Equal(t, "Deer", accepted[1].SpeciesName)

	// threshold above everything yields nil, not an empty non-nil slice
	assert.Nil(t, Filter(detections, 0.95))
	assert.Nil(t, Filter(nil, 0.1))
}

func TestLeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		detections []Detection
		wantName   string
		wantOK     bool
	}{
		{
			name:   "empty",
			wantOK: false,
		},
		{
			name: "highest confidence wins",
			detections: []Detection{
				{SpeciesID: 3, SpeciesName: "Deer", Confidence: 0.70},
				{SpeciesID: 1, SpeciesName: "Wolf", Confidence: 0.90},
			},
			wantName: "Wolf",
			wantOK:   true,
		},
		{
			name: "confidence tie breaks on lowest species id",
			detections: []Detection{
				{SpeciesID: 5, SpeciesName: "Cougar", Confidence: 0.80},
				{SpeciesID: 2, SpeciesName: "Coyote", Confidence: 0.80},
				{SpeciesID: 7, SpeciesName: "Bobcat", Confidence: 0.80},
			},
			wantName: "Coyote",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Leading(tt.detections)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantName, got.SpeciesName)
			}
		})
	}
}

func TestDistinctSpecies(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, DistinctSpecies(nil))
	assert.Equal(t, 2, DistinctSpecies([]Detection{
		{SpeciesName: "Wolf"},
		{SpeciesName: "Wolf"},
		{SpeciesName: "Elk"},
	}))
}

func TestSimulatedDetectorDeterministic(t *testing.T) {
	t.Parallel()

	labels := []string{"Wolf", "Elk", "Deer", "Moose"}
	det := NewSimulatedDetector(labels, 20)
	ctx := context.Background()

	a, err := det.DetectVideo(ctx, "/cam1/IMG_0042.mp4")
	require.NoError(t, err)
	b, err := det.DetectVideo(ctx, "/cam2/IMG_0042.mp4")
	require.NoError(t, err)

	// same base name, same synthetic detections regardless of directory
	require.Equal(t, a, b)
	assert.Len(t, a, 20)

	img, err := det.DetectImage(ctx, "trail_007.jpg")
	require.NoError(t, err)
	img2, err := det.DetectImage(ctx, "trail_007.jpg")
	require.NoError(t, err)
	assert.Equal(t, img, img2)
}

func TestSimulatedDetectorHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	det := NewSimulatedDetector([]string{"Wolf"}, 10)
	_, err := det.DetectVideo(ctx, "a.mp4")
	assert.ErrorIs(t, err, context.Canceled)
}
