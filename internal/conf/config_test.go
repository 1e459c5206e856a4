package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfvue/wolfvue-go/internal/errors"
)

func validSettings() *Settings {
	return &Settings{
		Input:    InputSettings{Path: "/in"},
		Output:   OutputSettings{Path: "/out"},
		Taxonomy: TaxonomySettings{Path: "taxonomy.yaml"},
		Detector: DetectorSettings{Labels: []string{"Wolf"}, FrameCount: 30},
		Thresholds: ThresholdSettings{
			ConfidenceThreshold:        0.40,
			DominantSpeciesThreshold:   0.90,
			MaxSpeciesTransitions:      5,
			ConsecutiveEmptyFrames:     15,
			ImageConfidenceThreshold:   0.65,
			ImageMinDetections:         1,
			ImageMultiSpeciesThreshold: 0.60,
			ImageUnsortedMinConfidence: 0.35,
			ImageUnsortedMaxConfidence: 0.65,
		},
		Media: MediaSettings{
			VideoExtensions: []string{".mp4"},
			ImageExtensions: []string{".jpg"},
		},
	}
}

func TestValidateSettingsAccepts(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantCat errors.ErrorCategory
	}{
		{
			name:    "missing input path",
			mutate:  func(s *Settings) { s.Input.Path = "" },
			wantCat: errors.CategoryConfiguration,
		},
		{
			name:    "missing output path",
			mutate:  func(s *Settings) { s.Output.Path = "" },
			wantCat: errors.CategoryConfiguration,
		},
		{
			name:    "missing taxonomy path",
			mutate:  func(s *Settings) { s.Taxonomy.Path = "" },
			wantCat: errors.CategoryConfiguration,
		},
		{
			name:    "invalid thresholds",
			mutate:  func(s *Settings) { s.Thresholds.DominantSpeciesThreshold = 0.1 },
			wantCat: errors.CategoryPolicyConfig,
		},
		{
			name: "no media extensions",
			mutate: func(s *Settings) {
				s.Media.VideoExtensions = nil
				s.Media.ImageExtensions = nil
			},
			wantCat: errors.CategoryConfiguration,
		},
		{
			name:    "extension without dot",
			mutate:  func(s *Settings) { s.Media.ImageExtensions = []string{"jpg"} },
			wantCat: errors.CategoryConfiguration,
		},
		{
			name:    "zero frame count",
			mutate:  func(s *Settings) { s.Detector.FrameCount = 0 },
			wantCat: errors.CategoryConfiguration,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)
			require.Error(t, err)

			var enhanced *errors.EnhancedError
			require.True(t, errors.As(err, &enhanced))
			assert.Equal(t, string(tt.wantCat), enhanced.GetCategory())
		})
	}
}

func TestThresholdSettingsPolicyRoundTrip(t *testing.T) {
	t.Parallel()

	policy := validSettings().Thresholds.Policy()
	assert.InDelta(t, 0.40, policy.ConfidenceThreshold, 1e-9)
	assert.InDelta(t, 0.90, policy.DominantSpeciesThreshold, 1e-9)
	assert.Equal(t, 5, policy.MaxSpeciesTransitions)
	assert.Equal(t, 15, policy.ConsecutiveEmptyFrames)
	require.NoError(t, policy.Validate())
}
