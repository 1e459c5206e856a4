package classifier

import (
	"fmt"

	"github.com/wolfvue/wolfvue-go/internal/errors"
)

// Default threshold values. These mirror the field defaults applied by
// conf and are used wherever a zero policy needs filling in.
const (
	DefaultConfidenceThreshold        = 0.40
	DefaultDominantSpeciesThreshold   = 0.90
	DefaultMaxSpeciesTransitions      = 5
	DefaultConsecutiveEmptyFrames     = 15
	DefaultImageConfidenceThreshold   = 0.65
	DefaultImageMinDetections         = 1
	DefaultImageMultiSpeciesThreshold = 0.60
	DefaultImageUnsortedMinConfidence = 0.35
	DefaultImageUnsortedMaxConfidence = 0.65
)

// Policy holds every numeric knob of the classification pipeline. It is
// constructed once per run, validated up front, and read-only afterwards,
// so the aggregation code never re-checks ranges.
type Policy struct {
	// ConfidenceThreshold is the per-frame acceptance cut for video frames.
	ConfidenceThreshold float64
	// DominantSpeciesThreshold is the minimum share of non-empty frames
	// the leading species must hold for a video to classify as that
	// species. Must be in [0.5, 1.0].
	DominantSpeciesThreshold float64
	// MaxSpeciesTransitions is the number of leading-species changes a
	// video may show before it is considered too volatile and lands in
	// Unsorted.
	MaxSpeciesTransitions int
	// ConsecutiveEmptyFrames is the empty-frame run length that flags a
	// video as containing a long animal-free stretch.
	ConsecutiveEmptyFrames int

	// ImageConfidenceThreshold is the acceptance cut for still images.
	ImageConfidenceThreshold float64
	// ImageMinDetections is the minimum number of accepted detections an
	// image needs to be considered non-empty.
	ImageMinDetections int
	// ImageMultiSpeciesThreshold is the minimum confidence gap between
	// the top detection and the best detection of any other species; a
	// smaller gap makes the image ambiguous.
	ImageMultiSpeciesThreshold float64
	// ImageUnsortedMinConfidence and ImageUnsortedMaxConfidence bound the
	// low-certainty band reserved for manual review. Min must be strictly
	// below max.
	ImageUnsortedMinConfidence float64
	ImageUnsortedMaxConfidence float64
}

// DefaultPolicy returns the policy with stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ConfidenceThreshold:        DefaultConfidenceThreshold,
		DominantSpeciesThreshold:   DefaultDominantSpeciesThreshold,
		MaxSpeciesTransitions:      DefaultMaxSpeciesTransitions,
		ConsecutiveEmptyFrames:     DefaultConsecutiveEmptyFrames,
		ImageConfidenceThreshold:   DefaultImageConfidenceThreshold,
		ImageMinDetections:         DefaultImageMinDetections,
		ImageMultiSpeciesThreshold: DefaultImageMultiSpeciesThreshold,
		ImageUnsortedMinConfidence: DefaultImageUnsortedMinConfidence,
		ImageUnsortedMaxConfidence: DefaultImageUnsortedMaxConfidence,
	}
}

// Validate checks every field against its documented range. It returns an
// error wrapping errors.ErrInvalidPolicy on the first violation found and
// has no side effects. It must be called before any classification run.
func (p Policy) Validate() error {
	probabilities := []struct {
		name  string
		value float64
	}{
		{"confidence_threshold", p.ConfidenceThreshold},
		{"dominant_species_threshold", p.DominantSpeciesThreshold},
		{"image_confidence_threshold", p.ImageConfidenceThreshold},
		{"image_multi_species_threshold", p.ImageMultiSpeciesThreshold},
		{"image_unsorted_min_confidence", p.ImageUnsortedMinConfidence},
		{"image_unsorted_max_confidence", p.ImageUnsortedMaxConfidence},
	}
	for _, field := range probabilities {
		if field.value < 0 || field.value > 1 {
			return invalidPolicy(field.name, fmt.Sprintf("%v not in [0, 1]", field.value))
		}
	}

	if p.DominantSpeciesThreshold < 0.5 {
		return invalidPolicy("dominant_species_threshold",
			fmt.Sprintf("%v below minimum 0.5", p.DominantSpeciesThreshold))
	}

	counts := []struct {
		name  string
		value int
	}{
		{"max_species_transitions", p.MaxSpeciesTransitions},
		{"consecutive_empty_frames", p.ConsecutiveEmptyFrames},
		{"image_min_detections", p.ImageMinDetections},
	}
	for _, field := range counts {
		if field.value < 1 {
			return invalidPolicy(field.name, fmt.Sprintf("%d below minimum 1", field.value))
		}
	}

	if p.ImageUnsortedMinConfidence >= p.ImageUnsortedMaxConfidence {
		return invalidPolicy("image_unsorted_min_confidence",
			fmt.Sprintf("%v not below image_unsorted_max_confidence %v",
				p.ImageUnsortedMinConfidence, p.ImageUnsortedMaxConfidence))
	}

	return nil
}

func invalidPolicy(field, reason string) error {
	return errors.New(fmt.Errorf("%w: %s: %s", errors.ErrInvalidPolicy, field, reason)).
		Component("classifier.policy").
		Category(errors.CategoryPolicyConfig).
		Context("field", field).
		Build()
}
