package classifier

import (
	"github.com/wolfvue/wolfvue-go/internal/detection"
)

// ClassifyImage applies the single-frame rules to one still image. The
// raw detections are filtered by the policy's image confidence threshold
// before the rules run; the policy is assumed validated.
//
// Decision order: too few accepted detections means No_Animal; a second
// species within ImageMultiSpeciesThreshold of the top confidence means
// Unsorted; a top confidence inside the unsorted band means Unsorted;
// anything else classifies as the top detection's species.
func ClassifyImage(policy Policy, frame detection.FrameDetections) Result {
	accepted := detection.Filter(frame.Detections, policy.ImageConfidenceThreshold)

	result := Result{Source: SourceImage}

	if len(accepted) < policy.ImageMinDetections {
		result.Label = NoAnimalLabel()
		// Report the strongest rejected signal rather than discarding it;
		// the label stays No_Animal either way.
		if best, ok := detection.Leading(accepted); ok {
			result.Confidence = best.Confidence
		}
		return result
	}

	top, _ := detection.Leading(accepted)
	result.Confidence = top.Confidence

	if second, ok := secondSpecies(accepted, top.SpeciesName); ok {
		if top.Confidence-second.Confidence < policy.ImageMultiSpeciesThreshold {
			result.Label = UnsortedLabel()
			return result
		}
	}

	if top.Confidence >= policy.ImageUnsortedMinConfidence &&
		top.Confidence <= policy.ImageUnsortedMaxConfidence {
		result.Label = UnsortedLabel()
		return result
	}

	result.Label = SpeciesLabel(top.SpeciesName)
	return result
}

// secondSpecies returns the highest-confidence detection belonging to a
// species other than exclude. The boolean is false when every detection is
// of the excluded species.
func secondSpecies(detections []detection.Detection, exclude string) (detection.Detection, bool) {
	var best detection.Detection
	found := false
	for _, d := range detections {
		if d.SpeciesName == exclude {
			continue
		}
		if !found || d.Confidence > best.Confidence ||
			(d.Confidence == best.Confidence && d.SpeciesID < best.SpeciesID) {
			best = d
			found = true
		}
	}
	return best, found
}
