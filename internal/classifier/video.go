// Package classifier reduces per-frame detector output to a single
// auditable classification per input file. The video aggregator folds an
// ordered frame stream through a small temporal state machine; the image
// classifier applies the single-frame rules.
package classifier

import (
	"github.com/wolfvue/wolfvue-go/internal/detection"
)

// VideoAggregator folds an ordered stream of per-frame accepted-detection
// sets into one classification for the whole video. Frames must arrive in
// order and must already be filtered by the policy's confidence threshold;
// below-threshold detections are absent, not present with a low score.
//
// Not safe for concurrent use; one aggregator serves one video.
type VideoAggregator struct {
	policy Policy

	counts      map[string]int
	transitions int
	mixedFrames int

	// prevSpecies is the leading species of the last non-empty frame.
	// Empty frames do not reset it.
	prevSpecies    string
	sawNonEmpty    bool
	emptyRun       int
	sawEmptyRun    bool
	framesObserved int
}

// NewVideoAggregator returns an aggregator for one video under the given
// policy. The policy is assumed validated.
func NewVideoAggregator(policy Policy) *VideoAggregator {
	return &VideoAggregator{
		policy: policy,
		counts: make(map[string]int),
	}
}

// Observe folds one frame into the running state. Detections in the frame
// are expected to be the accepted set for that frame.
func (a *VideoAggregator) Observe(frame detection.FrameDetections) {
	a.framesObserved++

	leading, ok := detection.Leading(frame.Detections)
	if !ok {
		a.emptyRun++
		if a.emptyRun >= a.policy.ConsecutiveEmptyFrames {
			a.sawEmptyRun = true
		}
		return
	}

	a.emptyRun = 0
	a.counts[leading.SpeciesName]++

	if detection.DistinctSpecies(frame.Detections) >= 2 {
		a.mixedFrames++
	}

	if a.sawNonEmpty && leading.SpeciesName != a.prevSpecies {
		a.transitions++
	}
	a.prevSpecies = leading.SpeciesName
	a.sawNonEmpty = true
}

// Result applies the final decision to the folded state. Call once, after
// the last frame; observing further frames after Result is undefined.
func (a *VideoAggregator) Result() Result {
	result := Result{
		Source:             SourceVideo,
		SpeciesFrameCounts: a.counts,
		Transitions:        a.transitions,
		MixedFrames:        a.mixedFrames,
		SawEmptyRun:        a.sawEmptyRun,
	}

	if !a.sawNonEmpty {
		result.Label = NoAnimalLabel()
		return result
	}

	totalNonEmpty := 0
	for _, c := range a.counts {
		totalNonEmpty += c
	}

	top := ""
	topCount := -1
	for species, c := range a.counts {
		// tie-break on name for a stable result across map iteration order
		if c > topCount || (c == topCount && species < top) {
			top = species
			topCount = c
		}
	}
	topShare := float64(topCount) / float64(totalNonEmpty)
	result.Confidence = topShare

	switch {
	case a.transitions > a.policy.MaxSpeciesTransitions:
		// too volatile to trust a single species
		result.Label = UnsortedLabel()
	case topShare >= a.policy.DominantSpeciesThreshold:
		result.Label = SpeciesLabel(top)
	default:
		result.Label = UnsortedLabel()
	}
	return result
}

// ClassifyVideo filters each frame by the policy's confidence threshold
// and folds the whole sequence, returning the final classification.
func ClassifyVideo(policy Policy, frames []detection.FrameDetections) Result {
	agg := NewVideoAggregator(policy)
	for _, frame := range frames {
		agg.Observe(detection.FilterFrame(frame, policy.ConfidenceThreshold))
	}
	return agg.Result()
}
