// Package detection provides the domain models for per-frame object
// detector output. These models are the boundary between the external
// detector and the classification pipeline: the detector produces them,
// the pipeline only reads them.
package detection

import "fmt"

// BoundingBox is a detector-supplied rectangle in pixel coordinates.
// The aggregation pipeline carries it through for reporting but never
// interprets it.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Detection represents a single detector hit in one frame: a species
// class, its confidence, and an optional bounding box. Immutable once
// produced by the detector.
type Detection struct {
	SpeciesID   int
	SpeciesName string
	Confidence  float64
	BBox        *BoundingBox
}

// String returns a compact human-readable form used in debug logs.
func (d Detection) String() string {
	return fmt.Sprintf("%s(%d)@%.3f", d.SpeciesName, d.SpeciesID, d.Confidence)
}

// FrameDetections holds the ordered detections for one frame of a video,
// or the sole frame of a still image. FrameIndex is 0-based and
// monotonically increasing within a video.
type FrameDetections struct {
	FrameIndex int
	Detections []Detection
}

// Filter returns the accepted detections, those whose confidence meets or
// exceeds threshold. The input slice is not modified; order is preserved.
func Filter(detections []Detection, threshold float64) []Detection {
	if len(detections) == 0 {
		return nil
	}
	accepted := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if d.Confidence >= threshold {
			accepted = append(accepted, d)
		}
	}
	if len(accepted) == 0 {
		return nil
	}
	return accepted
}

// FilterFrame applies Filter to a frame, returning a new frame with the
// same index and only the accepted detections.
func FilterFrame(frame FrameDetections, threshold float64) FrameDetections {
	return FrameDetections{
		FrameIndex: frame.FrameIndex,
		Detections: Filter(frame.Detections, threshold),
	}
}

// Leading returns the detection with the highest confidence, ties broken
// by lowest species id for determinism. The boolean is false when the
// slice is empty.
func Leading(detections []Detection) (Detection, bool) {
	if len(detections) == 0 {
		return Detection{}, false
	}
	best := detections[0]
	for _, d := range detections[1:] {
		if d.Confidence > best.Confidence ||
			(d.Confidence == best.Confidence && d.SpeciesID < best.SpeciesID) {
			best = d
		}
	}
	return best, true
}

// DistinctSpecies returns the number of distinct species names present.
func DistinctSpecies(detections []Detection) int {
	if len(detections) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(detections))
	for _, d := range detections {
		seen[d.SpeciesName] = struct{}{}
	}
	return len(seen)
}
