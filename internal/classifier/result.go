package classifier

import "maps"

// LabelKind discriminates the classification label variants.
type LabelKind int

const (
	// LabelSpecies means the file classified to a concrete species.
	LabelSpecies LabelKind = iota
	// LabelUnsorted means the file is ambiguous or low-certainty and
	// needs manual review.
	LabelUnsorted
	// LabelNoAnimal means no accepted detection appeared in the file.
	LabelNoAnimal
)

// Bucket names used for the non-species labels in output paths and
// reports. These match the fixed top-level output directories.
const (
	UnsortedBucket = "Unsorted"
	NoAnimalBucket = "No_Animal"
)

// Label is the classification decision for one input file: a concrete
// species, Unsorted, or No_Animal. Exactly one label is produced per file.
type Label struct {
	Kind    LabelKind
	Species string // set only when Kind == LabelSpecies
}

// SpeciesLabel returns a species label for the given name.
func SpeciesLabel(name string) Label {
	return Label{Kind: LabelSpecies, Species: name}
}

// UnsortedLabel returns the manual-review label.
func UnsortedLabel() Label {
	return Label{Kind: LabelUnsorted}
}

// NoAnimalLabel returns the no-animal label.
func NoAnimalLabel() Label {
	return Label{Kind: LabelNoAnimal}
}

// String returns the species name or the fixed bucket name.
func (l Label) String() string {
	switch l.Kind {
	case LabelUnsorted:
		return UnsortedBucket
	case LabelNoAnimal:
		return NoAnimalBucket
	default:
		return l.Species
	}
}

// SourceKind records whether a result came from a video or a still image.
type SourceKind int

const (
	SourceVideo SourceKind = iota
	SourceImage
)

func (s SourceKind) String() string {
	if s == SourceImage {
		return "image"
	}
	return "video"
}

// Result is the classification outcome for one input file. Created by the
// video aggregator or image classifier, consumed by the router and
// reporting; never mutated after creation.
type Result struct {
	Label      Label
	Confidence float64
	Source     SourceKind

	// Video-only fields. SpeciesFrameCounts maps species name to the
	// number of non-empty frames it led; Transitions counts leading
	// species changes between non-empty frames.
	SpeciesFrameCounts map[string]int
	Transitions        int
	// MixedFrames counts video frames that contained two or more
	// distinct accepted species.
	MixedFrames int
	// SawEmptyRun is set when the video contained at least one run of
	// consecutive empty frames reaching the policy limit. Reported for
	// review context; it does not change the label.
	SawEmptyRun bool
}

// FrameCountsCopy returns a defensive copy of SpeciesFrameCounts for
// callers that aggregate across files.
func (r *Result) FrameCountsCopy() map[string]int {
	if r.SpeciesFrameCounts == nil {
		return nil
	}
	out := make(map[string]int, len(r.SpeciesFrameCounts))
	maps.Copy(out, r.SpeciesFrameCounts)
	return out
}
