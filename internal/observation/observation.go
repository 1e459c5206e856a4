// Package observation builds the per-file classification records that make
// up a batch report. A record carries enough to reconstruct per-species
// counts, success rate and timing without re-reading the filesystem.
package observation

import (
	"path/filepath"
	"time"

	"github.com/wolfvue/wolfvue-go/internal/classifier"
	"github.com/wolfvue/wolfvue-go/internal/taxonomy"
)

// Record is the classification outcome for one input file. Append-only
// within a batch report; never mutated after creation.
type Record struct {
	FilePath string
	FileName string

	SourceKind string // "video" or "image"
	Label      string // species name, "Unsorted" or "No_Animal"
	Species    string // set only for species labels
	Category   string // taxonomy category, "Other" for unmapped species
	Confidence float64

	// Video-only aggregation detail.
	Transitions        int
	SpeciesFrameCounts map[string]int
	MixedFrames        int
	SawEmptyRun        bool

	// Destination is the routed path; empty when routing failed.
	Destination string

	Elapsed     time.Duration
	ProcessedAt time.Time

	// Error holds the per-file failure, if any. A record with an error
	// still counts toward the report's ordering.
	Error string
}

// New builds a record from a classification result and routing decision.
// destination is the final routed file path, empty if the file was not
// moved.
func New(filePath string, result *classifier.Result, decision taxonomy.RoutingDecision, destination string, elapsed time.Duration) Record {
	r := Record{
		FilePath:    filePath,
		FileName:    filepath.Base(filePath),
		Destination: destination,
		Elapsed:     elapsed,
		ProcessedAt: time.Now(),
	}
	if result != nil {
		r.SourceKind = result.Source.String()
		r.Label = result.Label.String()
		r.Confidence = result.Confidence
		r.Transitions = result.Transitions
		r.SpeciesFrameCounts = result.FrameCountsCopy()
		r.MixedFrames = result.MixedFrames
		r.SawEmptyRun = result.SawEmptyRun
		if result.Label.Kind == classifier.LabelSpecies {
			r.Species = result.Label.Species
			r.Category = decision.Category
		}
	}
	return r
}

// NewError builds a record for a file that failed before or during
// routing.
func NewError(filePath string, result *classifier.Result, err error, elapsed time.Duration) Record {
	r := New(filePath, result, taxonomy.RoutingDecision{}, "", elapsed)
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// Failed reports whether the record carries a per-file error.
func (r *Record) Failed() bool {
	return r.Error != ""
}
