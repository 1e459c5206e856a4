package batch

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/wolfvue/wolfvue-go/internal/classifier"
)

// Summary is the per-run aggregate computed from a report. It carries
// everything a reporting layer needs without re-reading the filesystem.
type Summary struct {
	TotalFiles int
	Processed  int
	Succeeded  int
	Failed     int

	// LabelCounts maps species name / "Unsorted" / "No_Animal" to the
	// number of files that classified there.
	LabelCounts map[string]int
	// FrameCounts aggregates per-species non-empty frame counts over all
	// videos in the run.
	FrameCounts map[string]int

	AverageConfidence float64
	Elapsed           time.Duration
}

// SuccessRate returns the fraction of processed files without a per-file
// error, 0 when nothing was processed.
func (s *Summary) SuccessRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Processed)
}

// Summarize folds a report into its summary.
func Summarize(report *Report) Summary {
	s := Summary{
		TotalFiles:  report.TotalFiles,
		LabelCounts: make(map[string]int),
		FrameCounts: make(map[string]int),
	}
	if !report.FinishedAt.IsZero() {
		s.Elapsed = report.FinishedAt.Sub(report.StartedAt)
	}

	confidenceSum := 0.0
	for i := range report.Entries {
		entry := &report.Entries[i]
		s.Processed++
		if entry.Failed() {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.LabelCounts[entry.Label]++
		confidenceSum += entry.Confidence
		for species, count := range entry.SpeciesFrameCounts {
			s.FrameCounts[species] += count
		}
	}
	if s.Succeeded > 0 {
		s.AverageConfidence = confidenceSum / float64(s.Succeeded)
	}
	return s
}

// RenderTable writes the summary as a table for terminal output.
func (s *Summary) RenderTable(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Classification", "Files"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})

	// species rows sorted by count descending, then the fixed buckets
	type labelCount struct {
		label string
		count int
	}
	var species []labelCount
	for label, count := range s.LabelCounts {
		if label == classifier.UnsortedBucket || label == classifier.NoAnimalBucket {
			continue
		}
		species = append(species, labelCount{label, count})
	}
	sort.Slice(species, func(i, j int) bool {
		if species[i].count != species[j].count {
			return species[i].count > species[j].count
		}
		return species[i].label < species[j].label
	})
	for _, row := range species {
		tw.AppendRow(table.Row{row.label, row.count})
	}
	tw.AppendRow(table.Row{classifier.UnsortedBucket, s.LabelCounts[classifier.UnsortedBucket]})
	tw.AppendRow(table.Row{classifier.NoAnimalBucket, s.LabelCounts[classifier.NoAnimalBucket]})

	tw.AppendFooter(table.Row{"Processed", s.Processed})
	tw.Render()

	fmt.Fprintf(w, "Success rate: %.1f%%  Average confidence: %.3f  Elapsed: %s\n",
		s.SuccessRate()*100, s.AverageConfidence, s.Elapsed.Round(time.Millisecond))
}
