package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wolfvue/wolfvue-go/internal/conf"
	"github.com/wolfvue/wolfvue-go/internal/datastore"
	"github.com/wolfvue/wolfvue-go/internal/detection"
	"github.com/wolfvue/wolfvue-go/internal/errors"
	"github.com/wolfvue/wolfvue-go/internal/observability"
	"github.com/wolfvue/wolfvue-go/internal/router"
	"github.com/wolfvue/wolfvue-go/internal/taxonomy"
)

// pipeline bundles an assembled orchestrator with the pieces the CLI
// entry points need around it.
type pipeline struct {
	orchestrator *Orchestrator
	media        *MediaTypes
	close        func()
}

// assemble builds the full pipeline from validated settings: taxonomy,
// resolver, router, detector and the optional report datastore.
func assemble(settings *conf.Settings) (*pipeline, error) {
	logger := GetLogger()

	tax, err := taxonomy.Load(settings.Taxonomy.Path, logger)
	if err != nil {
		return nil, err
	}

	outputRoot, err := filepath.Abs(settings.Output.Path)
	if err != nil {
		return nil, errors.New(err).
			Component("batch.pipeline").
			Category(errors.CategoryConfiguration).
			Context("output_path", settings.Output.Path).
			Build()
	}

	var store datastore.Interface
	closeStore := func() {}
	if settings.Output.ReportDB != "" {
		sqlite, err := datastore.Open(settings.Output.ReportDB)
		if err != nil {
			return nil, err
		}
		store = sqlite
		closeStore = func() {
			if err := sqlite.Close(); err != nil {
				logger.Warn("failed to close report datastore", "error", err)
			}
		}
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		closeStore()
		return nil, err
	}

	media := NewMediaTypes(settings.Media.VideoExtensions, settings.Media.ImageExtensions)

	orchestrator, err := New(Config{
		Policy:    settings.Thresholds.Policy(),
		Taxonomy:  tax,
		Resolver:  taxonomy.NewResolver(tax, outputRoot),
		Router:    router.New(logger),
		Detector:  detection.NewSimulatedDetector(settings.Detector.Labels, settings.Detector.FrameCount),
		Media:     media,
		Store:     store,
		Metrics:   metrics,
		InputDir:  settings.Input.Path,
		OutputDir: outputRoot,
		Logger:    logger,
	})
	if err != nil {
		closeStore()
		return nil, err
	}

	return &pipeline{
		orchestrator: orchestrator,
		media:        media,
		close:        closeStore,
	}, nil
}

// SortFile classifies a single media file and moves it into the sorted
// output tree.
func SortFile(ctx context.Context, settings *conf.Settings) error {
	p, err := assemble(settings)
	if err != nil {
		return err
	}
	defer p.close()

	path, err := filepath.Abs(settings.Input.Path)
	if err != nil {
		return errors.New(err).
			Component("batch.pipeline").
			Category(errors.CategoryConfiguration).
			Context("input_path", settings.Input.Path).
			Build()
	}

	report, err := p.orchestrator.Run(ctx, []string{path})
	if err != nil {
		return err
	}
	p.orchestrator.Wait()

	printEntries(report)
	return reportOutcome(report)
}

// SortDirectory scans the input directory for media files and pushes
// every one of them through the pipeline, printing progress as the run
// advances and a summary table once it finishes.
func SortDirectory(ctx context.Context, settings *conf.Settings) error {
	p, err := assemble(settings)
	if err != nil {
		return err
	}
	defer p.close()

	root, err := filepath.Abs(settings.Input.Path)
	if err != nil {
		return errors.New(err).
			Component("batch.pipeline").
			Category(errors.CategoryConfiguration).
			Context("input_path", settings.Input.Path).
			Build()
	}

	files, err := ScanDir(root, p.media, settings.Input.Recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No media files found in %s\n", root)
		return nil
	}

	progress, err := p.orchestrator.Start(ctx, files)
	if err != nil {
		return err
	}
	for event := range progress {
		if event.File == "" {
			continue
		}
		fmt.Printf("[%d/%d] %s\n", event.FilesDone, event.TotalFiles, filepath.Base(event.File))
	}
	p.orchestrator.Wait()

	report := p.orchestrator.Report()
	if settings.Debug {
		printEntries(report)
	}

	summary := Summarize(report)
	fmt.Println()
	summary.RenderTable(os.Stdout)
	return reportOutcome(report)
}

// printEntries writes one line per processed file, in report order.
func printEntries(report *Report) {
	for i := range report.Entries {
		entry := &report.Entries[i]
		switch {
		case entry.Failed():
			fmt.Printf("%s: error: %s\n", entry.FileName, entry.Error)
		case entry.Species != "":
			fmt.Printf("%s: %s (%s, confidence %.2f) -> %s\n",
				entry.FileName, entry.Species, entry.Category, entry.Confidence, entry.Destination)
		default:
			fmt.Printf("%s: %s -> %s\n", entry.FileName, entry.Label, entry.Destination)
		}
	}
}

// reportOutcome converts a terminal report state into the command's exit
// error. Per-file failures are already in the report and do not fail the
// command; only a cancelled or failed run does.
func reportOutcome(report *Report) error {
	switch report.State {
	case Cancelled:
		return errors.Newf("batch run cancelled after %d of %d files", report.Done(), report.TotalFiles).
			Component("batch.pipeline").
			Category(errors.CategoryState).
			Build()
	case Failed:
		return errors.Newf("batch run failed after %d of %d files", report.Done(), report.TotalFiles).
			Component("batch.pipeline").
			Category(errors.CategoryState).
			Build()
	default:
		return nil
	}
}
