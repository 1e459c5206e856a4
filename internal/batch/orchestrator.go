package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wolfvue/wolfvue-go/internal/classifier"
	"github.com/wolfvue/wolfvue-go/internal/datastore"
	"github.com/wolfvue/wolfvue-go/internal/detection"
	"github.com/wolfvue/wolfvue-go/internal/errors"
	"github.com/wolfvue/wolfvue-go/internal/observability"
	"github.com/wolfvue/wolfvue-go/internal/observation"
	"github.com/wolfvue/wolfvue-go/internal/router"
	"github.com/wolfvue/wolfvue-go/internal/taxonomy"
)

// Progress is one event on the orchestrator's progress channel. Events are
// ordered; the final event carries the terminal state.
type Progress struct {
	FilesDone  int
	TotalFiles int
	// File is the path just finished, empty on the terminal event.
	File  string
	State State
}

// Config wires the orchestrator's collaborators. Policy and Taxonomy are
// read-only for the duration of a run.
type Config struct {
	Policy   classifier.Policy
	Taxonomy *taxonomy.Taxonomy
	Resolver *taxonomy.Resolver
	Router   *router.Router
	Detector detection.Detector
	Media    *MediaTypes

	// Store persists the run report; nil disables persistence.
	Store datastore.Interface
	// Metrics records pipeline counters; nil disables them.
	Metrics *observability.Metrics

	InputDir  string
	OutputDir string
	Logger    *slog.Logger
}

// Orchestrator drives one file at a time through filter, aggregation,
// resolution and routing. It runs on a dedicated goroutine so the calling
// interface is never blocked, and reports progress through an ordered
// one-way channel. Per-file failures land in the report; only
// configuration problems detectable before work begins abort a run.
type Orchestrator struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	report *Report
	wg     sync.WaitGroup
}

// New validates the configuration and returns an idle orchestrator.
// Validation failures here are fatal to starting any run: an invalid
// policy or an empty taxonomy never reaches file processing.
func New(cfg Config) (*Orchestrator, error) {
	if err := cfg.Policy.Validate(); err != nil {
		return nil, err
	}
	if cfg.Taxonomy == nil || cfg.Taxonomy.Empty() {
		return nil, errors.New(errors.ErrEmptyTaxonomy).
			Component("batch.orchestrator").
			Category(errors.CategoryTaxonomy).
			Build()
	}
	if cfg.Resolver == nil || cfg.Router == nil || cfg.Detector == nil || cfg.Media == nil {
		return nil, errors.Newf("orchestrator missing a collaborator").
			Component("batch.orchestrator").
			Category(errors.CategoryConfiguration).
			Build()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = GetLogger()
	}
	return &Orchestrator{
		cfg:    cfg,
		logger: logger,
		state:  Idle,
	}, nil
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Report returns the current run's report. The partial report remains
// available after cancellation.
func (o *Orchestrator) Report() *Report {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.report
}

// Start begins processing the given files in order on a worker goroutine
// and returns the progress channel. The channel is closed when the run
// reaches a terminal state. Cancellation is cooperative through ctx: the
// in-flight file finishes, the run stops before the next one, and the
// partial report is kept.
//
// Start returns ErrBatchRunning if a run is already in flight.
func (o *Orchestrator) Start(ctx context.Context, files []string) (<-chan Progress, error) {
	o.mu.Lock()
	if o.state == Running {
		o.mu.Unlock()
		return nil, errors.New(errors.ErrBatchRunning).
			Component("batch.orchestrator").
			Category(errors.CategoryState).
			Build()
	}
	o.state = Running
	o.report = &Report{
		RunID:      uuid.NewString(),
		InputDir:   o.cfg.InputDir,
		OutputDir:  o.cfg.OutputDir,
		TotalFiles: len(files),
		StartedAt:  time.Now(),
		State:      Running,
	}
	report := o.report
	o.mu.Unlock()

	// Buffered for every per-file event plus the terminal one, so a slow
	// consumer can never block the worker.
	progress := make(chan Progress, len(files)+1)

	if o.cfg.Metrics != nil {
		o.cfg.Metrics.BatchRunsActive.Set(1)
	}
	o.persistRunStart(report)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.runWorker(ctx, report, files, progress)
	}()

	return progress, nil
}

// Run is the synchronous convenience wrapper: it starts the batch, drains
// progress and returns the finished report.
func (o *Orchestrator) Run(ctx context.Context, files []string) (*Report, error) {
	progress, err := o.Start(ctx, files)
	if err != nil {
		return nil, err
	}
	for range progress {
	}
	return o.Report(), nil
}

// Wait blocks until the worker goroutine has exited.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) runWorker(ctx context.Context, report *Report, files []string, progress chan<- Progress) {
	defer close(progress)

	final := Completed
	func() {
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("batch worker panicked", "panic", fmt.Sprint(r))
				final = Failed
			}
		}()

		for _, file := range files {
			// cooperative cancellation, observed between files
			if ctx.Err() != nil {
				final = Cancelled
				return
			}

			record := o.processFile(ctx, file)
			o.mu.Lock()
			report.append(record)
			done := report.Done()
			o.mu.Unlock()

			o.observeRecord(&record)
			progress <- Progress{
				FilesDone:  done,
				TotalFiles: report.TotalFiles,
				File:       file,
				State:      Running,
			}
		}
	}()

	o.mu.Lock()
	o.state = final
	report.State = final
	report.FinishedAt = time.Now()
	done := report.Done()
	o.mu.Unlock()

	if o.cfg.Metrics != nil {
		o.cfg.Metrics.BatchRunsActive.Set(0)
	}
	o.persistRunFinish(report)

	o.logger.Info("batch run finished",
		"run_id", report.RunID,
		"state", final.String(),
		"files_done", done,
		"total_files", report.TotalFiles,
		"elapsed", report.FinishedAt.Sub(report.StartedAt).String())

	progress <- Progress{
		FilesDone:  done,
		TotalFiles: report.TotalFiles,
		State:      final,
	}
}

// processFile runs the full pipeline for one file. Every failure is
// scoped to the file and returned inside the record, never raised.
func (o *Orchestrator) processFile(ctx context.Context, file string) observation.Record {
	start := time.Now()

	kind := o.cfg.Media.KindOf(file)
	if kind == MediaUnknown {
		err := errors.Newf("unsupported media type").
			Component("batch.orchestrator").
			Category(errors.CategoryClassification).
			FileContext(file, 0).
			Build()
		return observation.NewError(file, nil, err, time.Since(start))
	}

	result, err := o.classify(ctx, file, kind)
	if err != nil {
		o.logger.Warn("detector failed", "file", file, "error", err)
		return observation.NewError(file, nil, err, time.Since(start))
	}

	decision, err := o.cfg.Resolver.Resolve(result.Label)
	if err != nil {
		return observation.NewError(file, &result, err, time.Since(start))
	}

	destination, err := o.cfg.Router.Route(file, decision)
	if err != nil {
		o.logger.Warn("routing failed", "file", file, "error", err)
		return observation.NewError(file, &result, err, time.Since(start))
	}

	elapsed := time.Since(start)
	o.logger.Debug("file classified",
		"file", file,
		"label", result.Label.String(),
		"confidence", fmt.Sprintf("%.3f", result.Confidence),
		"destination", destination,
		"elapsed", elapsed.String())

	return observation.New(file, &result, decision, destination, elapsed)
}

func (o *Orchestrator) classify(ctx context.Context, file string, kind MediaKind) (classifier.Result, error) {
	switch kind {
	case MediaVideo:
		frames, err := o.cfg.Detector.DetectVideo(ctx, file)
		if err != nil {
			return classifier.Result{}, detectorErr(file, err)
		}
		return classifier.ClassifyVideo(o.cfg.Policy, frames), nil
	default:
		frame, err := o.cfg.Detector.DetectImage(ctx, file)
		if err != nil {
			return classifier.Result{}, detectorErr(file, err)
		}
		return classifier.ClassifyImage(o.cfg.Policy, frame), nil
	}
}

func detectorErr(file string, err error) error {
	return errors.New(err).
		Component("batch.orchestrator").
		Category(errors.CategoryDetector).
		FileContext(file, 0).
		Build()
}

// observeRecord updates metrics and the report datastore for one record.
// Persistence failures are logged, never fatal to the run.
func (o *Orchestrator) observeRecord(record *observation.Record) {
	if o.cfg.Metrics != nil {
		label := "species"
		switch {
		case record.Label == classifier.UnsortedBucket:
			label = "unsorted"
		case record.Label == classifier.NoAnimalBucket:
			label = "no_animal"
		case record.Label == "":
			label = "error"
		}
		o.cfg.Metrics.FilesProcessed.WithLabelValues(label, record.SourceKind).Inc()
		if record.Species != "" {
			o.cfg.Metrics.SpeciesDetections.WithLabelValues(record.Species).Inc()
		}
		if record.Failed() {
			o.cfg.Metrics.RoutingErrors.WithLabelValues("per-file").Inc()
		}
		o.cfg.Metrics.FileProcessDuration.WithLabelValues(record.SourceKind).
			Observe(record.Elapsed.Seconds())
	}

	if o.cfg.Store != nil {
		o.mu.Lock()
		runID := o.report.RunID
		o.mu.Unlock()
		if err := o.cfg.Store.SaveEntry(datastore.EntryFromRecord(runID, record)); err != nil {
			o.logger.Warn("failed to persist report entry", "file", record.FilePath, "error", err)
		}
	}
}

func (o *Orchestrator) persistRunStart(report *Report) {
	if o.cfg.Store == nil {
		return
	}
	run := &datastore.Run{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		State:      Running.String(),
		InputDir:   report.InputDir,
		OutputDir:  report.OutputDir,
		TotalFiles: report.TotalFiles,
	}
	if err := o.cfg.Store.SaveRun(run); err != nil {
		o.logger.Warn("failed to persist run start", "run_id", report.RunID, "error", err)
	}
}

func (o *Orchestrator) persistRunFinish(report *Report) {
	if o.cfg.Store == nil {
		return
	}
	if err := o.cfg.Store.FinishRun(report.RunID, report.State.String(), report.FinishedAt); err != nil {
		o.logger.Warn("failed to persist run finish", "run_id", report.RunID, "error", err)
	}
}
