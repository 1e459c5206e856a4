// Package datastore persists batch runs and their per-file report entries
// so reporting layers can query past runs without re-reading the
// filesystem.
package datastore

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wolfvue/wolfvue-go/internal/errors"
	"github.com/wolfvue/wolfvue-go/internal/observation"
)

// Interface abstracts report persistence for the orchestrator and tests.
type Interface interface {
	SaveRun(run *Run) error
	FinishRun(runID, state string, finishedAt time.Time) error
	SaveEntry(entry *Entry) error
	RunEntries(runID string) ([]Entry, error)
	Close() error
}

// SQLite is the gorm-backed store.
type SQLite struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite report database at path and
// migrates the schema.
func Open(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.New(fmt.Errorf("opening report database: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatastore).
			Context("path", path).
			Build()
	}
	if err := db.AutoMigrate(&Run{}, &Entry{}); err != nil {
		return nil, errors.New(fmt.Errorf("migrating report database: %w", err)).
			Component("datastore").
			Category(errors.CategoryDatastore).
			Context("path", path).
			Build()
	}
	return &SQLite{db: db}, nil
}

// SaveRun inserts or updates a run row.
func (s *SQLite) SaveRun(run *Run) error {
	if err := s.db.Save(run).Error; err != nil {
		return dbErr("save_run", err)
	}
	return nil
}

// FinishRun marks a run terminal with the given state.
func (s *SQLite) FinishRun(runID, state string, finishedAt time.Time) error {
	err := s.db.Model(&Run{}).
		Where("id = ?", runID).
		Updates(map[string]any{"state": state, "finished_at": finishedAt}).Error
	if err != nil {
		return dbErr("finish_run", err)
	}
	return nil
}

// SaveEntry appends one report entry.
func (s *SQLite) SaveEntry(entry *Entry) error {
	if err := s.db.Create(entry).Error; err != nil {
		return dbErr("save_entry", err)
	}
	return nil
}

// RunEntries returns a run's entries in processing order.
func (s *SQLite) RunEntries(runID string) ([]Entry, error) {
	var entries []Entry
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&entries).Error; err != nil {
		return nil, dbErr("run_entries", err)
	}
	return entries, nil
}

// Close closes the underlying connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return dbErr("close", err)
	}
	return sqlDB.Close()
}

func dbErr(operation string, err error) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatastore).
		Context("operation", operation).
		Build()
}

// EntryFromRecord converts a report record into its persisted form.
func EntryFromRecord(runID string, record *observation.Record) *Entry {
	return &Entry{
		RunID:       runID,
		FilePath:    record.FilePath,
		FileName:    record.FileName,
		SourceKind:  record.SourceKind,
		Label:       record.Label,
		Species:     record.Species,
		Category:    record.Category,
		Confidence:  record.Confidence,
		Transitions: record.Transitions,
		Destination: record.Destination,
		ElapsedNs:   record.Elapsed.Nanoseconds(),
		Error:       record.Error,
		ProcessedAt: record.ProcessedAt,
	}
}
