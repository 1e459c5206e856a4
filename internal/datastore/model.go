package datastore

import "time"

// Run is one batch classification run.
type Run struct {
	ID         string `gorm:"column:id;primaryKey"`
	StartedAt  time.Time
	FinishedAt *time.Time
	State      string // running, completed, cancelled, failed
	InputDir   string
	OutputDir  string
	TotalFiles int
}

// Entry is the persisted form of one per-file report record.
type Entry struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RunID       string `gorm:"index"`
	FilePath    string
	FileName    string
	SourceKind  string
	Label       string `gorm:"index"`
	Species     string `gorm:"index"`
	Category    string
	Confidence  float64
	Transitions int
	Destination string
	ElapsedNs   int64
	Error       string
	ProcessedAt time.Time
}
