package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfvue/wolfvue-go/internal/observation"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	run := &Run{
		ID:         "run-1",
		StartedAt:  time.Now(),
		State:      "running",
		InputDir:   "/in",
		OutputDir:  "/out",
		TotalFiles: 2,
	}
	require.NoError(t, store.SaveRun(run))

	finished := time.Now()
	require.NoError(t, store.FinishRun("run-1", "completed", finished))

	var got Run
	require.NoError(t, store.db.First(&got, "id = ?", "run-1").Error)
	assert.Equal(t, "completed", got.State)
	require.NotNil(t, got.FinishedAt)
}

func TestEntriesKeepProcessingOrder(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	require.NoError(t, store.SaveRun(&Run{ID: "run-2", StartedAt: time.Now(), State: "running"}))

	for _, name := range []string{"c.mp4", "a.jpg", "b.mp4"} {
		record := observation.Record{
			FilePath:    "/in/" + name,
			FileName:    name,
			Label:       "Wolf",
			Species:     "Wolf",
			Category:    "Canids",
			Confidence:  0.93,
			Elapsed:     125 * time.Millisecond,
			ProcessedAt: time.Now(),
		}
		require.NoError(t, store.SaveEntry(EntryFromRecord("run-2", &record)))
	}

	entries, err := store.RunEntries("run-2")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c.mp4", entries[0].FileName)
	assert.Equal(t, "a.jpg", entries[1].FileName)
	assert.Equal(t, "b.mp4", entries[2].FileName)
	assert.Equal(t, int64(125*time.Millisecond), entries[0].ElapsedNs)
}

func TestEntryFromRecordCarriesError(t *testing.T) {
	t.Parallel()

	record := observation.Record{
		FilePath: "/in/x.mp4",
		FileName: "x.mp4",
		Error:    "destination file already exists",
	}
	entry := EntryFromRecord("run-3", &record)
	assert.Equal(t, "destination file already exists", entry.Error)
	assert.Equal(t, "run-3", entry.RunID)
}
