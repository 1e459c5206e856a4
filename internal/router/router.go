// Package router moves classified files into their resolved destination
// directories. A move never overwrites an existing destination file and
// falls back to copy, verify and delete when the destination is on a
// different filesystem.
package router

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/wolfvue/wolfvue-go/internal/errors"
	"github.com/wolfvue/wolfvue-go/internal/taxonomy"
)

// Router places source files into destination directories, preserving the
// original filename. Safe for reuse across files; it holds no per-file
// state beyond the logger.
type Router struct {
	logger *slog.Logger
}

// New returns a router logging through the given logger. A nil logger
// falls back to slog.Default.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{logger: logger}
}

// Route moves sourcePath into the decision's destination directory and
// returns the final destination path. The destination directory is created
// on demand. If a file of the same name already exists at the destination
// the move fails with errors.ErrDestinationExists and the source file is
// left untouched.
func (r *Router) Route(sourcePath string, decision taxonomy.RoutingDecision) (string, error) {
	if err := os.MkdirAll(decision.Path, 0o755); err != nil {
		return "", errors.New(fmt.Errorf("creating destination directory: %w", err)).
			Component("router").
			Category(errors.CategoryFileIO).
			Context("destination_dir", decision.Path).
			Build()
	}

	destPath := filepath.Join(decision.Path, filepath.Base(sourcePath))

	// Collision check before any write. os.Rename would silently replace
	// an existing file; destructive overwrite must never happen here.
	if _, err := os.Lstat(destPath); err == nil {
		return "", errors.New(fmt.Errorf("routing %s: %w", filepath.Base(sourcePath), errors.ErrDestinationExists)).
			Component("router").
			Category(errors.CategoryRouting).
			Context("destination", destPath).
			Build()
	} else if !os.IsNotExist(err) {
		return "", errors.New(fmt.Errorf("checking destination: %w", err)).
			Component("router").
			Category(errors.CategoryFileIO).
			Context("destination", destPath).
			Build()
	}

	if err := os.Rename(sourcePath, destPath); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			// destination is on another filesystem
			if err := r.copyVerifyDelete(sourcePath, destPath); err != nil {
				return "", err
			}
			r.logger.Debug("moved file across filesystems",
				"source", sourcePath, "destination", destPath)
			return destPath, nil
		}
		return "", errors.New(fmt.Errorf("%w: %v", errors.ErrMoveFailed, err)).
			Component("router").
			Category(errors.CategoryRouting).
			Context("source", sourcePath).
			Context("destination", destPath).
			Build()
	}

	return destPath, nil
}

// copyVerifyDelete copies source to dest, verifies the copied size matches,
// and only then removes the source. A failed verify leaves the source in
// place and removes the partial destination.
func (r *Router) copyVerifyDelete(sourcePath, destPath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return moveFailed("open source", sourcePath, destPath, err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return moveFailed("stat source", sourcePath, destPath, err)
	}

	dest, err := os.OpenFile(destPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return moveFailed("create destination", sourcePath, destPath, err)
	}

	written, err := io.Copy(dest, source)
	if err != nil {
		dest.Close()
		os.Remove(destPath)
		return moveFailed("copy data", sourcePath, destPath, err)
	}
	if err := dest.Sync(); err != nil {
		dest.Close()
		os.Remove(destPath)
		return moveFailed("sync destination", sourcePath, destPath, err)
	}
	if err := dest.Close(); err != nil {
		os.Remove(destPath)
		return moveFailed("close destination", sourcePath, destPath, err)
	}

	if written != info.Size() {
		os.Remove(destPath)
		return moveFailed("verify size", sourcePath, destPath,
			fmt.Errorf("wrote %d bytes, expected %d", written, info.Size()))
	}

	if err := os.Remove(sourcePath); err != nil {
		// the copy is complete, so the move succeeded; just report the
		// leftover source
		r.logger.Warn("failed to remove source after cross-device copy",
			"source", sourcePath, "error", err)
	}
	return nil
}

func moveFailed(step, sourcePath, destPath string, err error) error {
	return errors.New(fmt.Errorf("%w: %s: %v", errors.ErrMoveFailed, step, err)).
		Component("router").
		Category(errors.CategoryRouting).
		Context("source", sourcePath).
		Context("destination", destPath).
		Build()
}
