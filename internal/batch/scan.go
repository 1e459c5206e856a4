package batch

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/wolfvue/wolfvue-go/internal/errors"
)

// ScanDir enumerates the supported media files under root. Results are
// sorted lexically by path so processing order (and therefore report
// order) is deterministic. With recursive false, subdirectories are
// skipped entirely.
func ScanDir(root string, media *MediaTypes, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if media.KindOf(path) != MediaUnknown {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.New(err).
			Component("batch.scan").
			Category(errors.CategoryFileIO).
			Context("root", root).
			Build()
	}

	sort.Strings(files)
	return files, nil
}
