package conf

import (
	"fmt"
	"strings"

	"github.com/wolfvue/wolfvue-go/internal/errors"
)

// ValidateSettings checks everything that must hold before the first file
// is processed: paths present, thresholds valid, extension lists sane.
// Configuration-level problems fail the run up front; nothing here is
// recoverable per file.
func ValidateSettings(settings *Settings) error {
	if settings.Input.Path == "" {
		return confErr("input.path", "no input path configured")
	}
	if settings.Output.Path == "" {
		return confErr("output.path", "no output path configured")
	}
	if settings.Taxonomy.Path == "" {
		return confErr("taxonomy.path", "no taxonomy file configured")
	}

	if err := settings.Thresholds.Policy().Validate(); err != nil {
		return err
	}

	if len(settings.Media.VideoExtensions) == 0 && len(settings.Media.ImageExtensions) == 0 {
		return confErr("media", "no media extensions configured")
	}
	for _, ext := range append(append([]string{}, settings.Media.VideoExtensions...), settings.Media.ImageExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return confErr("media", fmt.Sprintf("extension %q must start with a dot", ext))
		}
	}

	if settings.Detector.FrameCount < 1 {
		return confErr("detector.framecount", "frame count must be at least 1")
	}

	return nil
}

func confErr(field, reason string) error {
	return errors.Newf("invalid configuration: %s: %s", field, reason).
		Component("conf").
		Category(errors.CategoryConfiguration).
		Context("field", field).
		Build()
}
