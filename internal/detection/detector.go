package detection

import (
	"context"
	"errors"
)

// ErrFrameUnreadable signals that the detector could not decode one frame.
// Implementations skip such frames; consumers only see it when a video
// exceeds the implementation's unreadable-frame budget.
var ErrFrameUnreadable = errors.New("frame unreadable")

// Detector runs an external object detector over one media file. Inference
// itself is outside this repository; implementations adapt whatever backend
// produces the raw detections.
type Detector interface {
	// DetectVideo returns the per-frame detections for a video in frame
	// order. Unreadable frames are skipped, not represented as empty
	// frames; an error is returned only when the file as a whole cannot
	// be analyzed.
	DetectVideo(ctx context.Context, path string) ([]FrameDetections, error)

	// DetectImage returns the detections for a still image.
	DetectImage(ctx context.Context, path string) (FrameDetections, error)
}
