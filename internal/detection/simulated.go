package detection

import (
	"context"
	"hash/fnv"
	"math/rand"
	"path/filepath"
)

// SimulatedDetector is a deterministic stand-in for a real detector
// backend. Each file's output is derived from a hash of its base name, so
// repeated runs over the same tree classify identically. Used for demo
// runs and tests; a real backend implements Detector the same way.
type SimulatedDetector struct {
	// Labels is the detector's class list, indexed by species id.
	Labels []string
	// FrameCount is the number of frames produced per video.
	FrameCount int
}

// NewSimulatedDetector returns a simulated detector over the given class
// labels, producing frameCount frames per video.
func NewSimulatedDetector(labels []string, frameCount int) *SimulatedDetector {
	if frameCount <= 0 {
		frameCount = 30
	}
	return &SimulatedDetector{Labels: labels, FrameCount: frameCount}
}

func (s *SimulatedDetector) rng(path string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(filepath.Base(path)))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// DetectVideo synthesizes a frame sequence for one video. Roughly one file
// in five contains no animal; the rest follow one species with occasional
// empty frames and a low rate of second-species noise.
func (s *SimulatedDetector) DetectVideo(ctx context.Context, path string) ([]FrameDetections, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := s.rng(path)
	frames := make([]FrameDetections, 0, s.FrameCount)

	empty := rng.Intn(5) == 0
	primary := rng.Intn(maxInt(len(s.Labels), 1))

	for i := 0; i < s.FrameCount; i++ {
		frame := FrameDetections{FrameIndex: i}
		if !empty && len(s.Labels) > 0 && rng.Float64() > 0.2 {
			id := primary
			// occasional stray detection of another species
			if rng.Float64() < 0.05 {
				id = rng.Intn(len(s.Labels))
			}
			frame.Detections = append(frame.Detections, Detection{
				SpeciesID:   id,
				SpeciesName: s.Labels[id],
				Confidence:  0.45 + rng.Float64()*0.5,
			})
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// DetectImage synthesizes a single-frame detection set for a still image.
func (s *SimulatedDetector) DetectImage(ctx context.Context, path string) (FrameDetections, error) {
	if err := ctx.Err(); err != nil {
		return FrameDetections{}, err
	}
	rng := s.rng(path)
	frame := FrameDetections{FrameIndex: 0}

	if len(s.Labels) > 0 && rng.Intn(5) != 0 {
		id := rng.Intn(len(s.Labels))
		frame.Detections = append(frame.Detections, Detection{
			SpeciesID:   id,
			SpeciesName: s.Labels[id],
			Confidence:  0.30 + rng.Float64()*0.65,
		})
	}
	return frame, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
