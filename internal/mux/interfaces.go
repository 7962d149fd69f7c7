package mux

import "context"

// Merger combines a video-only and an audio-only file into one container.
type Merger interface {
	Locate() (string, error)
	Merge(ctx context.Context, videoPath, audioPath, outputPath string, meta Metadata) error
}
