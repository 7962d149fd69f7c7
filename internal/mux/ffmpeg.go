// Package mux wraps the ffmpeg binary for stream-copy merging of separately
// downloaded video and audio tracks.
package mux

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/ytget/ytmp4/internal/errs"
	"github.com/ytget/ytmp4/internal/logger"
)

// FFmpeg constants for merging
const (
	FFmpegCommand = "ffmpeg"

	// Stream copy, no re-encode
	CopyCodec = "copy"

	// Container flags
	FastStartFlag = "+faststart"

	// InstallURL is shown when the binary cannot be found
	InstallURL = "https://ffmpeg.org/download.html"

	// Number of stderr bytes kept for error messages
	stderrTailSize = 2048
)

// Metadata is written into the output container.
type Metadata struct {
	Title string
}

// FFmpeg merges tracks with the ffmpeg binary. Path may be a binary, a
// directory containing it, or empty to search PATH.
type FFmpeg struct {
	Path string

	lookPath func(string) (string, error)
}

// New returns an FFmpeg for the configured location.
func New(location string) *FFmpeg {
	return &FFmpeg{Path: location, lookPath: exec.LookPath}
}

// Locate resolves the ffmpeg binary.
func (f *FFmpeg) Locate() (string, error) {
	lookPath := f.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	if loc := strings.TrimSpace(f.Path); loc != "" {
		info, err := os.Stat(loc)
		if err != nil {
			return "", errors.Wrapf(errs.ErrFFmpegNotFound, "configured location %q", loc)
		}
		if !info.IsDir() {
			return loc, nil
		}
		if p, err := lookPath(binaryIn(loc)); err == nil {
			return p, nil
		}
		return "", errors.Wrapf(errs.ErrFFmpegNotFound, "no ffmpeg in %q", loc)
	}

	p, err := lookPath(FFmpegCommand)
	if err != nil {
		return "", errs.ErrFFmpegNotFound
	}
	return p, nil
}

// BuildMergeArgs builds the ffmpeg command arguments
func BuildMergeArgs(videoPath, audioPath, outputPath string, meta Metadata) []string {
	args := []string{
		"-y", // Overwrite output file
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", CopyCodec,
		"-c:a", CopyCodec,
		"-movflags", FastStartFlag,
	}
	if meta.Title != "" {
		args = append(args, "-metadata", "title="+meta.Title)
	}
	return append(args, outputPath)
}

// Merge runs ffmpeg and removes both inputs on success. A partial output is
// removed on failure.
func (f *FFmpeg) Merge(ctx context.Context, videoPath, audioPath, outputPath string, meta Metadata) error {
	bin, err := f.Locate()
	if err != nil {
		return err
	}

	start := time.Now()
	args := BuildMergeArgs(videoPath, audioPath, outputPath, meta)
	logger.Debug("ffmpeg merge", "bin", bin, "args", args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(outputPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if tail := stderrTail(stderr.Bytes()); tail != "" {
			return errors.Wrapf(err, "ffmpeg: %s", tail)
		}
		return errors.Wrap(err, "ffmpeg")
	}

	for _, p := range []string{videoPath, audioPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove merge input", "path", p, "error", err)
		}
	}
	logger.InfoWithDuration("merged", start, "output", outputPath)
	return nil
}

func stderrTail(b []byte) string {
	if len(b) > stderrTailSize {
		b = b[len(b)-stderrTailSize:]
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
