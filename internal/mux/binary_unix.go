//go:build !windows

package mux

import "path/filepath"

func binaryIn(dir string) string {
	return filepath.Join(dir, FFmpegCommand)
}
