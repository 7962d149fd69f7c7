package model

import (
	"fmt"
)

// DownloadRequest is built once per run from the user's answers and consumed
// by the download backend.
type DownloadRequest struct {
	URL              string
	SelectedFormatID string
	Height           int
	OutputFolder     string       // absolute path, already created
	Progress         func(Status) // may be nil
}

// Report forwards s to the progress sink if one is set.
func (r DownloadRequest) Report(s Status) {
	if r.Progress != nil {
		r.Progress(s)
	}
}

// DownloadResult describes what a successful download produced.
type DownloadResult struct {
	Title      string
	OutputPath string // may be empty when the backend cannot tell
}

// FormatETA returns seconds formatted as hh:mm:ss or mm:ss, or "—" if unknown
func FormatETA(seconds int) string {
	if seconds <= 0 {
		return "—"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
