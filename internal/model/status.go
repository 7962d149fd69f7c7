package model

// StatusTag is the phase reported by a progress status record
type StatusTag string

const (
	// StatusDownloading means a stream is being transferred
	StatusDownloading StatusTag = "downloading"

	// StatusFinished means a stream transfer completed; merging may follow
	StatusFinished StatusTag = "finished"

	// StatusError means the transfer failed
	StatusError StatusTag = "error"
)

// String returns the string representation of StatusTag
func (s StatusTag) String() string {
	return string(s)
}

// IsActive returns true while bytes are still being transferred
func (s StatusTag) IsActive() bool {
	return s == StatusDownloading
}

// IsFinished returns true for terminal tags (finished or error)
func (s StatusTag) IsFinished() bool {
	return s == StatusFinished || s == StatusError
}

// Status is one progress callback payload. All display fields arrive
// pre-formatted by the backend that produced them.
type Status struct {
	Tag           StatusTag
	Percent       string // e.g. " 42.0%"
	Speed         string // e.g. "1.2 MiB/s"
	ETA           string // e.g. "01:30"
	Total         string // e.g. "48 MiB"
	TotalEstimate string // used when Total is unknown
	Bar           string // optional pre-rendered progress bar
	Filename      string
}

// DisplayTotal returns Total, falling back to TotalEstimate.
func (s Status) DisplayTotal() string {
	if s.Total != "" {
		return s.Total
	}
	return s.TotalEstimate
}
