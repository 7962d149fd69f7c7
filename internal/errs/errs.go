// Package errs defines the failure kinds of a download run. Every fatal path
// returns an *Error so the top-level handler can pick the message and the exit
// status without inspecting error strings.
package errs

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindPrecondition means a required external binary is missing.
	KindPrecondition
	// KindInvalidInput covers an empty URL and a bad resolution choice.
	KindInvalidInput
	// KindFilesystem covers output folder resolution and creation.
	KindFilesystem
	// KindNetwork covers info fetch failures (network, bad URL, extractor errors).
	KindNetwork
	// KindNoFormats means no MP4 video-only stream was offered.
	KindNoFormats
	// KindMerge covers download and merge failures.
	KindMerge
	// KindCanceled means the run was interrupted.
	KindCanceled
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	KindPrecondition: "precondition",
	KindInvalidInput: "invalid_input",
	KindFilesystem:   "filesystem",
	KindNetwork:      "network",
	KindNoFormats:    "no_formats",
	KindMerge:        "merge",
	KindCanceled:     "canceled",
}

// String returns the snake_case name used in logs.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	// ErrNoURL indicates that the user did not provide a URL.
	ErrNoURL = errors.New("no URL provided")
	// ErrInvalidSelection indicates a non-numeric or out-of-range resolution choice.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNoFormats indicates that no MP4 video formats were found.
	ErrNoFormats = errors.New("no MP4 video formats found")
	// ErrFFmpegNotFound indicates that ffmpeg is not discoverable.
	ErrFFmpegNotFound = errors.New("ffmpeg not found")
	// ErrYTDLPNotFound indicates that the yt-dlp binary is not discoverable.
	ErrYTDLPNotFound = errors.New("yt-dlp not found")
)

// Error is a classified failure. Op names the pipeline step that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with a kind and an operation name. A nil err yields nil.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func Precondition(op string, err error) error { return E(KindPrecondition, op, err) }
func InvalidInput(op string, err error) error { return E(KindInvalidInput, op, err) }
func Filesystem(op string, err error) error   { return E(KindFilesystem, op, err) }
func Network(op string, err error) error      { return E(KindNetwork, op, err) }
func NoFormats(op string, err error) error    { return E(KindNoFormats, op, err) }
func Merge(op string, err error) error        { return E(KindMerge, op, err) }
func Canceled(op string, err error) error     { return E(KindCanceled, op, err) }

// KindOf returns the kind of the outermost *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Cause returns the error wrapped by the outermost *Error, or err itself.
func Cause(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Err
	}
	return err
}
