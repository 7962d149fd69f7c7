package app

import (
	"github.com/go-faster/errors"

	"github.com/ytget/ytmp4/internal/console"
	"github.com/ytget/ytmp4/internal/errs"
	"github.com/ytget/ytmp4/internal/mux"
)

// Exit statuses.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitCanceled = 130
)

// Failure is what the top-level handler prints and exits with.
type Failure struct {
	Message string
	// Cause is printed after the message. Nil when the message says everything.
	Cause error
	Code  int
}

// Describe turns a run error into a localized Failure.
func Describe(loc *console.Localization, err error) Failure {
	if err == nil {
		return Failure{Code: ExitOK}
	}
	if loc == nil {
		loc = console.NewLocalization()
	}
	cause := errs.Cause(err)

	switch errs.KindOf(err) {
	case errs.KindPrecondition:
		switch {
		case errors.Is(err, errs.ErrFFmpegNotFound):
			return Failure{loc.Textf(console.KeyErrFFmpeg, mux.InstallURL), nil, ExitFailure}
		case errors.Is(err, errs.ErrYTDLPNotFound):
			return Failure{loc.GetText(console.KeyErrYTDLP), nil, ExitFailure}
		default:
			return Failure{loc.GetText(console.KeyErrInstall), cause, ExitFailure}
		}
	case errs.KindInvalidInput:
		switch {
		case errors.Is(err, errs.ErrNoURL):
			return Failure{loc.GetText(console.KeyErrNoURL), nil, ExitFailure}
		case errors.Is(err, errs.ErrInvalidSelection):
			return Failure{loc.GetText(console.KeyErrSelection), nil, ExitFailure}
		default:
			return Failure{loc.GetText(console.KeyErrConfig), cause, ExitFailure}
		}
	case errs.KindFilesystem:
		return Failure{loc.GetText(console.KeyErrFolder), cause, ExitFailure}
	case errs.KindNetwork:
		return Failure{loc.GetText(console.KeyErrFetch), cause, ExitFailure}
	case errs.KindNoFormats:
		return Failure{loc.GetText(console.KeyErrNoFormats), nil, ExitFailure}
	case errs.KindMerge:
		return Failure{loc.GetText(console.KeyErrDownload), cause, ExitFailure}
	case errs.KindCanceled:
		return Failure{loc.GetText(console.KeyErrCanceled), nil, ExitCanceled}
	default:
		return Failure{loc.GetText(console.KeyErrUnexpected), err, ExitFailure}
	}
}
