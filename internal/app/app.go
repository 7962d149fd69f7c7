// Package app runs one download: precondition checks, the three prompts,
// info fetch, resolution listing, selection and the download itself. Every
// failure is returned as a classified *errs.Error.
package app

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"

	"github.com/ytget/ytmp4/internal/console"
	"github.com/ytget/ytmp4/internal/download"
	"github.com/ytget/ytmp4/internal/errs"
	"github.com/ytget/ytmp4/internal/logger"
	"github.com/ytget/ytmp4/internal/model"
	"github.com/ytget/ytmp4/internal/platform"
	"github.com/ytget/ytmp4/internal/progress"
	"github.com/ytget/ytmp4/internal/resolution"
)

// Options are the answers and switches known before the run starts. Empty
// answers are asked for interactively.
type Options struct {
	URL    string
	Output string
	Choice string

	DefaultFolder  string
	MinFreeSpaceMB int

	ListOnly bool
	Reveal   bool
	Install  bool
}

// FFmpegLocator finds the ffmpeg binary.
type FFmpegLocator interface {
	Locate() (string, error)
}

// Deps are the collaborators of a run. Nil funcs fall back to the platform
// implementations; nil CheckYTDLP skips the yt-dlp check.
type Deps struct {
	Console      *console.Console
	FFmpeg       FFmpegLocator
	NewExtractor func(ffmpegPath string) (download.Extractor, error)
	CheckYTDLP   func(ctx context.Context) error
	InstallYTDLP func(ctx context.Context) error
	LowOnSpace   func(path string, minMB int) (bool, uint64, error)
	Reveal       func(path string) error
	FindSaved    func(dir, title string) (string, error)
}

// Outcome describes a successful run.
type Outcome struct {
	Folder string
	File   string
	Entry  model.ResolutionEntry
	Listed bool
}

// App is a single download run.
type App struct {
	opts Options
	deps Deps
	con  *console.Console
}

// New creates a run.
func New(opts Options, deps Deps) *App {
	if deps.LowOnSpace == nil {
		deps.LowOnSpace = platform.LowOnSpace
	}
	if deps.FindSaved == nil {
		deps.FindSaved = platform.FindSavedFile
	}
	if deps.Reveal == nil {
		deps.Reveal = reveal
	}
	if deps.Console == nil {
		deps.Console = console.New(os.Stdin, os.Stdout, nil)
	}
	return &App{opts: opts, deps: deps, con: deps.Console}
}

func reveal(path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return platform.OpenFolder(path)
	}
	return platform.OpenFileInManager(path)
}

// Run executes the pipeline.
func (a *App) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()

	extractor, err := a.preconditions(ctx)
	if err != nil {
		return nil, err
	}

	url, err := a.answer(ctx, a.opts.URL, console.KeyPromptURL)
	if err != nil {
		return nil, errors.Wrap(err, "read URL")
	}
	if url == "" {
		return nil, errs.InvalidInput("read URL", errs.ErrNoURL)
	}

	var folder string
	if !a.opts.ListOnly {
		if folder, err = a.outputFolder(ctx); err != nil {
			return nil, err
		}
	}

	a.con.Fetching()
	info, err := extractor.FetchInfo(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errs.Canceled("fetch info", ctx.Err())
		}
		return nil, errs.Network("fetch info", err)
	}

	entries := resolution.Resolve(info.Formats)
	if len(entries) == 0 {
		return nil, errs.NoFormats("resolve formats", errs.ErrNoFormats)
	}
	logger.Debug("resolutions", "count", len(entries), "title", info.GetDisplayTitle())

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label()
	}
	a.con.Resolutions(labels)

	if a.opts.ListOnly {
		return &Outcome{Listed: true}, nil
	}

	choice, err := a.answer(ctx, a.opts.Choice, console.KeyPromptChoice)
	if err != nil {
		return nil, errors.Wrap(err, "read choice")
	}
	entry, err := resolution.Select(entries, choice)
	if err != nil {
		return nil, errs.InvalidInput("select resolution", err)
	}

	a.con.Downloading(entry.Label())
	reporter := progress.NewReporter(a.con.Out(),
		progress.WithFinishedMessage(a.con.Localization().GetText(console.KeyFinishedMerge)))

	res, err := extractor.Download(ctx, model.DownloadRequest{
		URL:              url,
		SelectedFormatID: entry.FormatID,
		Height:           entry.Height,
		OutputFolder:     folder,
		Progress:         reporter.Report,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errs.Canceled("download", ctx.Err())
		}
		return nil, errs.Merge("download", err)
	}

	title := res.Title
	if title == "" {
		title = info.Title
	}
	file := a.savedFile(folder, title, res.OutputPath)
	a.con.Saved(folder, file)

	if a.opts.Reveal {
		target := file
		if target == "" {
			target = folder
		}
		if err := a.deps.Reveal(target); err != nil {
			logger.Warn("reveal failed", "path", target, "error", err)
			a.con.Warn(console.KeyRevealFailed)
		}
	}

	logger.InfoWithDuration("run complete", start, "format", entry.FormatID, "file", file)
	return &Outcome{Folder: folder, File: file, Entry: entry}, nil
}

// preconditions runs before any network activity. ffmpeg comes first so a
// missing merger fails before yt-dlp is installed or probed.
func (a *App) preconditions(ctx context.Context) (download.Extractor, error) {
	ffmpegPath, err := a.deps.FFmpeg.Locate()
	if err != nil {
		return nil, errs.Precondition("check ffmpeg", err)
	}
	logger.Debug("ffmpeg found", "path", ffmpegPath)

	switch {
	case a.opts.Install && a.deps.InstallYTDLP != nil:
		a.con.Info(console.KeyInstalling)
		if err := a.deps.InstallYTDLP(ctx); err != nil {
			return nil, errs.Precondition("install yt-dlp", err)
		}
	case !a.opts.Install && a.deps.CheckYTDLP != nil:
		if err := a.deps.CheckYTDLP(ctx); err != nil {
			logger.Debug("yt-dlp check failed", "error", err)
			return nil, errs.Precondition("check yt-dlp", errs.ErrYTDLPNotFound)
		}
	}

	extractor, err := a.deps.NewExtractor(ffmpegPath)
	if err != nil {
		return nil, errs.InvalidInput("configure backend", err)
	}
	return extractor, nil
}

// outputFolder asks for, resolves and creates the destination folder.
func (a *App) outputFolder(ctx context.Context) (string, error) {
	answer, err := a.answer(ctx, a.opts.Output, console.KeyPromptFolder)
	if err != nil {
		return "", errors.Wrap(err, "read folder")
	}
	folder, err := platform.PrepareOutputDir(answer, a.opts.DefaultFolder)
	if err != nil {
		return "", errs.Filesystem("create folder", err)
	}
	logger.Debug("output folder ready", "folder", folder)
	a.checkSpace(folder)
	return folder, nil
}

// answer returns preset when given, otherwise prompts for key. An interrupt
// abandons the pending read.
func (a *App) answer(ctx context.Context, preset, key string) (string, error) {
	if preset = strings.TrimSpace(preset); preset != "" {
		return preset, nil
	}

	type reply struct {
		text string
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		text, err := a.con.Ask(key)
		ch <- reply{text, err}
	}()

	select {
	case r := <-ch:
		return r.text, r.err
	case <-ctx.Done():
		return "", errs.Canceled("prompt", ctx.Err())
	}
}

func (a *App) checkSpace(folder string) {
	low, free, err := a.deps.LowOnSpace(folder, a.opts.MinFreeSpaceMB)
	if err != nil {
		logger.Debug("free space check failed", "folder", folder, "error", err)
		return
	}
	if low {
		a.con.Warn(console.KeyLowSpace, humanize.IBytes(free), folder)
	}
}

// savedFile prefers the path the backend reported and falls back to a
// search by title.
func (a *App) savedFile(folder, title, reported string) string {
	if reported != "" {
		if _, err := os.Stat(reported); err == nil {
			return reported
		}
	}
	if title == "" {
		return ""
	}
	found, err := a.deps.FindSaved(folder, title)
	if err != nil {
		logger.Debug("saved file not found", "title", title, "error", err)
		return ""
	}
	return found
}
