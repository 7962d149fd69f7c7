package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytmp4/internal/app"
	"github.com/ytget/ytmp4/internal/config"
	"github.com/ytget/ytmp4/internal/console"
	"github.com/ytget/ytmp4/internal/download"
	"github.com/ytget/ytmp4/internal/errs"
	"github.com/ytget/ytmp4/internal/logger"
	"github.com/ytget/ytmp4/internal/mux"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const AppName = "ytmp4"

type flags struct {
	url, output, choice  string
	downloadDir          string
	backend, ffmpeg      string
	configPath, language string
	saveConfig, verbose  bool
	install, reveal      bool
	list, showVersion    bool
}

func parseFlags() (*flags, map[string]bool) {
	f := &flags{}
	flag.StringVar(&f.url, "url", "", "YouTube URL (skips the prompt)")
	flag.StringVar(&f.output, "output", "", "output folder (skips the prompt)")
	flag.StringVar(&f.choice, "choice", "", "resolution number (skips the prompt)")
	flag.StringVar(&f.backend, "backend", "", "extraction backend: ytdlp or native")
	flag.StringVar(&f.ffmpeg, "ffmpeg-location", "", "ffmpeg binary or the directory containing it")
	flag.StringVar(&f.configPath, "config", "", "settings file (default <user config dir>/ytmp4/config.yaml)")
	flag.StringVar(&f.downloadDir, "download-dir", "", "default folder used when the folder prompt is left blank")
	flag.StringVar(&f.language, "lang", "", "interface language: system, "+languageList(console.NewLocalization()))
	flag.BoolVar(&f.saveConfig, "save-config", false, "write backend, ffmpeg-location, download-dir, lang and reveal to the settings file")
	flag.BoolVar(&f.verbose, "verbose", false, "debug logging to stderr")
	flag.BoolVar(&f.install, "install", false, "install yt-dlp before starting")
	flag.BoolVar(&f.reveal, "reveal", false, "open the saved file in the file manager")
	flag.BoolVar(&f.list, "list", false, "list the available resolutions and exit")
	flag.BoolVar(&f.showVersion, "version", false, "print the version and exit")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set
}

func main() {
	os.Exit(run())
}

func run() int {
	f, set := parseFlags()
	if f.showVersion {
		fmt.Printf("%s v%s\n", AppName, version)
		return app.ExitOK
	}

	loc := console.NewLocalization()
	con := console.New(os.Stdin, os.Stdout, loc)

	settings, err := config.Load(f.configPath)
	if err != nil {
		con.Fatal(loc.GetText(console.KeyErrConfig), err)
		return app.ExitFailure
	}
	if err := applyFlags(settings, f, set); err != nil {
		con.Fatal(loc.GetText(console.KeyErrConfig), err)
		return app.ExitFailure
	}
	loc.SetLanguage(settings.GetLanguage())

	runID := newRunID()
	level := settings.GetLogLevel()
	if f.verbose {
		level = logger.LevelDebug
	}
	logger.Init(logger.Config{Level: level, Fields: []any{"run", runID}})
	defer logger.Sync()
	restoreLog := logger.RedirectStdLog()
	defer restoreLog()

	logger.Info("starting", "version", version, "backend", settings.GetBackend(),
		"lang", loc.GetCurrentLanguage(), "config", settings.Path())

	if f.saveConfig {
		if err := settings.Save(); err != nil {
			con.Fatal(loc.GetText(console.KeyErrConfig), err)
			return app.ExitFailure
		}
		con.Info(console.KeyConfigSaved, settings.Path())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := app.Deps{
		Console:      con,
		FFmpeg:       mux.New(settings.GetFFmpegLocation()),
		NewExtractor: extractorFactory(settings, runID),
	}
	if settings.GetBackend() == config.BackendYTDLP {
		deps.CheckYTDLP = checkYTDLP
		deps.InstallYTDLP = installYTDLP
	}

	opts := app.Options{
		URL:            f.url,
		Output:         f.output,
		Choice:         f.choice,
		DefaultFolder:  settings.GetDownloadDirectory(),
		MinFreeSpaceMB: settings.GetMinFreeSpaceMB(),
		ListOnly:       f.list,
		Reveal:         settings.GetAutoRevealOnComplete(),
		Install:        f.install,
	}

	if _, err := app.New(opts, deps).Run(ctx); err != nil {
		failure := app.Describe(loc, err)
		logger.Error("run failed", "kind", errs.KindOf(err), "error", err)
		con.Fatal(failure.Message, failure.Cause)
		return failure.Code
	}
	return app.ExitOK
}

// applyFlags overrides file settings with the flags given on the command line.
func applyFlags(s *config.Settings, f *flags, set map[string]bool) error {
	if set["backend"] {
		if err := s.SetBackend(f.backend); err != nil {
			return err
		}
	}
	if set["ffmpeg-location"] {
		s.FFmpegLocation = f.ffmpeg
	}
	if set["download-dir"] {
		s.SetDownloadDirectory(strings.TrimSpace(f.downloadDir))
	}
	if set["lang"] {
		lang := strings.ToLower(strings.TrimSpace(f.language))
		if _, ok := s.GetLanguageOptions()[lang]; !ok {
			return errors.Errorf("unknown language %q (want system, %s)", f.language, languageList(console.NewLocalization()))
		}
		s.SetLanguage(lang)
	}
	if set["reveal"] {
		s.SetAutoRevealOnComplete(f.reveal)
	}
	return nil
}

// languageList renders the interface languages as "a, b or c".
func languageList(loc *console.Localization) string {
	codes := make([]string, 0, len(loc.GetAvailableLanguages()))
	for code := range loc.GetAvailableLanguages() {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	if len(codes) < 2 {
		return strings.Join(codes, "")
	}
	return strings.Join(codes[:len(codes)-1], ", ") + " or " + codes[len(codes)-1]
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "run-" + uuid.NewString()
	}
	return "run-" + id.String()
}

func extractorFactory(s *config.Settings, runID string) func(string) (download.Extractor, error) {
	return func(ffmpegPath string) (download.Extractor, error) {
		status := download.NewStatusBuilder(download.DefaultBarWidth)
		if s.GetBackend() == config.BackendNative {
			return download.NewNativeService(download.NativeOptions{
				HTTPTimeout: s.GetHTTPTimeout(),
				Proxy:       s.Proxy,
				Retries:     download.DefaultFetchRetries,
				RunID:       runID,
			}, mux.New(ffmpegPath), status)
		}
		return download.NewYTDLPService(download.YTDLPOptions{
			FFmpegLocation:    ffmpegPath,
			AudioSelector:     s.GetAudioSelector(),
			ProgressInterval:  s.GetProgressInterval(),
			RestrictFilenames: s.RestrictFilenames,
			Proxy:             s.Proxy,
			CookiesFile:       s.CookiesFile,
		}, status), nil
	}
}

// checkYTDLP looks for an installed yt-dlp without downloading one.
func checkYTDLP(ctx context.Context) error {
	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{DisableDownload: true, AllowVersionMismatch: true})
	if err != nil {
		return err
	}
	logger.Debug("yt-dlp found", "path", resolved.Executable, "version", resolved.Version)
	return nil
}

func installYTDLP(ctx context.Context) error {
	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{AllowVersionMismatch: true})
	if err != nil {
		return err
	}
	logger.Info("yt-dlp ready", "path", resolved.Executable, "version", resolved.Version)
	return nil
}
