// Package config loads and saves the user's settings file. Every getter
// returns a usable value: unset or invalid fields fall back to defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v2"

	"github.com/ytget/ytmp4/internal/platform"
)

// Backend selects the extraction collaborator.
type Backend string

const (
	// BackendYTDLP drives the yt-dlp binary.
	BackendYTDLP Backend = "ytdlp"
	// BackendNative extracts in-process and merges with ffmpeg.
	BackendNative Backend = "native"
)

// Settings keys as they appear in the YAML file
const (
	KeyDownloadDir        = "download_directory"
	KeyBackend            = "backend"
	KeyFFmpegLocation     = "ffmpeg_location"
	KeyAudioSelector      = "audio_selector"
	KeyLanguage           = "language"
	KeyLogLevel           = "log_level"
	KeyProgressInterval   = "progress_interval_ms"
	KeyRestrictFilenames  = "restrict_filenames"
	KeyProxy              = "proxy"
	KeyCookiesFile        = "cookies_file"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyMinFreeSpace       = "min_free_space_mb"
	KeyHTTPTimeout        = "http_timeout_seconds"
)

// Default values
const (
	DefaultBackend            = BackendYTDLP
	DefaultAudioSelector      = "bestaudio[ext=m4a]"
	DefaultLanguage           = "en"
	DefaultLogLevel           = "warn"
	DefaultProgressInterval   = 500 * time.Millisecond
	DefaultAutoRevealComplete = false
	DefaultMinFreeSpaceMB     = 500
	DefaultHTTPTimeout        = 30 * time.Second

	AppDirName     = "ytmp4"
	ConfigFileName = "config.yaml"
)

// Settings is the on-disk configuration. Zero values mean "use the default".
type Settings struct {
	DownloadDirectory    string `yaml:"download_directory,omitempty"`
	Backend              string `yaml:"backend,omitempty"`
	FFmpegLocation       string `yaml:"ffmpeg_location,omitempty"`
	AudioSelector        string `yaml:"audio_selector,omitempty"`
	Language             string `yaml:"language,omitempty"`
	LogLevel             string `yaml:"log_level,omitempty"`
	ProgressIntervalMS   int    `yaml:"progress_interval_ms,omitempty"`
	RestrictFilenames    bool   `yaml:"restrict_filenames,omitempty"`
	Proxy                string `yaml:"proxy,omitempty"`
	CookiesFile          string `yaml:"cookies_file,omitempty"`
	AutoRevealOnComplete *bool  `yaml:"auto_reveal_on_complete,omitempty"`
	MinFreeSpaceMB       *int   `yaml:"min_free_space_mb,omitempty"`
	HTTPTimeoutSeconds   int    `yaml:"http_timeout_seconds,omitempty"`

	path string
}

// DefaultPath returns <user config dir>/ytmp4/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "user config dir")
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// DefaultSettings returns settings with every field unset.
func DefaultSettings() *Settings {
	return &Settings{}
}

// Load reads the settings file at path. An empty path selects DefaultPath.
// A missing file is not an error.
func Load(path string) (*Settings, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	s := DefaultSettings()
	s.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return s, nil
}

// Save writes the settings back to the file they were loaded from.
func (s *Settings) Save() error {
	if s.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		s.path = p
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	return nil
}

// Path returns the file the settings are bound to.
func (s *Settings) Path() string {
	return s.path
}

// Validate rejects values that have no sensible fallback.
func (s *Settings) Validate() error {
	if b := strings.TrimSpace(s.Backend); b != "" {
		if _, err := ParseBackend(b); err != nil {
			return err
		}
	}
	if s.ProgressIntervalMS < 0 {
		return errors.Errorf("%s must not be negative", KeyProgressInterval)
	}
	if s.HTTPTimeoutSeconds < 0 {
		return errors.Errorf("%s must not be negative", KeyHTTPTimeout)
	}
	return nil
}

// ParseBackend validates a backend name.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendYTDLP, BackendNative:
		return b, nil
	default:
		return "", errors.Errorf("unknown backend %q (want %s or %s)", name, BackendYTDLP, BackendNative)
	}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	if s.DownloadDirectory != "" {
		return s.DownloadDirectory
	}
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return filepath.Join(os.TempDir(), platform.DownloadsDirName)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.DownloadDirectory = dir
}

// GetBackend returns the configured backend
func (s *Settings) GetBackend() Backend {
	b, err := ParseBackend(s.Backend)
	if err != nil {
		return DefaultBackend
	}
	return b
}

// SetBackend sets the backend after validating it
func (s *Settings) SetBackend(name string) error {
	b, err := ParseBackend(name)
	if err != nil {
		return err
	}
	s.Backend = string(b)
	return nil
}

// GetFFmpegLocation returns the configured ffmpeg location, empty for PATH
func (s *Settings) GetFFmpegLocation() string {
	return strings.TrimSpace(s.FFmpegLocation)
}

// GetAudioSelector returns the audio half of the format selector
func (s *Settings) GetAudioSelector() string {
	if sel := strings.TrimSpace(s.AudioSelector); sel != "" {
		return sel
	}
	return DefaultAudioSelector
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	if s.Language == "" {
		return DefaultLanguage
	}
	return s.Language
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.Language = lang
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	if s.LogLevel == "" {
		return DefaultLogLevel
	}
	return s.LogLevel
}

// GetProgressInterval returns how often the ytdlp backend reports progress
func (s *Settings) GetProgressInterval() time.Duration {
	if s.ProgressIntervalMS <= 0 {
		return DefaultProgressInterval
	}
	return time.Duration(s.ProgressIntervalMS) * time.Millisecond
}

// GetAutoRevealOnComplete returns whether to reveal the saved file after success
func (s *Settings) GetAutoRevealOnComplete() bool {
	if s.AutoRevealOnComplete == nil {
		return DefaultAutoRevealComplete
	}
	return *s.AutoRevealOnComplete
}

// SetAutoRevealOnComplete sets whether to reveal the saved file after success
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.AutoRevealOnComplete = &autoReveal
}

// GetMinFreeSpaceMB returns the free space warning threshold; 0 disables it
func (s *Settings) GetMinFreeSpaceMB() int {
	if s.MinFreeSpaceMB == nil {
		return DefaultMinFreeSpaceMB
	}
	if *s.MinFreeSpaceMB < 0 {
		return 0
	}
	return *s.MinFreeSpaceMB
}

// GetHTTPTimeout returns the timeout for the native backend's HTTP client
func (s *Settings) GetHTTPTimeout() time.Duration {
	if s.HTTPTimeoutSeconds <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
