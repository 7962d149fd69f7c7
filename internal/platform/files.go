package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// File permissions
const (
	DefaultDirPermissions = 0o755
)

// DownloadsDirName is the folder used when no output folder is given.
const DownloadsDirName = "Downloads"

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get user home directory")
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	case err != nil:
		return err
	case !info.IsDir():
		return errors.Errorf("%s exists and is not a directory", dirPath)
	}
	return nil
}

// ResolveOutputDir turns the folder answer into an absolute path. A blank
// answer selects fallback. A leading "~" is expanded to the home directory.
func ResolveOutputDir(answer, fallback string) (string, error) {
	dir := strings.TrimSpace(answer)
	if dir == "" {
		dir = fallback
	}
	if dir == "" {
		return "", errors.New("no output folder")
	}

	if dir == "~" || strings.HasPrefix(dir, "~/") || strings.HasPrefix(dir, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "expand home directory")
		}
		dir = filepath.Join(home, dir[1:])
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %q", dir)
	}
	return abs, nil
}

// PrepareOutputDir resolves the answer and creates the folder.
func PrepareOutputDir(answer, fallback string) (string, error) {
	dir, err := ResolveOutputDir(answer, fallback)
	if err != nil {
		return "", err
	}
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}
	return dir, nil
}
