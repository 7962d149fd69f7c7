package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-faster/errors"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// LinuxFileManagers are tried in order when xdg-open fails.
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return errors.Wrap(err, "file does not exist")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return errors.Wrap(err, "get absolute path")
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return OpenFolder(filepath.Dir(absPath))
	default:
		return errors.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenFolder opens a directory in the system file manager.
func OpenFolder(dir string) error {
	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, dir).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, dir).Run()
	case OSLinux:
		// File selection is not standardized on Linux
		if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
			return nil
		}
		for _, fm := range LinuxFileManagers {
			if _, err := exec.LookPath(fm); err == nil {
				return exec.Command(fm, dir).Run()
			}
		}
		return errors.New("no suitable file manager found")
	default:
		return errors.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
