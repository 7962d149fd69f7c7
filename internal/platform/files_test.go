package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "videos", "2024")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("CreateDirectoryIfNotExists(%s) failed: %v", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("Directory was not created: %s", dir)
	}

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("Existing directory should be accepted, got: %v", err)
	}
}

func TestCreateDirectoryIfNotExists_RegularFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := CreateDirectoryIfNotExists(file)
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Expected a not-a-directory error, got: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("GetHomeDownloadsDir failed: %v", err)
	}
	if dir != filepath.Join(home, DownloadsDirName) {
		t.Errorf("Expected %s, got %s", filepath.Join(home, DownloadsDirName), dir)
	}
}

func TestResolveOutputDir(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	fallback := filepath.Join(home, DownloadsDirName)

	tests := []struct {
		name, answer, expected string
	}{
		{"blank", "", fallback},
		{"whitespace", "   ", fallback},
		{"relative", "videos", filepath.Join(cwd, "videos")},
		{"absolute padded", " " + filepath.Join(cwd, "abs") + " ", filepath.Join(cwd, "abs")},
		{"home", "~", home},
		{"home relative", "~/Movies", filepath.Join(home, "Movies")},
		{"dot segments", "a/../b", filepath.Join(cwd, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOutputDir(tt.answer, fallback)
			if err != nil {
				t.Fatalf("ResolveOutputDir(%q) failed: %v", tt.answer, err)
			}
			if got != tt.expected {
				t.Errorf("ResolveOutputDir(%q) = %s, expected %s", tt.answer, got, tt.expected)
			}
		})
	}
}

func TestResolveOutputDir_NoFallback(t *testing.T) {
	if _, err := ResolveOutputDir(" ", ""); err == nil {
		t.Error("Expected error when both answer and fallback are empty")
	}
}

func TestPrepareOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	got, err := PrepareOutputDir("", dir)
	if err != nil {
		t.Fatalf("PrepareOutputDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("Expected %s, got %s", dir, got)
	}
	if info, err := os.Stat(got); err != nil || !info.IsDir() {
		t.Fatalf("Directory was not created: %s", got)
	}
}

func TestPrepareOutputDir_FileInTheWay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := PrepareOutputDir(file, ""); err == nil {
		t.Error("Expected error when the path is a regular file")
	}
}

func TestOpenFileInManager_MissingFile(t *testing.T) {
	err := OpenFileInManager(filepath.Join(t.TempDir(), "gone.mp4"))
	if err == nil {
		t.Fatal("Expected error for a missing file")
	}
	if !strings.Contains(err.Error(), "file does not exist") {
		t.Errorf("Unexpected error: %v", err)
	}
}
